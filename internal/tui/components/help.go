package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// RenderHelp renders "key desc" pairs for the given bindings
func RenderHelp(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
