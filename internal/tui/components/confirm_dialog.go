package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/reactive"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// ConfirmDialog asks a yes/no question and reports the answer as an event
type ConfirmDialog struct {
	Title        string
	Message      string
	ConfirmLabel string

	Confirmed *reactive.Emitter[struct{}]
	Cancelled *reactive.Emitter[struct{}]
}

// ConfirmOption customizes a ConfirmDialog
type ConfirmOption func(*ConfirmDialog)

func WithTitle(title string) ConfirmOption {
	return func(c *ConfirmDialog) { c.Title = title }
}

func WithMessage(message string) ConfirmOption {
	return func(c *ConfirmDialog) { c.Message = message }
}

func WithConfirmLabel(label string) ConfirmOption {
	return func(c *ConfirmDialog) { c.ConfirmLabel = label }
}

// NewConfirmDialog creates a dialog titled "Confirm" asking "Are you sure?"
// with a "Delete" action unless overridden
func NewConfirmDialog(opts ...ConfirmOption) *ConfirmDialog {
	c := &ConfirmDialog{
		Title:        "Confirm",
		Message:      "Are you sure?",
		ConfirmLabel: "Delete",
		Confirmed:    reactive.NewEmitter[struct{}](),
		Cancelled:    reactive.NewEmitter[struct{}](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ConfirmDialog) Confirm() {
	c.Confirmed.Emit(struct{}{})
}

func (c *ConfirmDialog) Cancel() {
	c.Cancelled.Emit(struct{}{})
}

// HandleKeyMsg answers on y/enter or n/esc. All other keys are swallowed.
func (c *ConfirmDialog) HandleKeyMsg(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, ConfirmKeys.Confirm):
		c.Confirm()
	case key.Matches(msg, ConfirmKeys.Cancel):
		c.Cancel()
	}
}

// View renders the dialog
func (c *ConfirmDialog) View() string {
	lines := []string{
		styles.ModalTitleStyle.Render(c.Title),
		c.Message,
		"",
		styles.DangerButtonStyle.Render("y "+c.ConfirmLabel) + "  " + styles.DisabledButtonStyle.Render("n Cancel"),
	}
	return styles.DangerModalStyle.Width(44).Render(strings.Join(lines, "\n"))
}
