package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// BookCard renders a single book: coloured initial, title and byline
type BookCard struct {
	Book       domain.Book
	ShowRemove bool
	Selected   bool
}

// NewBookCard creates a card for book
func NewBookCard(book domain.Book) BookCard {
	return BookCard{Book: book}
}

// AvatarColor picks the avatar colour from the title's first character
func (c BookCard) AvatarColor() lipgloss.Color {
	return styles.AvatarPalette[c.Book.AvatarIndex(len(styles.AvatarPalette))]
}

// View renders the card as one row of the given width
func (c BookCard) View(width int) string {
	avatarBg := c.AvatarColor()
	avatarFg := styles.White

	text := c.Book.Title
	byline := c.Book.Byline()
	room := width - 10
	if c.ShowRemove {
		room -= 4
	}

	parts := []styles.RowPart{
		{Text: " " + c.Book.Initial() + " ", Foreground: &avatarFg, Background: &avatarBg},
		{Text: " " + styles.Truncate(text, room/2+room%2)},
	}
	if byline != "" {
		dim := styles.DimGray
		parts = append(parts, styles.RowPart{Text: "  " + styles.Truncate(byline, room/2), Foreground: &dim})
	}
	if c.ShowRemove {
		red := styles.Red
		parts = append(parts, styles.RowPart{Text: "  ✕", Foreground: &red})
	}
	return styles.RenderListRow(parts, c.Selected, width)
}
