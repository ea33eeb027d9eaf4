package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

const pickerMaxVisible = 8

// BookPicker is a filterable checklist of books
type BookPicker struct {
	books       []domain.Book
	filteredIdx []int // nil means unfiltered
	cursor      int
	offset      int

	filterActive bool
	filterInput  textinput.Model
}

// NewBookPicker creates an empty picker
func NewBookPicker() BookPicker {
	fi := textinput.New()
	fi.Prompt = "/"
	fi.PromptStyle = styles.FilterPromptStyle
	fi.CharLimit = 100
	return BookPicker{filterInput: fi}
}

// SetBooks replaces the candidates, keeping the filter and clamping the cursor
func (p *BookPicker) SetBooks(books []domain.Book) {
	p.books = books
	p.applyFilter()
}

// Len is the number of visible candidates
func (p *BookPicker) Len() int {
	if p.filteredIdx != nil {
		return len(p.filteredIdx)
	}
	return len(p.books)
}

// Highlighted returns the book under the cursor
func (p *BookPicker) Highlighted() (domain.Book, bool) {
	if p.cursor < 0 || p.cursor >= p.Len() {
		return domain.Book{}, false
	}
	if p.filteredIdx != nil {
		return p.books[p.filteredIdx[p.cursor]], true
	}
	return p.books[p.cursor], true
}

// Filtering reports whether the filter input has focus
func (p *BookPicker) Filtering() bool {
	return p.filterActive
}

// setFilter applies query as the filter text
func (p *BookPicker) setFilter(query string) {
	p.filterInput.SetValue(query)
	p.applyFilter()
}

// Help renders the key hints for the picker's current mode
func (p *BookPicker) Help() string {
	if p.Filtering() {
		return RenderHelp(PickerKeys.ApplyFilter, PickerKeys.ClearFilter)
	}
	return RenderHelp(PickerKeys.Toggle, PickerKeys.Filter, PickerKeys.Close)
}

// Reset clears the filter and moves the cursor to the top
func (p *BookPicker) Reset() {
	p.filterActive = false
	p.filterInput.SetValue("")
	p.filterInput.Blur()
	p.filteredIdx = nil
	p.cursor = 0
	p.offset = 0
}

// HandleKeyMsg processes a key. It returns the chosen book when the user
// toggles one, and closed when the picker should be dismissed.
func (p *BookPicker) HandleKeyMsg(msg tea.KeyMsg) (chosen *domain.Book, closed bool) {
	if p.filterActive {
		switch {
		case key.Matches(msg, PickerKeys.ClearFilter):
			p.Reset()
		case key.Matches(msg, PickerKeys.ApplyFilter):
			p.filterActive = false
			p.filterInput.Blur()
		default:
			p.filterInput, _ = p.filterInput.Update(msg)
			p.applyFilter()
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, PickerKeys.Close):
		return nil, true
	case key.Matches(msg, PickerKeys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, PickerKeys.Down):
		if p.cursor < p.Len()-1 {
			p.cursor++
		}
	case key.Matches(msg, PickerKeys.Filter):
		p.filterActive = true
		p.filterInput.Focus()
	case key.Matches(msg, PickerKeys.Toggle):
		if b, ok := p.Highlighted(); ok {
			return &b, false
		}
	}
	p.ensureVisible()
	return nil, false
}

func (p *BookPicker) applyFilter() {
	query := strings.TrimSpace(p.filterInput.Value())
	if query == "" {
		p.filteredIdx = nil
	} else {
		// Match against "title author", case-insensitive
		targets := make([]string, len(p.books))
		for i, b := range p.books {
			targets[i] = strings.ToLower(b.Title + " " + b.Author)
		}
		matches := fuzzy.Find(strings.ToLower(query), targets)
		p.filteredIdx = make([]int, len(matches))
		for i, match := range matches {
			p.filteredIdx[i] = match.Index
		}
	}

	if p.cursor >= p.Len() {
		p.cursor = max(p.Len()-1, 0)
	}
	p.ensureVisible()
}

func (p *BookPicker) ensureVisible() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+pickerMaxVisible {
		p.offset = p.cursor - pickerMaxVisible + 1
	}
}

// View renders the picker. marked decides which rows show a check.
func (p *BookPicker) View(width int, marked func(id string) bool) string {
	var lines []string

	if p.filterActive || p.filterInput.Value() != "" {
		lines = append(lines, p.filterInput.View())
	}

	if p.Len() == 0 {
		lines = append(lines, styles.DimStyle.Render("  No books to pick"))
		return strings.Join(lines, "\n")
	}

	end := min(p.offset+pickerMaxVisible, p.Len())
	for i := p.offset; i < end; i++ {
		idx := i
		if p.filteredIdx != nil {
			idx = p.filteredIdx[i]
		}
		b := p.books[idx]
		check := "[ ]"
		if marked != nil && marked(b.ID) {
			check = "[x]"
		}
		text := styles.Truncate(check+" "+b.Title+" · "+b.Author, width-4)
		parts := []styles.RowPart{{Text: text}}
		lines = append(lines, styles.RenderListRow(parts, i == p.cursor, width))
	}
	if p.Len() > pickerMaxVisible {
		lines = append(lines, styles.DimStyle.Render("  "+strings.Repeat("·", 3)))
	}
	return strings.Join(lines, "\n")
}
