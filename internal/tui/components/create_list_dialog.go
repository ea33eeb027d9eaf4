package components

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/reactive"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// CreateListDialog drafts a new list: name, description, an initial
// selection of existing books and optionally brand-new books.
type CreateListDialog struct {
	dialogBase

	// Created fires just before Closed when a list is submitted
	Created *reactive.Emitter[struct{}]

	books       []domain.Book
	name        textinput.Model
	description textinput.Model
	form        bookForm
	focus       focusRing

	// selected keeps insertion order; membership is unique
	selected []string

	picker      BookPicker
	showPicker  bool
	showAddBook bool
}

// NewCreateListDialog mounts the dialog and sets the body marker until Destroy
func NewCreateListDialog(catalog Catalog, body *Body, books []domain.Book, timeout time.Duration) *CreateListDialog {
	d := &CreateListDialog{
		dialogBase:  newDialogBase(catalog, body, timeout),
		Created:     reactive.NewEmitter[struct{}](),
		name:        newTextInput("List name", 100),
		description: newTextInput("Description (optional)", 500),
		form:        newBookForm(),
		picker:      NewBookPicker(),
	}
	d.SetBooks(books)
	d.focus.apply(d.inputs())
	return d
}

// SetBooks replaces the candidate books
func (d *CreateListDialog) SetBooks(books []domain.Book) {
	d.books = books
	d.picker.SetBooks(books)
}

func (d *CreateListDialog) ListName() string        { return d.name.Value() }
func (d *CreateListDialog) ListDescription() string { return d.description.Value() }
func (d *CreateListDialog) NewBookTitle() string    { return d.form.title.Value() }
func (d *CreateListDialog) NewBookAuthor() string   { return d.form.author.Value() }
func (d *CreateListDialog) NewBookYear() int        { return d.form.yearValue() }

func (d *CreateListDialog) SetListName(s string)        { d.name.SetValue(s) }
func (d *CreateListDialog) SetListDescription(s string) { d.description.SetValue(s) }
func (d *CreateListDialog) SetNewBookTitle(s string)    { d.form.title.SetValue(s) }
func (d *CreateListDialog) SetNewBookAuthor(s string)   { d.form.author.SetValue(s) }

// ShowBookPicker reports whether the picker is open
func (d *CreateListDialog) ShowBookPicker() bool { return d.showPicker }

// ShowAddBookForm reports whether the new-book form is open
func (d *CreateListDialog) ShowAddBookForm() bool { return d.showAddBook }

// IsFormValid reports whether the list can be created
func (d *CreateListDialog) IsFormValid() bool {
	return domain.HasText(d.name.Value())
}

// IsNewBookValid reports whether the new-book form can be submitted
func (d *CreateListDialog) IsNewBookValid() bool {
	return d.form.valid()
}

func (d *CreateListDialog) IsBookSelected(id string) bool {
	return slices.Contains(d.selected, id)
}

// ToggleBook flips membership of id in the selection
func (d *CreateListDialog) ToggleBook(id string) {
	if d.IsBookSelected(id) {
		d.RemoveSelectedBook(id)
		return
	}
	d.selected = append(d.selected, id)
}

// RemoveSelectedBook unselects id
func (d *CreateListDialog) RemoveSelectedBook(id string) {
	d.selected = slices.DeleteFunc(d.selected, func(s string) bool { return s == id })
}

// SelectedBookIDs returns the selection in the order it was made
func (d *CreateListDialog) SelectedBookIDs() []string {
	return slices.Clone(d.selected)
}

// SelectedBooks returns the selected books in input order
func (d *CreateListDialog) SelectedBooks() []domain.Book {
	var out []domain.Book
	for _, b := range d.books {
		if d.IsBookSelected(b.ID) {
			out = append(out, b)
		}
	}
	return out
}

func (d *CreateListDialog) ToggleBookPicker() {
	d.showPicker = !d.showPicker
	if !d.showPicker {
		d.picker.Reset()
	}
}

// ToggleAddBookForm opens or closes the new-book form. Closing resets it.
func (d *CreateListDialog) ToggleAddBookForm() {
	d.showAddBook = !d.showAddBook
	if !d.showAddBook {
		d.form.reset()
	}
	d.focus.index = 0
	if d.showAddBook {
		d.focus.index = 2
	}
	d.focus.apply(d.inputs())
}

// AddNewBook creates the drafted book. Nothing happens if the form is invalid.
func (d *CreateListDialog) AddNewBook() tea.Cmd {
	if !d.IsNewBookValid() {
		return nil
	}
	return addBookCmd(d.catalog, d.timeout, d.id, d.form.title.Value(), d.form.author.Value(), d.form.yearValue())
}

// handleBookAdded selects the created book and closes the form
func (d *CreateListDialog) handleBookAdded(msg BookAddedMsg) {
	if !msg.OK {
		return
	}
	if !d.IsBookSelected(msg.Book.ID) {
		d.selected = append(d.selected, msg.Book.ID)
	}
	d.showAddBook = false
	d.form.reset()
	d.focus.index = 0
	d.focus.apply(d.inputs())
}

// CreateList submits the list and emits Created then Closed. An invalid form
// does nothing.
func (d *CreateListDialog) CreateList() tea.Cmd {
	if !d.IsFormValid() {
		return nil
	}
	name, description, ids := d.name.Value(), d.description.Value(), d.SelectedBookIDs()
	cmd := runOp(d.timeout, "create-list", func(ctx context.Context) {
		d.catalog.CreateBookList(ctx, name, description, ids)
	})

	d.Created.Emit(struct{}{})
	d.Close()
	return cmd
}

func (d *CreateListDialog) inputs() []*textinput.Model {
	in := []*textinput.Model{&d.name, &d.description}
	if d.showAddBook {
		in = append(in, d.form.inputs()...)
	}
	return in
}

// Update handles keys and replies addressed to this dialog
func (d *CreateListDialog) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case BookAddedMsg:
		if msg.Owner == d.id {
			d.handleBookAdded(msg)
		}
		return nil
	case tea.KeyMsg:
		return d.handleKeyMsg(msg)
	}
	return nil
}

func (d *CreateListDialog) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if d.showPicker {
		chosen, closed := d.picker.HandleKeyMsg(msg)
		if chosen != nil {
			d.ToggleBook(chosen.ID)
		}
		if closed {
			d.ToggleBookPicker()
		}
		return nil
	}

	inputs := d.inputs()
	switch {
	case key.Matches(msg, DialogKeys.Cancel):
		if d.showAddBook {
			d.ToggleAddBookForm()
			return nil
		}
		d.Close()
		return nil
	case key.Matches(msg, DialogKeys.Next):
		d.focus.next(inputs)
	case key.Matches(msg, DialogKeys.Prev):
		d.focus.prev(inputs)
	case key.Matches(msg, DialogKeys.Picker):
		d.ToggleBookPicker()
	case key.Matches(msg, DialogKeys.AddBook):
		d.ToggleAddBookForm()
	case key.Matches(msg, DialogKeys.RemoveLast):
		if n := len(d.selected); n > 0 {
			d.RemoveSelectedBook(d.selected[n-1])
		}
	case key.Matches(msg, DialogKeys.Submit):
		if d.showAddBook && d.focus.index >= 2 {
			return d.AddNewBook()
		}
		return d.CreateList()
	default:
		return d.focus.updateFocused(inputs, msg)
	}
	return nil
}

// View renders the dialog
func (d *CreateListDialog) View() string {
	const width = 48
	var lines []string

	lines = append(lines, styles.ModalTitleStyle.Render("New list"))
	inputs := d.inputs()
	lines = append(lines, renderField("Name", inputs, 0, d.focus.index))
	lines = append(lines, renderField("Description", inputs, 1, d.focus.index))
	lines = append(lines, "")

	selected := d.SelectedBooks()
	lines = append(lines, styles.LabelStyle.Render("Books ("+domain.CountLabel(len(selected))+")"))
	for _, b := range selected {
		lines = append(lines, NewBookCard(b).View(width))
	}

	if d.showPicker {
		lines = append(lines, "", d.picker.View(width, d.IsBookSelected))
		lines = append(lines, "", d.picker.Help())
	} else {
		if d.showAddBook {
			lines = append(lines, "", styles.LabelStyle.Render("New book"))
			lines = append(lines, renderField("Title", inputs, 2, d.focus.index))
			lines = append(lines, renderField("Author", inputs, 3, d.focus.index))
			lines = append(lines, renderField("Year", inputs, 4, d.focus.index))
			lines = append(lines, renderButton("Add book", d.IsNewBookValid()))
		}
		lines = append(lines, "", renderButton("Create list", d.IsFormValid()))
		lines = append(lines, "", RenderHelp(DialogKeys.Next, DialogKeys.Picker, DialogKeys.AddBook, DialogKeys.Submit, DialogKeys.Cancel))
	}

	return styles.ModalStyle.Width(width + 4).Render(strings.Join(lines, "\n"))
}

func renderField(label string, inputs []*textinput.Model, index, focused int) string {
	style := styles.LabelStyle
	if index == focused {
		style = styles.FocusedLabelStyle
	}
	return style.Render(styles.Pad(label, 12)) + inputs[index].View()
}

func renderButton(label string, enabled bool) string {
	if enabled {
		return styles.ButtonStyle.Render(label)
	}
	return styles.DisabledButtonStyle.Render(label)
}
