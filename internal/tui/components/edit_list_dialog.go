package components

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/reactive"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// EditListDialog edits an existing list. Name and description are drafts
// copied from the input list; membership changes go straight to the catalog.
type EditListDialog struct {
	dialogBase

	list       *reactive.Signal[domain.BookList]
	cancelList func()

	books       []domain.Book
	name        textinput.Model
	description textinput.Model
	form        bookForm
	focus       focusRing
	member      int // cursor in BooksInList

	picker      BookPicker
	showPicker  bool
	showAddBook bool

	showDeleteBook bool
	bookToRemove   *domain.Book
	showDeleteList bool
	confirm        *ConfirmDialog

	// pending holds a command produced inside a confirm callback
	pending tea.Cmd
}

// NewEditListDialog mounts the dialog for list and sets the body marker
// until Destroy
func NewEditListDialog(catalog Catalog, body *Body, list domain.BookList, books []domain.Book, timeout time.Duration) *EditListDialog {
	d := &EditListDialog{
		dialogBase:  newDialogBase(catalog, body, timeout),
		list:        reactive.NewSignal(domain.BookList{}),
		name:        newTextInput("List name", 100),
		description: newTextInput("Description (optional)", 500),
		form:        newBookForm(),
		picker:      NewBookPicker(),
	}
	d.cancelList = d.list.Subscribe(func(l domain.BookList) {
		d.name.SetValue(l.Name)
		d.description.SetValue(l.Description)
	})
	d.SetList(list)
	d.SetBooks(books)
	d.focus.apply(d.inputs())
	return d
}

// SetList replaces the input list. Drafts are re-copied only when the list
// value actually changes.
func (d *EditListDialog) SetList(list domain.BookList) {
	d.list.Set(list)
}

// List returns the input list
func (d *EditListDialog) List() domain.BookList {
	return d.list.Get()
}

// SetBooks replaces the full book collection
func (d *EditListDialog) SetBooks(books []domain.Book) {
	d.books = books
	d.picker.SetBooks(d.AvailableBooks())
	if n := len(d.BooksInList()); d.member >= n {
		d.member = max(n-1, 0)
	}
}

// Destroy drops the list subscription and clears the body marker
func (d *EditListDialog) Destroy() {
	if d.cancelList != nil {
		d.cancelList()
	}
	d.dialogBase.Destroy()
}

func (d *EditListDialog) ListName() string        { return d.name.Value() }
func (d *EditListDialog) ListDescription() string { return d.description.Value() }
func (d *EditListDialog) NewBookTitle() string    { return d.form.title.Value() }
func (d *EditListDialog) NewBookAuthor() string   { return d.form.author.Value() }
func (d *EditListDialog) NewBookYear() int        { return d.form.yearValue() }

func (d *EditListDialog) SetListName(s string)        { d.name.SetValue(s) }
func (d *EditListDialog) SetListDescription(s string) { d.description.SetValue(s) }
func (d *EditListDialog) SetNewBookTitle(s string)    { d.form.title.SetValue(s) }
func (d *EditListDialog) SetNewBookAuthor(s string)   { d.form.author.SetValue(s) }

func (d *EditListDialog) ShowBookPicker() bool       { return d.showPicker }
func (d *EditListDialog) ShowAddBookForm() bool      { return d.showAddBook }
func (d *EditListDialog) ShowDeleteBookDialog() bool { return d.showDeleteBook }
func (d *EditListDialog) ShowDeleteListDialog() bool { return d.showDeleteList }

// BookToRemove returns the book armed for removal
func (d *EditListDialog) BookToRemove() (domain.Book, bool) {
	if d.bookToRemove == nil {
		return domain.Book{}, false
	}
	return *d.bookToRemove, true
}

func (d *EditListDialog) IsFormValid() bool {
	return domain.HasText(d.name.Value())
}

func (d *EditListDialog) IsNewBookValid() bool {
	return d.form.valid()
}

// BooksInList is the live membership as the catalog currently sees it
func (d *EditListDialog) BooksInList() []domain.Book {
	return d.catalog.GetBooksForList(d.list.Get().ID)
}

// AvailableBooks are the input books not already in the list
func (d *EditListDialog) AvailableBooks() []domain.Book {
	inList := make(map[string]bool)
	for _, b := range d.BooksInList() {
		inList[b.ID] = true
	}
	out := make([]domain.Book, 0, len(d.books))
	for _, b := range d.books {
		if !inList[b.ID] {
			out = append(out, b)
		}
	}
	return out
}

func (d *EditListDialog) ToggleBookPicker() {
	d.showPicker = !d.showPicker
	if d.showPicker {
		d.picker.SetBooks(d.AvailableBooks())
	} else {
		d.picker.Reset()
	}
}

// AddBookToList links an existing book to the list
func (d *EditListDialog) AddBookToList(bookID string) tea.Cmd {
	listID := d.list.Get().ID
	return runOp(d.timeout, "add-to-list", func(ctx context.Context) {
		d.catalog.AddBookToList(ctx, listID, bookID)
	})
}

// ToggleAddBookForm opens or closes the new-book form. Closing resets it.
func (d *EditListDialog) ToggleAddBookForm() {
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

// AddNewBookAndLink creates the drafted book; the reply links it to the list
func (d *EditListDialog) AddNewBookAndLink() tea.Cmd {
	if !d.IsNewBookValid() {
		return nil
	}
	return addBookCmd(d.catalog, d.timeout, d.id, d.form.title.Value(), d.form.author.Value(), d.form.yearValue())
}

func (d *EditListDialog) handleBookAdded(msg BookAddedMsg) tea.Cmd {
	if !msg.OK {
		return nil
	}
	d.showAddBook = false
	d.form.reset()
	d.focus.index = 0
	d.focus.apply(d.inputs())
	return d.AddBookToList(msg.Book.ID)
}

// UpdateList saves name and description and closes. Invalid forms do nothing.
func (d *EditListDialog) UpdateList() tea.Cmd {
	if !d.IsFormValid() {
		return nil
	}
	id, name, description := d.list.Get().ID, d.name.Value(), d.description.Value()
	cmd := runOp(d.timeout, "update-list", func(ctx context.Context) {
		d.catalog.UpdateBookList(ctx, id, name, description)
	})
	d.Close()
	return cmd
}

// ConfirmRemoveBook arms the remove-one-book confirmation for book
func (d *EditListDialog) ConfirmRemoveBook(book domain.Book) {
	d.bookToRemove = &book
	d.showDeleteBook = true
	d.openConfirm(
		[]ConfirmOption{
			WithTitle("Remove book"),
			WithMessage(fmt.Sprintf("Remove %q from this list?", book.Title)),
			WithConfirmLabel("Remove"),
		},
		func() { d.pending = d.RemoveBook() },
		d.CancelRemoveBook,
	)
}

// RemoveBook removes the armed book from the list and disarms
func (d *EditListDialog) RemoveBook() tea.Cmd {
	var cmd tea.Cmd
	if d.bookToRemove != nil {
		listID, bookID := d.list.Get().ID, d.bookToRemove.ID
		cmd = runOp(d.timeout, "remove-from-list", func(ctx context.Context) {
			d.catalog.RemoveBookFromList(ctx, listID, bookID)
		})
	}
	d.showDeleteBook = false
	d.bookToRemove = nil
	d.confirm = nil
	return cmd
}

func (d *EditListDialog) CancelRemoveBook() {
	d.showDeleteBook = false
	d.bookToRemove = nil
	d.confirm = nil
}

// ConfirmDeleteList arms the delete-list confirmation
func (d *EditListDialog) ConfirmDeleteList() {
	d.showDeleteList = true
	d.openConfirm(
		[]ConfirmOption{
			WithTitle("Delete list"),
			WithMessage(fmt.Sprintf("Delete %q? Its books stay in the catalog.", d.list.Get().Name)),
		},
		func() { d.pending = d.DeleteList() },
		d.CancelDeleteList,
	)
}

// DeleteList deletes the list, disarms and closes
func (d *EditListDialog) DeleteList() tea.Cmd {
	id := d.list.Get().ID
	cmd := runOp(d.timeout, "delete-list", func(ctx context.Context) {
		d.catalog.DeleteBookList(ctx, id)
	})
	d.showDeleteList = false
	d.confirm = nil
	d.Close()
	return cmd
}

func (d *EditListDialog) CancelDeleteList() {
	d.showDeleteList = false
	d.confirm = nil
}

func (d *EditListDialog) openConfirm(opts []ConfirmOption, onConfirm, onCancel func()) {
	c := NewConfirmDialog(opts...)
	c.Confirmed.Subscribe(func(struct{}) { onConfirm() })
	c.Cancelled.Subscribe(func(struct{}) { onCancel() })
	d.confirm = c
}

func (d *EditListDialog) inputs() []*textinput.Model {
	in := []*textinput.Model{&d.name, &d.description}
	if d.showAddBook {
		in = append(in, d.form.inputs()...)
	}
	return in
}

// Update handles keys and replies addressed to this dialog
func (d *EditListDialog) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case BookAddedMsg:
		if msg.Owner == d.id {
			return d.handleBookAdded(msg)
		}
		return nil
	case tea.KeyMsg:
		return d.handleKeyMsg(msg)
	}
	return nil
}

func (d *EditListDialog) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if d.confirm != nil {
		d.confirm.HandleKeyMsg(msg)
		cmd := d.pending
		d.pending = nil
		return cmd
	}

	if d.showPicker {
		chosen, closed := d.picker.HandleKeyMsg(msg)
		if closed {
			d.ToggleBookPicker()
		}
		if chosen != nil {
			return d.AddBookToList(chosen.ID)
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
	case key.Matches(msg, DialogKeys.Next):
		d.focus.next(inputs)
	case key.Matches(msg, DialogKeys.Prev):
		d.focus.prev(inputs)
	case key.Matches(msg, DialogKeys.Picker):
		d.ToggleBookPicker()
	case key.Matches(msg, DialogKeys.AddBook):
		d.ToggleAddBookForm()
	case key.Matches(msg, DialogKeys.DeleteList):
		d.ConfirmDeleteList()
	case key.Matches(msg, DialogKeys.MemberUp):
		if d.member > 0 {
			d.member--
		}
	case key.Matches(msg, DialogKeys.MemberDown):
		if d.member < len(d.BooksInList())-1 {
			d.member++
		}
	case key.Matches(msg, DialogKeys.RemoveMember):
		members := d.BooksInList()
		if d.member < len(members) {
			d.ConfirmRemoveBook(members[d.member])
		}
	case key.Matches(msg, DialogKeys.Submit):
		if d.showAddBook && d.focus.index >= 2 {
			return d.AddNewBookAndLink()
		}
		return d.UpdateList()
	default:
		return d.focus.updateFocused(inputs, msg)
	}
	return nil
}

// View renders the dialog, or the active confirmation on top of it
func (d *EditListDialog) View() string {
	if d.confirm != nil {
		return d.confirm.View()
	}

	const width = 48
	var lines []string

	lines = append(lines, styles.ModalTitleStyle.Render("Edit list"))
	inputs := d.inputs()
	lines = append(lines, renderField("Name", inputs, 0, d.focus.index))
	lines = append(lines, renderField("Description", inputs, 1, d.focus.index))
	lines = append(lines, "")

	members := d.BooksInList()
	lines = append(lines, styles.LabelStyle.Render("Books ("+domain.CountLabel(len(members))+")"))
	if len(members) == 0 {
		lines = append(lines, styles.DimStyle.Render("  No books in this list yet"))
	}
	for i, b := range members {
		card := NewBookCard(b)
		card.ShowRemove = true
		card.Selected = i == d.member
		lines = append(lines, card.View(width))
	}

	if d.showPicker {
		lines = append(lines, "", styles.LabelStyle.Render("Add existing book"))
		lines = append(lines, d.picker.View(width, nil))
		lines = append(lines, "", d.picker.Help())
	} else {
		if d.showAddBook {
			lines = append(lines, "", styles.LabelStyle.Render("New book"))
			lines = append(lines, renderField("Title", inputs, 2, d.focus.index))
			lines = append(lines, renderField("Author", inputs, 3, d.focus.index))
			lines = append(lines, renderField("Year", inputs, 4, d.focus.index))
			lines = append(lines, renderButton("Add and link", d.IsNewBookValid()))
		}
		lines = append(lines, "", renderButton("Save", d.IsFormValid()))
		lines = append(lines, "", RenderHelp(DialogKeys.Picker, DialogKeys.AddBook, DialogKeys.RemoveMember, DialogKeys.DeleteList, DialogKeys.Submit, DialogKeys.Cancel))
	}

	return styles.ModalStyle.Width(width + 4).Render(strings.Join(lines, "\n"))
}
