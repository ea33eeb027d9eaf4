package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/reactive"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// dialogBase is the lifecycle shared by the list dialogs: an owner ID for
// routing replies, the body marker guard and the Closed event.
type dialogBase struct {
	id      string
	catalog Catalog
	timeout time.Duration
	release func()

	// Closed fires when the dialog asks its parent to unmount it
	Closed *reactive.Emitter[struct{}]
}

func newDialogBase(catalog Catalog, body *Body, timeout time.Duration) dialogBase {
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}
	return dialogBase{
		id:      uuid.NewString(),
		catalog: catalog,
		timeout: timeout,
		release: body.Acquire(DialogOpen),
		Closed:  reactive.NewEmitter[struct{}](),
	}
}

// ID identifies the dialog in BookAddedMsg.Owner
func (d *dialogBase) ID() string {
	return d.id
}

// Close asks the parent to unmount the dialog
func (d *dialogBase) Close() {
	d.Closed.Emit(struct{}{})
}

// Destroy clears the body marker. Safe to call more than once.
func (d *dialogBase) Destroy() {
	d.release()
}

func newTextInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 36
	ti.Prompt = ""
	ti.PlaceholderStyle = styles.DimStyle
	return ti
}

// bookForm is the new-book sub-form: title, author and year
type bookForm struct {
	title  textinput.Model
	author textinput.Model
	year   textinput.Model
}

func newBookForm() bookForm {
	f := bookForm{
		title:  newTextInput("Title", 200),
		author: newTextInput("Author", 200),
		year:   newTextInput("Year", 4),
	}
	f.reset()
	return f
}

// reset clears title and author and sets the year to the current year
func (f *bookForm) reset() {
	f.title.SetValue("")
	f.author.SetValue("")
	f.year.SetValue(strconv.Itoa(time.Now().Year()))
}

func (f *bookForm) valid() bool {
	return domain.HasText(f.title.Value()) && domain.HasText(f.author.Value())
}

// yearValue parses the year field; unparseable input yields 0
func (f *bookForm) yearValue() int {
	y, err := strconv.Atoi(strings.TrimSpace(f.year.Value()))
	if err != nil {
		return 0
	}
	return y
}

func (f *bookForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.title, &f.author, &f.year}
}

// focusRing moves focus across a dialog's text inputs
type focusRing struct {
	index int
}

func (r *focusRing) apply(inputs []*textinput.Model) {
	if r.index >= len(inputs) {
		r.index = 0
	}
	for i, in := range inputs {
		if i == r.index {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (r *focusRing) next(inputs []*textinput.Model) {
	if len(inputs) > 0 {
		r.index = (r.index + 1) % len(inputs)
	}
	r.apply(inputs)
}

func (r *focusRing) prev(inputs []*textinput.Model) {
	if len(inputs) > 0 {
		r.index = (r.index - 1 + len(inputs)) % len(inputs)
	}
	r.apply(inputs)
}

// updateFocused routes msg to the focused input
func (r *focusRing) updateFocused(inputs []*textinput.Model, msg tea.Msg) tea.Cmd {
	if r.index < 0 || r.index >= len(inputs) {
		return nil
	}
	var cmd tea.Cmd
	*inputs[r.index], cmd = inputs[r.index].Update(msg)
	return cmd
}
