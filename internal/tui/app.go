package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/reactive"
	"github.com/mmcdole/shelf/internal/tui/components"
)

const (
	tickInterval   = 100 * time.Millisecond
	statusDuration = 3 * time.Second
	defaultTimeout = 30 * time.Second
)

// Catalog is the catalog service as the dashboard uses it
type Catalog interface {
	components.Catalog

	Books() reactive.View[[]domain.Book]
	BookLists() reactive.View[[]domain.BookList]
	Loading() reactive.View[bool]
	Error() reactive.View[string]
	OnChange(fn func()) (unsubscribe func())

	LoadAll(ctx context.Context)
	Reload(ctx context.Context)
	DeleteBook(ctx context.Context, id string)
	SearchBooks(query string) []domain.Book
	BookCount(listID string) int
}

// Pane identifies a dashboard pane
type Pane int

const (
	PaneLists Pane = iota
	PaneBooks
)

// Model is the main Bubble Tea model for the application
type Model struct {
	catalog Catalog
	body    *components.Body
	timeout time.Duration
	logger  *slog.Logger

	changes     chan struct{}
	unsubscribe func()

	// Dimensions
	Width  int
	Height int
	Ready  bool

	// Panes
	Focus   Pane
	lists   cursor
	books   cursor
	filter  textinput.Model
	typing  bool
	query   string

	// Dialogs. At most one is mounted at a time.
	createDialog *components.CreateListDialog
	editDialog   *components.EditListDialog
	confirm      *components.ConfirmDialog
	releaseConf  func()
	closeDialog  bool
	pending      tea.Cmd

	// followLists is the list count before a create; the cursor jumps to the
	// new list once the count grows
	followLists int

	// UI state
	ShowHelp     bool
	StatusMsg    string
	SpinnerFrame int
}

// Option configures a Model
type Option func(*Model)

// WithTimeout sets the deadline for each catalog command
func WithTimeout(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithLogger sets the model's logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewModel creates the dashboard over svc. Catalog changes are forwarded
// into the program until Teardown.
func NewModel(svc Catalog, body *components.Body, opts ...Option) *Model {
	if body == nil {
		body = components.NewBody()
	}
	m := &Model{
		catalog:     svc,
		body:        body,
		timeout:     defaultTimeout,
		logger:      slog.Default(),
		changes:     make(chan struct{}, 1),
		filter:      newFilterInput(),
		followLists: -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.unsubscribe = svc.OnChange(NewChangeObserver(m.changes).Notify)
	return m
}

// Body returns the shared body marker set
func (m *Model) Body() *components.Body {
	return m.body
}

// Init loads the catalog and starts the spinner and change listener
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		LoadCatalogCmd(m.catalog, m.timeout),
		TickCmd(tickInterval),
		ListenForChangesCmd(m.changes),
	)
}

// Teardown destroys any mounted dialog and stops forwarding changes. Safe to
// call more than once.
func (m *Model) Teardown() {
	m.destroyDialogs()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Update handles all messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case CatalogChangedMsg:
		m.syncWithCatalog()
		return m, ListenForChangesCmd(m.changes)

	case CatalogLoadedMsg:
		m.syncWithCatalog()
		if errMsg := m.catalog.Error().Get(); errMsg != "" {
			m.logger.Warn("catalog load finished with error", "error", errMsg)
		}
		return m, nil

	case components.BookAddedMsg:
		return m, m.routeToDialog(msg)

	case components.CatalogOpMsg:
		m.logger.Debug("catalog operation finished", "op", msg.Op)
		if msg.Op == "create-list" {
			return m, m.finishCreate()
		}
		return m, nil

	case ClearStatusMsg:
		m.StatusMsg = ""
		return m, nil
	}

	return m, nil
}

// syncWithCatalog clamps cursors and hands fresh books to an open dialog
func (m *Model) syncWithCatalog() {
	lists := m.catalog.BookLists().Get()
	if m.followLists >= 0 && len(lists) > m.followLists {
		m.lists.index = len(lists) - 1
		m.followLists = -1
		m.StatusMsg = "Created list"
	}
	m.lists.clamp(len(lists))
	m.books.clamp(len(m.visibleBooks()))

	books := m.catalog.Books().Get()
	switch {
	case m.createDialog != nil:
		m.createDialog.SetBooks(books)
	case m.editDialog != nil:
		m.editDialog.SetBooks(books)
	}
}

// finishCreate settles a submitted list once its request has returned. The
// service has already applied or rejected it by then.
func (m *Model) finishCreate() tea.Cmd {
	m.syncWithCatalog()
	if m.followLists >= 0 {
		// rejected; the error view carries the reason
		m.followLists = -1
		m.StatusMsg = ""
		return nil
	}
	return ClearStatusCmd(statusDuration)
}

// DialogOpen reports whether any dialog is mounted
func (m *Model) DialogOpen() bool {
	return m.createDialog != nil || m.editDialog != nil || m.confirm != nil
}

func (m *Model) openCreateDialog() {
	d := components.NewCreateListDialog(m.catalog, m.body, m.catalog.Books().Get(), m.timeout)
	d.Closed.Subscribe(func(struct{}) { m.closeDialog = true })
	d.Created.Subscribe(func(struct{}) {
		m.followLists = len(m.catalog.BookLists().Get())
		m.StatusMsg = "Creating list..."
	})
	m.createDialog = d
}

func (m *Model) openEditDialog(list domain.BookList) {
	d := components.NewEditListDialog(m.catalog, m.body, list, m.catalog.Books().Get(), m.timeout)
	d.Closed.Subscribe(func(struct{}) { m.closeDialog = true })
	m.editDialog = d
}

// confirmDeleteBook asks before deleting book from the catalog
func (m *Model) confirmDeleteBook(book domain.Book) {
	c := components.NewConfirmDialog(
		components.WithTitle("Delete book"),
		components.WithMessage(fmt.Sprintf("Delete %q from the catalog? It is removed from every list.", book.Title)),
	)
	c.Confirmed.Subscribe(func(struct{}) {
		m.pending = DeleteBookCmd(m.catalog, m.timeout, book.ID)
		m.closeDialog = true
	})
	c.Cancelled.Subscribe(func(struct{}) { m.closeDialog = true })
	m.confirm = c
	m.releaseConf = m.body.Acquire(components.DialogOpen)
}

// routeToDialog hands msg to the mounted dialog and unmounts it if it asked
// to close
func (m *Model) routeToDialog(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.confirm != nil:
		if km, ok := msg.(tea.KeyMsg); ok {
			m.confirm.HandleKeyMsg(km)
		}
		cmd, m.pending = m.pending, nil
	case m.createDialog != nil:
		cmd = m.createDialog.Update(msg)
	case m.editDialog != nil:
		cmd = m.editDialog.Update(msg)
	}

	if m.closeDialog {
		m.destroyDialogs()
	}
	return cmd
}

func (m *Model) destroyDialogs() {
	if m.createDialog != nil {
		m.createDialog.Destroy()
		m.createDialog = nil
	}
	if m.editDialog != nil {
		m.editDialog.Destroy()
		m.editDialog = nil
	}
	if m.confirm != nil {
		m.confirm = nil
		m.releaseConf()
		m.releaseConf = nil
	}
	m.closeDialog = false
}
