package components

import "github.com/charmbracelet/bubbles/key"

// DialogKeyMap defines key bindings shared by the list dialogs
type DialogKeyMap struct {
	Next         key.Binding
	Prev         key.Binding
	Submit       key.Binding
	Cancel       key.Binding
	Picker       key.Binding
	AddBook      key.Binding
	RemoveLast   key.Binding
	DeleteList   key.Binding
	MemberUp     key.Binding
	MemberDown   key.Binding
	RemoveMember key.Binding
}

// DefaultDialogKeyMap returns the default dialog key bindings
func DefaultDialogKeyMap() DialogKeyMap {
	return DialogKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Picker: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "pick books"),
		),
		AddBook: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new book"),
		),
		RemoveLast: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "unselect last"),
		),
		DeleteList: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "delete list"),
		),
		MemberUp: key.NewBinding(
			key.WithKeys("ctrl+k", "up"),
			key.WithHelp("↑", "prev book"),
		),
		MemberDown: key.NewBinding(
			key.WithKeys("ctrl+j", "down"),
			key.WithHelp("↓", "next book"),
		),
		RemoveMember: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "remove book"),
		),
	}
}

// PickerKeyMap defines key bindings for the book picker
type PickerKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Filter      key.Binding
	ApplyFilter key.Binding
	ClearFilter key.Binding
	Close       key.Binding
}

// DefaultPickerKeyMap returns the default picker key bindings
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ApplyFilter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "ctrl+p"),
			key.WithHelp("esc", "done"),
		),
	}
}

// ConfirmKeyMap defines key bindings for the confirm dialog
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeyMap returns the default confirm key bindings
func DefaultConfirmKeyMap() ConfirmKeyMap {
	return ConfirmKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),
	}
}

// Package-level key map instances
var (
	DialogKeys  = DefaultDialogKeyMap()
	PickerKeys  = DefaultPickerKeyMap()
	ConfirmKeys = DefaultConfirmKeyMap()
)
