package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings
type KeyMap struct {
	// Navigation
	Up         key.Binding
	Down       key.Binding
	Home       key.Binding
	End        key.Binding
	SwitchPane key.Binding

	// Actions
	Edit       key.Binding
	NewList    key.Binding
	DeleteBook key.Binding
	Filter     key.Binding
	Reload     key.Binding
	Help       key.Binding
	Escape     key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab", "h", "l", "left", "right"),
			key.WithHelp("tab", "switch pane"),
		),

		// Actions
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit list"),
		),
		NewList: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new list"),
		),
		DeleteBook: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete book"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter books"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
