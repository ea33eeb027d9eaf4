package tui

// Message types for the TUI

// CatalogLoadedMsg signals that a load or reload settled. Outcome is read
// from the catalog's Loading and Error views.
type CatalogLoadedMsg struct{}

// CatalogChangedMsg signals that one or more catalog views changed
type CatalogChangedMsg struct{}

// TickMsg drives the spinner
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
