package tui

// Layout proportions for the two panes
const (
	ListsPanePercent = 40
	MinPaneWidth     = 20

	// Vertical layout: filter line + footer line
	ChromeHeight = 2

	// Border rows and title row inside each pane
	paneChrome = 3
)

// paneLayout holds calculated pane sizes for the View
type paneLayout struct {
	listsWidth int
	booksWidth int
	height     int
}

// calculateLayout splits the window between the lists and books panes
func (m *Model) calculateLayout() paneLayout {
	layout := paneLayout{height: max(m.Height-ChromeHeight, paneChrome+1)}

	layout.listsWidth = max(m.Width*ListsPanePercent/100, MinPaneWidth)
	layout.booksWidth = max(m.Width-layout.listsWidth, MinPaneWidth)
	return layout
}

// rows is the number of item rows visible inside a pane
func (l paneLayout) rows() int {
	return l.height - paneChrome
}
