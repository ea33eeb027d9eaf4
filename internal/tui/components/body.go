package components

import "sync"

// DialogOpen is set on the Body while any dialog is mounted
const DialogOpen = "dialog-open"

// Body holds UI-wide mode markers shared by every view. Markers are
// reference counted so overlapping holders do not clear each other.
type Body struct {
	mu      sync.Mutex
	markers map[string]int
}

// NewBody creates a body with no markers
func NewBody() *Body {
	return &Body{markers: make(map[string]int)}
}

// Acquire sets marker and returns the function that clears it. The release
// function may be called any number of times; only the first call counts.
func (b *Body) Acquire(marker string) (release func()) {
	b.mu.Lock()
	b.markers[marker]++
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.markers[marker] <= 1 {
				delete(b.markers, marker)
				return
			}
			b.markers[marker]--
		})
	}
}

// Has reports whether marker is currently set
func (b *Body) Has(marker string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.markers[marker] > 0
}
