package tui

// ChangeObserver forwards catalog change notifications to a channel for
// Bubble Tea. Sends never block, so a burst of changes coalesces into the
// buffered slots.
type ChangeObserver struct {
	ch chan<- struct{}
}

// NewChangeObserver creates a new channel-based observer.
func NewChangeObserver(ch chan<- struct{}) *ChangeObserver {
	return &ChangeObserver{ch: ch}
}

// Notify signals a change (non-blocking if channel full).
func (o *ChangeObserver) Notify() {
	select {
	case o.ch <- struct{}{}:
	default: // Non-blocking if channel full
	}
}
