package reactive

// Emitter delivers typed events to its subscribers in registration order
type Emitter[T any] struct {
	subs subscribers[T]
}

// NewEmitter creates an emitter with no subscribers
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{}
}

// Subscribe registers fn for every subsequent Emit
func (e *Emitter[T]) Subscribe(fn func(T)) func() {
	return e.subs.add(fn)
}

// Emit delivers v to all current subscribers and returns how many received it
func (e *Emitter[T]) Emit(v T) int {
	return e.subs.notify(v)
}
