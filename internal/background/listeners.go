package background

// Listeners is a registration list hosts can use to implement the On methods
// of Host. Detaching is idempotent and safe while Each is iterating.
type Listeners[F any] struct {
	next    int
	entries []listener[F]
}

type listener[F any] struct {
	id int
	fn F
}

// Add registers fn and returns its detach function
func (l *Listeners[F]) Add(fn F) func() {
	l.next++
	id := l.next
	l.entries = append(l.entries, listener[F]{id: id, fn: fn})
	return func() { l.remove(id) }
}

func (l *Listeners[F]) remove(id int) {
	for i, e := range l.entries {
		if e.id == id {
			// copy so an Each in progress keeps its own slice
			entries := make([]listener[F], 0, len(l.entries)-1)
			entries = append(entries, l.entries[:i]...)
			l.entries = append(entries, l.entries[i+1:]...)
			return
		}
	}
}

// Each calls visit for every listener registered when Each was called, in
// registration order.
func (l *Listeners[F]) Each(visit func(F)) {
	for _, e := range l.entries {
		visit(e.fn)
	}
}

func (l *Listeners[F]) Len() int { return len(l.entries) }
