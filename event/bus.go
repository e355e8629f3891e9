package event

// Publisher accepts events from the simulation core.
type Publisher interface {
	Publish(evt Event)
}

// Listener receives published events.
type Listener func(evt Event)

// Bus delivers events synchronously, in subscription order, on the
// publishing goroutine. It is not safe for concurrent use; the simulation
// publishes from a single tick.
type Bus struct {
	listeners []Listener
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers l and returns a func that removes it.
func (b *Bus) Subscribe(l Listener) func() {
	if b == nil || l == nil {
		return func() {}
	}
	b.listeners = append(b.listeners, l)
	idx := len(b.listeners) - 1
	return func() {
		if idx < len(b.listeners) {
			b.listeners[idx] = nil
		}
	}
}

func (b *Bus) Publish(evt Event) {
	if b == nil || evt == nil {
		return
	}
	for _, l := range b.listeners {
		if l != nil {
			l(evt)
		}
	}
}

// Recorder collects events in order. Useful for collaborators that poll
// once per frame, and for tests.
type Recorder struct {
	events []Event
}

func (r *Recorder) Publish(evt Event) {
	if r == nil || evt == nil {
		return
	}
	r.events = append(r.events, evt)
}

// Events returns the recorded events without clearing them.
func (r *Recorder) Events() []Event {
	if r == nil {
		return nil
	}
	return r.events
}

// Drain returns all recorded events and clears the recorder.
func (r *Recorder) Drain() []Event {
	if r == nil || len(r.events) == 0 {
		return nil
	}
	out := r.events
	r.events = nil
	return out
}

// Count returns how many recorded events have kind k.
func (r *Recorder) Count(k Kind) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, evt := range r.events {
		if evt.Kind() == k {
			n++
		}
	}
	return n
}

// Last returns the most recent event of kind k.
func (r *Recorder) Last(k Kind) (Event, bool) {
	if r == nil {
		return nil, false
	}
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind() == k {
			return r.events[i], true
		}
	}
	return nil, false
}
