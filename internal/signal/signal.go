// Package signal provides typed signal/slot primitives. A component owns its
// signals and hands them to collaborators that need to observe them.
//
// Signals are not safe for concurrent use. They are emitted and subscribed
// from the bubbletea update loop only.
package signal

// Signal delivers values of type T to every subscribed slot, in the order the
// slots were subscribed.
type Signal[T any] struct {
	name  string
	next  uint64
	slots []slot[T]
}

type slot[T any] struct {
	id uint64
	fn func(T)
}

// Subscription is a handle returned by Subscribe. Releasing it detaches the
// slot; releasing twice is harmless.
type Subscription interface {
	Release()
}

// New creates a named signal. The name only shows up in diagnostics.
func New[T any](name string) *Signal[T] {
	return &Signal[T]{name: name}
}

// Name returns the signal's name.
func (s *Signal[T]) Name() string {
	return s.name
}

// Subscribe attaches fn and returns the handle that detaches it.
func (s *Signal[T]) Subscribe(fn func(T)) Subscription {
	s.next++
	id := s.next
	s.slots = append(s.slots, slot[T]{id: id, fn: fn})
	return &subscription[T]{signal: s, id: id}
}

// Emit calls every slot with v. Slots subscribed during Emit are not called
// until the next emission.
func (s *Signal[T]) Emit(v T) {
	slots := make([]slot[T], len(s.slots))
	copy(slots, s.slots)
	for _, sl := range slots {
		if s.has(sl.id) {
			sl.fn(v)
		}
	}
}

// Len returns the number of attached slots.
func (s *Signal[T]) Len() int {
	return len(s.slots)
}

func (s *Signal[T]) has(id uint64) bool {
	for _, sl := range s.slots {
		if sl.id == id {
			return true
		}
	}
	return false
}

func (s *Signal[T]) remove(id uint64) {
	for i, sl := range s.slots {
		if sl.id == id {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			return
		}
	}
}

type subscription[T any] struct {
	signal *Signal[T]
	id     uint64
}

func (sub *subscription[T]) Release() {
	if sub.signal == nil {
		return
	}
	sub.signal.remove(sub.id)
	sub.signal = nil
}

// Group collects subscriptions so they can be released together.
type Group struct {
	subs []Subscription
}

// Add keeps sub in the group.
func (g *Group) Add(sub Subscription) {
	g.subs = append(g.subs, sub)
}

// Len returns the number of subscriptions held.
func (g *Group) Len() int {
	return len(g.subs)
}

// Release releases every held subscription and empties the group.
func (g *Group) Release() {
	for _, sub := range g.subs {
		sub.Release()
	}
	g.subs = nil
}
