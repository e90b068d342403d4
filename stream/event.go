package stream

import (
	"sort"
	"sync"
)

// Listener receives occurrences of a named event.
type Listener[T any] func(T)

// EventTarget is the contract FromEvent bridges from: anything that can
// register a named-event listener and hand back its removal.
type EventTarget[T any] interface {
	// AddEventListener registers l for the named event and returns a
	// function that removes exactly that registration.
	AddEventListener(name string, l Listener[T]) (remove func())
}

// Hub is an in-process EventTarget: a minimal dispatcher that fans each
// dispatched event out to the listeners registered for its name, in
// registration order, synchronously on the dispatching goroutine.
type Hub[T any] struct {
	mu        sync.Mutex
	nextID    int
	listeners map[string]map[int]Listener[T]
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		listeners: make(map[string]map[int]Listener[T]),
	}
}

func (h *Hub[T]) AddEventListener(name string, l Listener[T]) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	if h.listeners[name] == nil {
		h.listeners[name] = make(map[int]Listener[T])
	}
	h.listeners[name][id] = l
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.listeners[name], id)
		h.mu.Unlock()
	}
}

// Dispatch delivers v to every listener currently registered for name.
// Listeners run outside the hub lock, so a listener may add or remove
// registrations (including its own).
func (h *Hub[T]) Dispatch(name string, v T) {
	h.mu.Lock()
	registered := h.listeners[name]
	ids := make([]int, 0, len(registered))
	for id := range registered {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	snapshot := make([]Listener[T], len(ids))
	for i, id := range ids {
		snapshot[i] = registered[id]
	}
	h.mu.Unlock()

	for _, l := range snapshot {
		l(v)
	}
}

// ListenerCount reports how many listeners are registered for name.
func (h *Hub[T]) ListenerCount(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners[name])
}
