// Package notify provides change-notification fan-out for session state.
//
// Each manager owns a Notifier and fires it once per completed mutation.
// The session composition root subscribes to every manager and re-emits on
// a single aggregated Notifier so a UI layer can subscribe once.
package notify

import "sync"

// Notifier fans a change signal out to registered listeners.
type Notifier struct {
	mu        sync.Mutex
	nextToken int
	listeners map[int]func()
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[int]func())}
}

// Subscribe registers a listener and returns its unsubscribe function.
// Unsubscribing more than once is harmless.
func (n *Notifier) Subscribe(listener func()) func() {
	if n == nil || listener == nil {
		return func() {}
	}

	n.mu.Lock()
	if n.listeners == nil {
		n.listeners = make(map[int]func())
	}
	token := n.nextToken
	n.nextToken++
	n.listeners[token] = listener
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.listeners, token)
		n.mu.Unlock()
	}
}

// Notify invokes every listener registered at the time of the call.
// Listeners are invoked outside the registry lock over a snapshot of the
// listener set, so a listener may subscribe or unsubscribe (itself or
// another) without corrupting the iteration.
func (n *Notifier) Notify() {
	if n == nil {
		return
	}

	n.mu.Lock()
	snapshot := make([]func(), 0, len(n.listeners))
	for _, listener := range n.listeners {
		snapshot = append(snapshot, listener)
	}
	n.mu.Unlock()

	for _, listener := range snapshot {
		listener()
	}
}

// Len reports the number of registered listeners.
func (n *Notifier) Len() int {
	if n == nil {
		return 0
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}
