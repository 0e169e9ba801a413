// Package selection tracks which timeline elements are currently
// selected in the session.
package selection

import (
	"sync"

	"github.com/louisbranch/clipdeck/internal/notify"
	"github.com/louisbranch/clipdeck/internal/timeline/domain"
)

// Manager holds the current element selection. The selection is an
// ordered list of element references; it does not validate that the
// referenced elements still exist.
type Manager struct {
	mu       sync.Mutex
	selected []domain.ElementRef

	notifier *notify.Notifier
}

// NewManager creates an empty selection.
func NewManager() *Manager {
	return &Manager{notifier: notify.NewNotifier()}
}

// Changes exposes the selection's change notifier.
func (m *Manager) Changes() *notify.Notifier {
	return m.notifier
}

// Set replaces the selection with the given references.
func (m *Manager) Set(refs []domain.ElementRef) {
	if m == nil {
		return
	}

	next := make([]domain.ElementRef, len(refs))
	copy(next, refs)

	m.mu.Lock()
	m.selected = next
	m.mu.Unlock()

	m.notifier.Notify()
}

// Clear empties the selection. Clearing an empty selection stays
// silent.
func (m *Manager) Clear() {
	if m == nil {
		return
	}

	m.mu.Lock()
	empty := len(m.selected) == 0
	m.selected = nil
	m.mu.Unlock()

	if !empty {
		m.notifier.Notify()
	}
}

// Selected returns the current selection in order.
func (m *Manager) Selected() []domain.ElementRef {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ElementRef, len(m.selected))
	copy(out, m.selected)
	return out
}
