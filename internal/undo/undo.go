// Package undo implements the single-slot, time-boxed undo window over
// cleaning mutations. Exactly one snapshot is recoverable at a time:
// arming a new window replaces and cancels the previous one, and an
// elapsed window discards its snapshot for good.
package undo

import (
	"sync"
	"time"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
)

// Snapshot is the full pre-mutation state restored by an undo: the data
// and the action log together, deep copies of both.
type Snapshot struct {
	Data    *dataset.Table
	Actions []dataset.CleaningAction
}

// Manager holds at most one pending snapshot behind a cancellable expiry
// timer. Expiry is keyed by a monotonic version counter so a timer armed
// for mutation N can never discard the snapshot of mutation N+1.
type Manager struct {
	mu      sync.Mutex
	window  time.Duration
	version uint64
	pending *Snapshot
	timer   *time.Timer
}

// NewManager creates a manager whose undo windows last the given duration.
func NewManager(window time.Duration) *Manager {
	return &Manager{window: window}
}

// Window returns the configured undo window.
func (m *Manager) Window() time.Duration {
	return m.window
}

// Arm records the pre-mutation snapshot and starts a fresh undo window.
// Any previously pending snapshot is discarded immediately.
func (m *Manager) Arm(data *dataset.Table, actions []dataset.CleaningAction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
	}
	m.version++
	m.pending = &Snapshot{
		Data:    data.Clone(),
		Actions: append([]dataset.CleaningAction(nil), actions...),
	}

	armed := m.version
	m.timer = time.AfterFunc(m.window, func() {
		m.expire(armed)
	})
}

// Undo hands back the pending snapshot and closes the window. Returns
// ErrNothingToUndo when no window is open.
func (m *Manager) Undo() (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil {
		return nil, core.ErrNothingToUndo
	}
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	snap := m.pending
	m.pending = nil
	return snap, nil
}

// Pending reports whether an undo window is currently open.
func (m *Manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending != nil
}

// Cancel discards any pending snapshot without restoring it.
func (m *Manager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.pending = nil
}

func (m *Manager) expire(version uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.version != version {
		return
	}
	m.pending = nil
	m.timer = nil
}
