// Package editor implements the interactive polygon authoring state
// machine. A session is either Idle or Collecting; the fourth collected
// point commits a new parking space atomically with its persistence.
package editor

import (
	"sync"

	"github.com/lotvision/parking-monitor/internal/logger"
	"github.com/lotvision/parking-monitor/internal/space"
)

// Session is a read-only snapshot of the editor state, consumed by the
// renderer for visual feedback and by the status API.
type Session struct {
	Active  bool          `json:"active"`
	Pending []space.Point `json:"pending_points"`
}

// Editor accumulates clicked points into new parking spaces and commits
// them to the store. Click events arrive from HTTP handlers; the renderer
// reads snapshots from the pipeline goroutine, hence the mutex.
type Editor struct {
	mu      sync.Mutex
	store   *space.Store
	active  bool
	pending []space.Point
}

// New returns an idle editor bound to the given store.
func New(store *space.Store) *Editor {
	return &Editor{store: store}
}

// Begin enters the Collecting state, discarding any stale pending points.
func (e *Editor) Begin() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = true
	e.pending = e.pending[:0]
	logger.Info("Editor", "collecting points for a new space")
}

// Cancel leaves the Collecting state without committing anything.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.active {
		return
	}
	e.active = false
	e.pending = e.pending[:0]
	logger.Info("Editor", "space authoring cancelled")
}

// Click feeds one pointer event. While Idle it is a no-op. While
// Collecting the point is appended in click order; the fourth point builds
// the space (no winding or convexity check, the operator owns geometry
// quality), appends it to the store and resets the session. If persistence
// fails the fourth point is dropped and the session stays Collecting, so
// no half-committed space is ever observable.
func (e *Editor) Click(p space.Point) (committed bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return false, nil
	}

	e.pending = append(e.pending, p)
	logger.Debug("Editor", "point %d/%d at (%d,%d)", len(e.pending), space.VertexCount, p.X, p.Y)
	if len(e.pending) < space.VertexCount {
		return false, nil
	}

	sp, err := space.FromPoints(e.pending)
	if err != nil {
		// Unreachable given the length check, but never commit garbage.
		e.pending = e.pending[:len(e.pending)-1]
		return false, err
	}
	if err := e.store.Append(sp); err != nil {
		e.pending = e.pending[:len(e.pending)-1]
		return false, err
	}

	e.active = false
	e.pending = e.pending[:0]
	return true, nil
}

// Session returns a snapshot of the current state.
func (e *Editor) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	pending := make([]space.Point, len(e.pending))
	copy(pending, e.pending)
	return Session{Active: e.active, Pending: pending}
}
