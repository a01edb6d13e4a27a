package fixture

import (
	"sync"

	"github.com/mj1618/uisoup/internal/platform"
)

// Recorder is a platform.EventPoster that records every posted event and
// tracks the cursor at the last posted coordinates.
type Recorder struct {
	mu     sync.Mutex
	x, y   int
	events []platform.MouseEvent

	// Err, when set, is returned by PostMouseEvent instead of recording.
	Err error
}

var _ platform.EventPoster = (*Recorder)(nil)

// NewRecorder returns a recorder with the cursor at (x, y).
func NewRecorder(x, y int) *Recorder {
	return &Recorder{x: x, y: y}
}

// PostMouseEvent records ev and moves the cursor to its coordinates.
func (r *Recorder) PostMouseEvent(ev platform.MouseEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, ev)
	r.x, r.y = ev.X, ev.Y
	return nil
}

// CursorPosition returns the last posted coordinates.
func (r *Recorder) CursorPosition() (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.x, r.y, nil
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []platform.MouseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]platform.MouseEvent(nil), r.events...)
}

// Reset drops recorded events, keeping the cursor where it is.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
