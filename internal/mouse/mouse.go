// Package mouse synthesizes pointer input on top of a platform.EventPoster.
package mouse

import (
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/uisoup/internal/platform"
)

// Defaults for smooth motion and double-click timing.
const (
	DefaultSteps               = 100
	DefaultStepDelay           = 10 * time.Millisecond
	DefaultDoubleClickInterval = 500 * time.Millisecond
)

// Mouse posts move, click and drag sequences.
type Mouse struct {
	poster    platform.EventPoster
	steps     int
	stepDelay time.Duration
	sleep     func(time.Duration)
}

// Option configures a Mouse.
type Option func(*Mouse)

// WithSteps sets the number of interpolated points in a smooth motion.
func WithSteps(n int) Option {
	return func(m *Mouse) {
		if n > 0 {
			m.steps = n
		}
	}
}

// WithStepDelay sets the pause before each interpolated point.
func WithStepDelay(d time.Duration) Option {
	return func(m *Mouse) {
		if d >= 0 {
			m.stepDelay = d
		}
	}
}

// WithSleep replaces time.Sleep, mainly for tests.
func WithSleep(fn func(time.Duration)) Option {
	return func(m *Mouse) {
		if fn != nil {
			m.sleep = fn
		}
	}
}

// New returns a Mouse posting through p.
func New(p platform.EventPoster, opts ...Option) *Mouse {
	m := &Mouse{
		poster:    p,
		steps:     DefaultSteps,
		stepDelay: DefaultStepDelay,
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ParseButton converts a textual button name. Accepted: left, b1c, right, b3c.
func ParseButton(s string) (platform.MouseButton, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "b1c", "":
		return platform.MouseLeft, nil
	case "right", "b3c":
		return platform.MouseRight, nil
	default:
		return 0, invalid("button", "unsupported mouse button %q (use left or right)", s)
	}
}

func validatePoint(x, y int) error {
	if x < 0 {
		return invalid("x", "coordinate must be non-negative, got %d", x)
	}
	if y < 0 {
		return invalid("y", "coordinate must be non-negative, got %d", y)
	}
	return nil
}

func validateButton(b platform.MouseButton) error {
	if b != platform.MouseLeft && b != platform.MouseRight {
		return invalid("button", "unsupported mouse button %v", b)
	}
	return nil
}

func downUp(b platform.MouseButton) (down, up platform.EventType) {
	if b == platform.MouseRight {
		return platform.RightMouseDown, platform.RightMouseUp
	}
	return platform.LeftMouseDown, platform.LeftMouseUp
}

func (m *Mouse) post(t platform.EventType, x, y int, clickState int) error {
	ev := platform.MouseEvent{Type: t, X: x, Y: y, Button: t.Button(), ClickState: clickState}
	if err := m.poster.PostMouseEvent(ev); err != nil {
		return fmt.Errorf("failed to post %s at (%d, %d): %w", t, x, y, err)
	}
	return nil
}

// glide posts steps interpolated events of type t from (x1, y1) to (x2, y2),
// sleeping before each one.
func (m *Mouse) glide(t platform.EventType, x1, y1, x2, y2 int) error {
	for i := 1; i <= m.steps; i++ {
		m.sleep(m.stepDelay)
		x := x1 + (x2-x1)*i/m.steps
		y := y1 + (y2-y1)*i/m.steps
		if err := m.post(t, x, y, 0); err != nil {
			return err
		}
	}
	return nil
}

// Position returns the live cursor position.
func (m *Mouse) Position() (int, int, error) {
	x, y, err := m.poster.CursorPosition()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read cursor position: %w", err)
	}
	return x, y, nil
}

// Move moves the cursor to (x, y). A smooth move glides from the live
// position.
func (m *Mouse) Move(x, y int, smooth bool) error {
	if err := validatePoint(x, y); err != nil {
		return err
	}
	if !smooth {
		return m.post(platform.MouseMoved, x, y, 0)
	}
	sx, sy, err := m.Position()
	if err != nil {
		return err
	}
	return m.glide(platform.MouseMoved, sx, sy, x, y)
}

// Drag presses the left button at (x1, y1), drags to (x2, y2) and releases
// at the live cursor position.
func (m *Mouse) Drag(x1, y1, x2, y2 int, smooth bool) error {
	if err := validatePoint(x1, y1); err != nil {
		return err
	}
	if err := validatePoint(x2, y2); err != nil {
		return err
	}
	if err := m.post(platform.LeftMouseDown, x1, y1, 0); err != nil {
		return err
	}
	if smooth {
		if err := m.glide(platform.LeftMouseDragged, x1, y1, x2, y2); err != nil {
			return err
		}
	} else if err := m.post(platform.LeftMouseDragged, x2, y2, 0); err != nil {
		return err
	}
	return m.ReleaseButton(platform.MouseLeft)
}

// PressButton presses b at (x, y) without releasing it.
func (m *Mouse) PressButton(x, y int, b platform.MouseButton) error {
	if err := validatePoint(x, y); err != nil {
		return err
	}
	if err := validateButton(b); err != nil {
		return err
	}
	down, _ := downUp(b)
	return m.post(down, x, y, 0)
}

// ReleaseButton releases b at the live cursor position.
func (m *Mouse) ReleaseButton(b platform.MouseButton) error {
	if err := validateButton(b); err != nil {
		return err
	}
	x, y, err := m.Position()
	if err != nil {
		return err
	}
	_, up := downUp(b)
	return m.post(up, x, y, 0)
}

// Click presses and releases b at (x, y).
func (m *Mouse) Click(x, y int, b platform.MouseButton) error {
	if err := validatePoint(x, y); err != nil {
		return err
	}
	if err := validateButton(b); err != nil {
		return err
	}
	down, up := downUp(b)
	if err := m.post(down, x, y, 0); err != nil {
		return err
	}
	return m.post(up, x, y, 0)
}

// DoubleClick clicks twice at (x, y). The second pair carries click state 2
// and follows after interval.
func (m *Mouse) DoubleClick(x, y int, b platform.MouseButton, interval time.Duration) error {
	if err := validatePoint(x, y); err != nil {
		return err
	}
	if err := validateButton(b); err != nil {
		return err
	}
	if err := m.Click(x, y, b); err != nil {
		return err
	}
	m.sleep(interval)
	down, up := downUp(b)
	if err := m.post(down, x, y, 2); err != nil {
		return err
	}
	return m.post(up, x, y, 2)
}
