package element

import (
	"fmt"
	"time"

	"github.com/mj1618/uisoup/internal/platform"
)

// Offset is a point relative to an element's top-left corner. Each nil
// axis aims at the element's centre on that axis, and a nil *Offset means
// the centre.
type Offset struct {
	X, Y *int
}

// At returns an offset with both axes set.
func At(x, y int) *Offset {
	return &Offset{X: &x, Y: &y}
}

func (e *Element) point(off *Offset) (int, int, error) {
	b, err := e.Location()
	if err != nil {
		return 0, 0, err
	}
	x, y := b.Center()
	if off != nil && off.X != nil {
		x = b.X + *off.X
	}
	if off != nil && off.Y != nil {
		y = b.Y + *off.Y
	}
	return x, y, nil
}

// Click left-clicks the element and clears its snapshot.
func (e *Element) Click(off *Offset) error {
	return e.click(off, platform.MouseLeft)
}

// RightClick right-clicks the element and clears its snapshot.
func (e *Element) RightClick(off *Offset) error {
	return e.click(off, platform.MouseRight)
}

func (e *Element) click(off *Offset, b platform.MouseButton) error {
	x, y, err := e.point(off)
	if err != nil {
		return err
	}
	if err := e.b.Mouse.Click(x, y, b); err != nil {
		return err
	}
	e.snap.Clear()
	return nil
}

// DoubleClick left-double-clicks the element, waiting interval between the
// clicks, and clears its snapshot.
func (e *Element) DoubleClick(off *Offset, interval time.Duration) error {
	x, y, err := e.point(off)
	if err != nil {
		return err
	}
	if err := e.b.Mouse.DoubleClick(x, y, platform.MouseLeft, interval); err != nil {
		return err
	}
	e.snap.Clear()
	return nil
}

// DragTo drags from the element to the screen point (x, y) and clears the
// snapshot.
func (e *Element) DragTo(x, y int, off *Offset, smooth bool) error {
	fx, fy, err := e.point(off)
	if err != nil {
		return err
	}
	if err := e.b.Mouse.Drag(fx, fy, x, y, smooth); err != nil {
		return err
	}
	e.snap.Clear()
	return nil
}

// SetValue writes AXValue, waiting for the write, and clears the snapshot.
func (e *Element) SetValue(v string) error {
	err := e.b.Values.SetValue(platform.SetValueOptions{
		Node:      e.node,
		Process:   e.process,
		PID:       e.pid,
		Attribute: "AXValue",
		Value:     v,
		Wait:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	e.snap.Clear()
	return nil
}

// SetFocus sets AXFocused without waiting. The snapshot is kept.
func (e *Element) SetFocus() error {
	err := e.b.Values.SetValue(platform.SetValueOptions{
		Node:      e.node,
		Process:   e.process,
		PID:       e.pid,
		Attribute: "AXFocused",
		Value:     platform.TrueSentinel,
	})
	if err != nil {
		return fmt.Errorf("failed to set focus: %w", err)
	}
	return nil
}
