package platform

import "fmt"

// Node is an opaque handle into the accessibility tree. Handles are
// comparable; two equal handles refer to the same node.
type Node uint64

// NoNode is the zero handle, used for "no parent" and similar absences.
const NoNode Node = 0

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	default:
		return fmt.Sprintf("MouseButton(%d)", int(b))
	}
}

// EventType identifies a low-level pointer event.
type EventType int

const (
	MouseMoved EventType = iota
	LeftMouseDown
	LeftMouseUp
	LeftMouseDragged
	RightMouseDown
	RightMouseUp
	RightMouseDragged
)

var eventTypeNames = map[EventType]string{
	MouseMoved:        "moved",
	LeftMouseDown:     "left-down",
	LeftMouseUp:       "left-up",
	LeftMouseDragged:  "left-dragged",
	RightMouseDown:    "right-down",
	RightMouseUp:      "right-up",
	RightMouseDragged: "right-dragged",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Button returns the button an event type belongs to. Plain moves report
// MouseLeft, matching what CoreGraphics expects for kCGEventMouseMoved.
func (t EventType) Button() MouseButton {
	switch t {
	case RightMouseDown, RightMouseUp, RightMouseDragged:
		return MouseRight
	default:
		return MouseLeft
	}
}

// MouseEvent is one pointer event to post.
type MouseEvent struct {
	Type       EventType
	X, Y       int
	Button     MouseButton
	ClickState int // 0 = platform default; 2 marks the second click of a double-click
}

// Point is an AXPosition value.
type Point struct {
	X, Y float64
}

// Size is an AXSize value.
type Size struct {
	Width, Height float64
}

// Bounds represents a screen rectangle.
type Bounds struct {
	X, Y, Width, Height int
}

// Center returns the integer midpoint of the rectangle.
func (b Bounds) Center() (x, y int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Array returns the bounds as [x, y, w, h].
func (b Bounds) Array() [4]int {
	return [4]int{b.X, b.Y, b.Width, b.Height}
}

// SetValueOptions identifies an attribute write.
type SetValueOptions struct {
	Node      Node   // Target element
	Process   string // Owning process name
	PID       int    // Owning process ID
	Attribute string // e.g. "AXValue", "AXFocused"
	Value     string // Textual value; "true"/"false" for booleans
	Wait      bool   // Block until the write is acknowledged and report failures
}

// TrueSentinel is the textual form the accessibility layer uses for "on".
const TrueSentinel = "true"

// IsTrue reports whether an attribute value represents the platform true
// sentinel: the boolean true, the string "true", or the number 1.
func IsTrue(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x == TrueSentinel
	case int:
		return x == 1
	case int64:
		return x == 1
	case float64:
		return x == 1
	default:
		return false
	}
}
