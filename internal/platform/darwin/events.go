//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Foundation
#include <CoreGraphics/CoreGraphics.h>

static int cg_post_mouse(int type, double x, double y, int button, int clickState) {
    CGEventRef ev = CGEventCreateMouseEvent(NULL, (CGEventType)type, CGPointMake(x, y), (CGMouseButton)button);
    if (!ev) return -1;
    if (clickState > 0) {
        CGEventSetIntegerValueField(ev, kCGMouseEventClickState, clickState);
    }
    CGEventPost(kCGSessionEventTap, ev);
    CFRelease(ev);
    return 0;
}

static int cg_cursor_position(double *x, double *y) {
    CGEventRef ev = CGEventCreate(NULL);
    if (!ev) return -1;
    CGPoint p = CGEventGetLocation(ev);
    CFRelease(ev);
    *x = p.x;
    *y = p.y;
    return 0;
}
*/
import "C"

import (
	"fmt"

	"github.com/mj1618/uisoup/internal/platform"
)

var cgEventTypes = map[platform.EventType]C.int{
	platform.MouseMoved:        C.kCGEventMouseMoved,
	platform.LeftMouseDown:     C.kCGEventLeftMouseDown,
	platform.LeftMouseUp:       C.kCGEventLeftMouseUp,
	platform.LeftMouseDragged:  C.kCGEventLeftMouseDragged,
	platform.RightMouseDown:    C.kCGEventRightMouseDown,
	platform.RightMouseUp:      C.kCGEventRightMouseUp,
	platform.RightMouseDragged: C.kCGEventRightMouseDragged,
}

// DarwinEvents implements the platform.EventPoster interface for macOS.
type DarwinEvents struct{}

// NewEvents creates a new macOS event poster.
func NewEvents() *DarwinEvents {
	return &DarwinEvents{}
}

func (e *DarwinEvents) PostMouseEvent(ev platform.MouseEvent) error {
	t, ok := cgEventTypes[ev.Type]
	if !ok {
		return fmt.Errorf("unsupported event type %s", ev.Type)
	}
	button := C.int(C.kCGMouseButtonLeft)
	if ev.Button == platform.MouseRight {
		button = C.kCGMouseButtonRight
	}
	if C.cg_post_mouse(t, C.double(ev.X), C.double(ev.Y), button, C.int(ev.ClickState)) != 0 {
		return fmt.Errorf("failed to create %s event", ev.Type)
	}
	return nil
}

func (e *DarwinEvents) CursorPosition() (int, int, error) {
	var x, y C.double
	if C.cg_cursor_position(&x, &y) != 0 {
		return 0, 0, fmt.Errorf("failed to read cursor location")
	}
	return int(x), int(y), nil
}
