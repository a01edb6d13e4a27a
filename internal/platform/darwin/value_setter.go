//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#include <stdlib.h>
#include <string.h>

// Writes value to attr, converting it to the type of the current value:
// booleans for CFBoolean attributes (and AXFocused), numbers for CFNumber
// attributes, strings otherwise.
static int ax_set_value(AXUIElementRef el, const char *attr, const char *value) {
    CFStringRef name = CFStringCreateWithCString(NULL, attr, kCFStringEncodingUTF8);
    CFTypeRef current = NULL;
    AXUIElementCopyAttributeValue(el, name, &current);

    CFTypeRef v = NULL;
    int isBool = strcmp(attr, "AXFocused") == 0 ||
        (current != NULL && CFGetTypeID(current) == CFBooleanGetTypeID());
    if (isBool) {
        v = CFRetain(strcmp(value, "true") == 0 ? kCFBooleanTrue : kCFBooleanFalse);
    } else if (current != NULL && CFGetTypeID(current) == CFNumberGetTypeID()) {
        double d = strtod(value, NULL);
        v = CFNumberCreate(NULL, kCFNumberDoubleType, &d);
    } else {
        v = CFStringCreateWithCString(NULL, value, kCFStringEncodingUTF8);
    }
    if (current != NULL) CFRelease(current);

    AXError err = AXUIElementSetAttributeValue(el, name, v);
    CFRelease(v);
    CFRelease(name);
    return (int)err;
}

static void ax_setter_release(AXUIElementRef el) { CFRelease(el); }
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/mj1618/uisoup/internal/platform"
)

// DarwinValueSetter implements the platform.ValueSetter interface for macOS.
type DarwinValueSetter struct {
	nodes *DarwinNodes
}

// NewValueSetter creates a new macOS value setter.
func NewValueSetter(nodes *DarwinNodes) *DarwinValueSetter {
	return &DarwinValueSetter{nodes: nodes}
}

// SetValue writes opts.Attribute. Without opts.Wait failures are not
// reported: the request is fire-and-forget.
func (s *DarwinValueSetter) SetValue(opts platform.SetValueOptions) error {
	ref, err := s.nodes.handles.ref(opts.Node)
	if err != nil {
		return err
	}
	defer C.ax_setter_release(ref)
	if opts.PID != 0 {
		if pid, _ := s.nodes.pidOf(opts.Node); pid != 0 && pid != opts.PID {
			return fmt.Errorf("node %d belongs to pid %d, not %d", opts.Node, pid, opts.PID)
		}
	}

	cAttribute := C.CString(opts.Attribute)
	defer C.free(unsafe.Pointer(cAttribute))
	cValue := C.CString(opts.Value)
	defer C.free(unsafe.Pointer(cValue))

	rc := C.ax_set_value(ref, cAttribute, cValue)
	if rc != 0 && opts.Wait {
		return fmt.Errorf("failed to set %s=%q on %s: %w", opts.Attribute, opts.Value, opts.Process,
			s.nodes.fail(opts.Node, rc, "AXUIElementSetAttributeValue"))
	}
	return nil
}
