//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#include <stdlib.h>
#include <string.h>

enum {
    AXV_NONE,
    AXV_STRING,
    AXV_BOOL,
    AXV_INT,
    AXV_FLOAT,
    AXV_POINT,
    AXV_SIZE,
    AXV_RECT,
    AXV_ELEMENT,
    AXV_ELEMENTS,
    AXV_STRINGS,
    AXV_OTHER
};

// One converted attribute value. Element refs are retained and owned by the
// caller; the arrays themselves are freed by ax_free_value.
typedef struct {
    int kind;
    char *str;
    long long i;
    double f[4];
    AXUIElementRef *elems;
    char **strs;
    int count;
} ax_value;

static char *cf_to_cstring(CFStringRef s) {
    if (s == NULL) return NULL;
    CFIndex len = CFStringGetLength(s);
    CFIndex max = CFStringGetMaximumSizeForEncoding(len, kCFStringEncodingUTF8) + 1;
    char *buf = malloc(max);
    if (!CFStringGetCString(s, buf, max, kCFStringEncodingUTF8)) {
        free(buf);
        return NULL;
    }
    return buf;
}

static void ax_free_strings(char **list, int count) {
    if (list == NULL) return;
    for (int i = 0; i < count; i++) free(list[i]);
    free(list);
}

static int ax_attribute_names(AXUIElementRef el, char ***out, int *count) {
    CFArrayRef names = NULL;
    AXError err = AXUIElementCopyAttributeNames(el, &names);
    if (err != kAXErrorSuccess) return (int)err;
    CFIndex n = CFArrayGetCount(names);
    char **list = calloc(n > 0 ? n : 1, sizeof(char *));
    for (CFIndex i = 0; i < n; i++) {
        list[i] = cf_to_cstring(CFArrayGetValueAtIndex(names, i));
    }
    CFRelease(names);
    *out = list;
    *count = (int)n;
    return 0;
}

static void ax_convert(CFTypeRef v, ax_value *out) {
    memset(out, 0, sizeof(*out));
    if (v == NULL) return;
    CFTypeID t = CFGetTypeID(v);
    if (t == CFStringGetTypeID()) {
        out->kind = AXV_STRING;
        out->str = cf_to_cstring(v);
    } else if (t == CFBooleanGetTypeID()) {
        out->kind = AXV_BOOL;
        out->i = CFBooleanGetValue(v);
    } else if (t == CFNumberGetTypeID()) {
        if (CFNumberIsFloatType(v)) {
            out->kind = AXV_FLOAT;
            CFNumberGetValue(v, kCFNumberDoubleType, &out->f[0]);
        } else {
            out->kind = AXV_INT;
            CFNumberGetValue(v, kCFNumberLongLongType, &out->i);
        }
    } else if (t == AXValueGetTypeID()) {
        switch (AXValueGetType(v)) {
        case kAXValueCGPointType: {
            CGPoint p;
            AXValueGetValue(v, kAXValueCGPointType, &p);
            out->kind = AXV_POINT;
            out->f[0] = p.x;
            out->f[1] = p.y;
            break;
        }
        case kAXValueCGSizeType: {
            CGSize s;
            AXValueGetValue(v, kAXValueCGSizeType, &s);
            out->kind = AXV_SIZE;
            out->f[0] = s.width;
            out->f[1] = s.height;
            break;
        }
        case kAXValueCGRectType: {
            CGRect r;
            AXValueGetValue(v, kAXValueCGRectType, &r);
            out->kind = AXV_RECT;
            out->f[0] = r.origin.x;
            out->f[1] = r.origin.y;
            out->f[2] = r.size.width;
            out->f[3] = r.size.height;
            break;
        }
        default:
            out->kind = AXV_OTHER;
        }
    } else if (t == AXUIElementGetTypeID()) {
        out->kind = AXV_ELEMENT;
        out->elems = malloc(sizeof(AXUIElementRef));
        out->elems[0] = (AXUIElementRef)CFRetain(v);
        out->count = 1;
    } else if (t == CFArrayGetTypeID()) {
        CFIndex n = CFArrayGetCount(v);
        out->kind = AXV_ELEMENTS;
        if (n == 0) return;
        CFTypeRef first = CFArrayGetValueAtIndex(v, 0);
        if (CFGetTypeID(first) == AXUIElementGetTypeID()) {
            out->elems = calloc(n, sizeof(AXUIElementRef));
            for (CFIndex i = 0; i < n; i++) {
                CFTypeRef item = CFArrayGetValueAtIndex(v, i);
                if (CFGetTypeID(item) == AXUIElementGetTypeID()) {
                    out->elems[out->count++] = (AXUIElementRef)CFRetain(item);
                }
            }
        } else if (CFGetTypeID(first) == CFStringGetTypeID()) {
            out->kind = AXV_STRINGS;
            out->strs = calloc(n, sizeof(char *));
            for (CFIndex i = 0; i < n; i++) {
                CFTypeRef item = CFArrayGetValueAtIndex(v, i);
                if (CFGetTypeID(item) == CFStringGetTypeID()) {
                    out->strs[out->count++] = cf_to_cstring(item);
                }
            }
        } else {
            out->kind = AXV_OTHER;
        }
    } else {
        out->kind = AXV_OTHER;
    }
}

static int ax_copy_attribute(AXUIElementRef el, const char *name, ax_value *out) {
    CFStringRef attr = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    CFTypeRef v = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, attr, &v);
    CFRelease(attr);
    if (err != kAXErrorSuccess) return (int)err;
    ax_convert(v, out);
    if (v != NULL) CFRelease(v);
    return 0;
}

static void ax_free_value(ax_value *v) {
    free(v->str);
    free(v->elems);
    if (v->kind == AXV_STRINGS) ax_free_strings(v->strs, v->count);
}

static unsigned long long ax_hash(AXUIElementRef el) { return (unsigned long long)CFHash(el); }
static int ax_equal(AXUIElementRef a, AXUIElementRef b) { return CFEqual(a, b); }
static void ax_release(AXUIElementRef el) { CFRelease(el); }
static void ax_retain(AXUIElementRef el) { CFRetain(el); }

static int ax_pid(AXUIElementRef el) {
    pid_t pid = 0;
    if (AXUIElementGetPid(el, &pid) != kAXErrorSuccess) return 0;
    return (int)pid;
}

// Returns 1 when el's AXRole is AXApplication.
static int ax_is_application(AXUIElementRef el) {
    CFTypeRef role = NULL;
    if (AXUIElementCopyAttributeValue(el, kAXRoleAttribute, &role) != kAXErrorSuccess) return 0;
    int is = CFGetTypeID(role) == CFStringGetTypeID() &&
        CFStringCompare(role, kAXApplicationRole, 0) == kCFCompareEqualTo;
    CFRelease(role);
    return is;
}
*/
import "C"

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/mj1618/uisoup/internal/platform"
)

// handleTable maps node handles to retained AXUIElement refs. Refs that are
// CFEqual share one handle.
type handleTable struct {
	mu     sync.Mutex
	next   platform.Node
	refs   map[platform.Node]C.AXUIElementRef
	byHash map[uint64][]platform.Node
}

// intern takes ownership of ref and returns its handle.
func (t *handleTable) intern(ref C.AXUIElementRef) platform.Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	h := uint64(C.ax_hash(ref))
	for _, n := range t.byHash[h] {
		if C.ax_equal(t.refs[n], ref) != 0 {
			C.ax_release(ref)
			return n
		}
	}
	t.next++
	t.refs[t.next] = ref
	t.byHash[h] = append(t.byHash[h], t.next)
	return t.next
}

// ref returns a retained ref for n. Callers release it with ax_release.
func (t *handleTable) ref(n platform.Node) (C.AXUIElementRef, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ref, ok := t.refs[n]
	if !ok {
		return nil, fmt.Errorf("invalid node handle %d", n)
	}
	C.ax_retain(ref)
	return ref, nil
}

// forget drops n and releases its ref. Later lookups of n fail.
func (t *handleTable) forget(n platform.Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ref, ok := t.refs[n]
	if !ok {
		return
	}
	delete(t.refs, n)
	h := uint64(C.ax_hash(ref))
	kept := t.byHash[h][:0]
	for _, m := range t.byHash[h] {
		if m != n {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		delete(t.byHash, h)
	} else {
		t.byHash[h] = kept
	}
	C.ax_release(ref)
}

func (t *handleTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.refs)
}

// DarwinNodes implements the platform.NodeProvider interface for macOS.
type DarwinNodes struct {
	handles *handleTable
}

// NewNodes creates a new macOS node provider.
func NewNodes() *DarwinNodes {
	return &DarwinNodes{handles: &handleTable{
		refs:   make(map[platform.Node]C.AXUIElementRef),
		byHash: make(map[uint64][]platform.Node),
	}}
}

// errAX maps an AXError to a Go error.
func errAX(rc C.int, what string) error {
	switch rc {
	case C.int(C.kAXErrorAttributeUnsupported), C.int(C.kAXErrorNoValue):
		return platform.ErrUnsupportedAttribute
	case C.int(C.kAXErrorAPIDisabled):
		return errors.New("accessibility API is disabled; grant permission in System Settings > Privacy & Security > Accessibility")
	case C.int(C.kAXErrorInvalidUIElement):
		return fmt.Errorf("%s: element no longer exists", what)
	default:
		return fmt.Errorf("%s: AXError %d", what, int(rc))
	}
}

// fail maps rc to an error. Handles of destroyed elements are forgotten so
// long-running sessions do not retain them.
func (d *DarwinNodes) fail(n platform.Node, rc C.int, what string) error {
	if rc == C.int(C.kAXErrorInvalidUIElement) {
		d.handles.forget(n)
	}
	return errAX(rc, what)
}

// nodeForPID interns the application element of pid.
func (d *DarwinNodes) nodeForPID(pid int) platform.Node {
	return d.handles.intern(C.AXUIElementCreateApplication(C.pid_t(pid)))
}

// pidOf returns the owning process of n.
func (d *DarwinNodes) pidOf(n platform.Node) (int, error) {
	ref, err := d.handles.ref(n)
	if err != nil {
		return 0, err
	}
	defer C.ax_release(ref)
	return int(C.ax_pid(ref)), nil
}

func (d *DarwinNodes) AttributeNames(n platform.Node) ([]string, error) {
	ref, err := d.handles.ref(n)
	if err != nil {
		return nil, err
	}
	defer C.ax_release(ref)
	var list **C.char
	var count C.int
	if rc := C.ax_attribute_names(ref, &list, &count); rc != 0 {
		return nil, d.fail(n, rc, "failed to list attributes")
	}
	defer C.ax_free_strings(list, count)
	names := make([]string, 0, int(count))
	for _, s := range unsafe.Slice(list, int(count)) {
		if s != nil {
			names = append(names, C.GoString(s))
		}
	}
	return names, nil
}

func (d *DarwinNodes) Attribute(n platform.Node, name string) (any, error) {
	ref, err := d.handles.ref(n)
	if err != nil {
		return nil, err
	}
	defer C.ax_release(ref)
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var v C.ax_value
	if rc := C.ax_copy_attribute(ref, cName, &v); rc != 0 {
		return nil, d.fail(n, rc, "failed to read "+name)
	}
	defer C.ax_free_value(&v)

	if name == "AXParent" && v.kind == C.AXV_ELEMENT && C.ax_is_application(*v.elems) != 0 {
		// Windows are top-level: their application parent is not reported.
		C.ax_release(*v.elems)
		return nil, platform.ErrUnsupportedAttribute
	}
	return d.convert(&v), nil
}

func (d *DarwinNodes) convert(v *C.ax_value) any {
	switch v.kind {
	case C.AXV_STRING:
		if v.str == nil {
			return ""
		}
		return C.GoString(v.str)
	case C.AXV_BOOL:
		return v.i != 0
	case C.AXV_INT:
		return int64(v.i)
	case C.AXV_FLOAT:
		return float64(v.f[0])
	case C.AXV_POINT:
		return platform.Point{X: float64(v.f[0]), Y: float64(v.f[1])}
	case C.AXV_SIZE:
		return platform.Size{Width: float64(v.f[0]), Height: float64(v.f[1])}
	case C.AXV_RECT:
		return platform.Bounds{X: int(v.f[0]), Y: int(v.f[1]), Width: int(v.f[2]), Height: int(v.f[3])}
	case C.AXV_ELEMENT:
		return d.handles.intern(*v.elems)
	case C.AXV_ELEMENTS:
		nodes := make([]platform.Node, 0, int(v.count))
		if v.count > 0 {
			for _, ref := range unsafe.Slice(v.elems, int(v.count)) {
				nodes = append(nodes, d.handles.intern(ref))
			}
		}
		return nodes
	case C.AXV_STRINGS:
		strs := make([]string, 0, int(v.count))
		if v.count > 0 {
			for _, s := range unsafe.Slice(v.strs, int(v.count)) {
				if s != nil {
					strs = append(strs, C.GoString(s))
				}
			}
		}
		return strs
	default:
		return nil
	}
}

func (d *DarwinNodes) Children(n platform.Node) ([]platform.Node, error) {
	v, err := d.Attribute(n, "AXChildren")
	if errors.Is(err, platform.ErrUnsupportedAttribute) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	children, _ := v.([]platform.Node)
	return children, nil
}

func (d *DarwinNodes) Parent(n platform.Node) (platform.Node, error) {
	v, err := d.Attribute(n, "AXParent")
	if errors.Is(err, platform.ErrUnsupportedAttribute) {
		return platform.NoNode, nil
	}
	if err != nil {
		return platform.NoNode, err
	}
	parent, _ := v.(platform.Node)
	return parent, nil
}
