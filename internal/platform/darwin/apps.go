//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework ApplicationServices -framework Foundation
#import <AppKit/AppKit.h>
#include <ApplicationServices/ApplicationServices.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    char *name;
    int pid;
    int active;
} app_info;

// Lists regular (Dock) applications.
static int ns_list_apps(app_info **out, int *count) {
    @autoreleasepool {
        NSArray<NSRunningApplication *> *apps = [[NSWorkspace sharedWorkspace] runningApplications];
        app_info *list = calloc(apps.count > 0 ? apps.count : 1, sizeof(app_info));
        int n = 0;
        for (NSRunningApplication *a in apps) {
            if (a.activationPolicy != NSApplicationActivationPolicyRegular) continue;
            const char *name = a.localizedName ? a.localizedName.UTF8String : "";
            list[n].name = strdup(name);
            list[n].pid = a.processIdentifier;
            list[n].active = a.isActive ? 1 : 0;
            n++;
        }
        *out = list;
        *count = n;
    }
    return 0;
}

static void ns_free_apps(app_info *list, int count) {
    for (int i = 0; i < count; i++) free(list[i].name);
    free(list);
}

static int ns_activate(int pid) {
    @autoreleasepool {
        NSRunningApplication *a = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
        if (a == nil) return -1;
        return [a activateWithOptions:NSApplicationActivateIgnoringOtherApps] ? 0 : -2;
    }
}

static int ax_window_count(int pid) {
    AXUIElementRef app = AXUIElementCreateApplication((pid_t)pid);
    CFTypeRef windows = NULL;
    int n = 0;
    if (AXUIElementCopyAttributeValue(app, kAXWindowsAttribute, &windows) == kAXErrorSuccess) {
        if (CFGetTypeID(windows) == CFArrayGetTypeID()) n = (int)CFArrayGetCount(windows);
        CFRelease(windows);
    }
    CFRelease(app);
    return n;
}
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/mj1618/uisoup/internal/model"
	"github.com/mj1618/uisoup/internal/platform"
	"golang.org/x/sync/errgroup"
)

const windowCountWorkers = 8

// DarwinApps implements the platform.ProcessDirectory interface for macOS.
type DarwinApps struct {
	nodes *DarwinNodes
}

// NewApps creates a process directory that issues handles from nodes.
func NewApps(nodes *DarwinNodes) *DarwinApps {
	return &DarwinApps{nodes: nodes}
}

func (a *DarwinApps) Applications() ([]model.Application, error) {
	var list *C.app_info
	var count C.int
	if C.ns_list_apps(&list, &count) != 0 {
		return nil, fmt.Errorf("failed to list running applications")
	}
	defer C.ns_free_apps(list, count)

	apps := make([]model.Application, int(count))
	if count == 0 {
		return apps, nil
	}
	// Window counts cost one accessibility round trip per application.
	var g errgroup.Group
	g.SetLimit(windowCountWorkers)
	for i, info := range unsafe.Slice(list, int(count)) {
		apps[i] = model.Application{
			Name:   C.GoString(info.name),
			PID:    int(info.pid),
			Active: info.active != 0,
		}
		g.Go(func() error {
			apps[i].Windows = int(C.ax_window_count(C.int(apps[i].PID)))
			return nil
		})
	}
	_ = g.Wait()
	return apps, nil
}

func (a *DarwinApps) Application(pid int) (platform.Node, error) {
	if pid <= 0 {
		return platform.NoNode, fmt.Errorf("invalid pid %d", pid)
	}
	return a.nodes.nodeForPID(pid), nil
}

func (a *DarwinApps) Activate(pid int) error {
	switch C.ns_activate(C.int(pid)) {
	case 0:
		return nil
	case -1:
		return fmt.Errorf("no running application with pid %d", pid)
	default:
		return fmt.Errorf("failed to activate pid %d", pid)
	}
}

func (a *DarwinApps) Windows(pid int) ([]platform.Node, error) {
	app, err := a.Application(pid)
	if err != nil {
		return nil, err
	}
	v, err := a.nodes.Attribute(app, "AXWindows")
	if errors.Is(err, platform.ErrUnsupportedAttribute) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list windows of pid %d: %w", pid, err)
	}
	windows, _ := v.([]platform.Node)
	return windows, nil
}
