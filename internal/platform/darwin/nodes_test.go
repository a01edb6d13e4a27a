//go:build darwin && cgo

package darwin

import (
	"os"
	"testing"
)

func TestHandleTable_InternAndForget(t *testing.T) {
	d := NewNodes()
	n := d.nodeForPID(os.Getpid())
	if again := d.nodeForPID(os.Getpid()); again != n {
		t.Errorf("equal refs got handles %d and %d, want one handle", n, again)
	}
	if got := d.handles.len(); got != 1 {
		t.Fatalf("table holds %d refs, want 1", got)
	}

	d.handles.forget(n)
	if got := d.handles.len(); got != 0 {
		t.Errorf("table holds %d refs after forget, want 0", got)
	}
	if _, err := d.AttributeNames(n); err == nil {
		t.Error("a forgotten handle should not resolve")
	}
	d.handles.forget(n)

	if fresh := d.nodeForPID(os.Getpid()); fresh == n {
		t.Errorf("re-interning after forget reused handle %d", n)
	}
}

func TestPidOf(t *testing.T) {
	d := NewNodes()
	n := d.nodeForPID(os.Getpid())
	pid, err := d.pidOf(n)
	if err != nil {
		t.Fatal(err)
	}
	if pid != os.Getpid() {
		t.Errorf("pidOf = %d, want %d", pid, os.Getpid())
	}
}
