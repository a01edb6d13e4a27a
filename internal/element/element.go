// Package element presents accessibility nodes as searchable, clickable
// elements.
package element

import (
	"fmt"

	"github.com/mj1618/uisoup/internal/model"
	"github.com/mj1618/uisoup/internal/mouse"
	"github.com/mj1618/uisoup/internal/platform"
)

// Backend is the set of platform capabilities elements operate through.
type Backend struct {
	Nodes  platform.NodeProvider
	Apps   platform.ProcessDirectory
	Values platform.ValueSetter
	Mouse  *mouse.Mouse
}

// NewBackend wires a platform provider and a mouse into a Backend.
func NewBackend(p *platform.Provider, m *mouse.Mouse) *Backend {
	return &Backend{
		Nodes:  p.Nodes,
		Apps:   p.Apps,
		Values: p.ValueSetter,
		Mouse:  m,
	}
}

// Element wraps one accessibility node of one process.
type Element struct {
	b       *Backend
	node    platform.Node
	process string
	pid     int

	snap Snapshot

	// visited records every element met by traversals from this element,
	// in first-visit order.
	visited      map[platform.Node]*Element
	visitedOrder []platform.Node
}

// New wraps node n owned by process/pid.
func New(b *Backend, n platform.Node, process string, pid int) *Element {
	return &Element{b: b, node: n, process: process, pid: pid}
}

// ForApplication returns the application element of pid.
func ForApplication(b *Backend, pid int) (*Element, error) {
	apps, err := b.Apps.Applications()
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	name := ""
	for _, a := range apps {
		if a.PID == pid {
			name = a.Name
			break
		}
	}
	n, err := b.Apps.Application(pid)
	if err != nil {
		return nil, fmt.Errorf("failed to open application %d: %w", pid, err)
	}
	return New(b, n, name, pid), nil
}

// Windows returns the top-level windows of the element's process.
func (e *Element) Windows() ([]*Element, error) {
	nodes, err := e.b.Apps.Windows(e.pid)
	if err != nil {
		return nil, fmt.Errorf("failed to list windows of %d: %w", e.pid, err)
	}
	return e.wrap(nodes), nil
}

func (e *Element) wrap(nodes []platform.Node) []*Element {
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, New(e.b, n, e.process, e.pid))
	}
	return out
}

// Node returns the underlying handle.
func (e *Element) Node() platform.Node { return e.node }

// PID returns the owning process ID.
func (e *Element) PID() int { return e.pid }

// Process returns the owning process name.
func (e *Element) Process() string { return e.process }

// Equal reports whether both elements wrap the same node.
func (e *Element) Equal(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.node == other.node
}

// Snapshot exposes the element's attribute cache.
func (e *Element) Snapshot() *Snapshot { return &e.snap }

// Properties returns the cached attribute snapshot, fetching it first if
// needed. The returned map is a copy.
func (e *Element) Properties() (map[string]any, error) {
	if err := e.snap.load(e.b.Nodes, e.node); err != nil {
		return nil, err
	}
	return e.snap.copy(), nil
}

// get reads one attribute from the snapshot. Fetch failures read as absent.
func (e *Element) get(name string) (any, bool) {
	if err := e.snap.load(e.b.Nodes, e.node); err != nil {
		return nil, false
	}
	return e.snap.Get(name)
}

// Role returns the raw platform role, "" when absent.
func (e *Element) Role() string {
	v, _ := e.get("AXRole")
	s, _ := v.(string)
	return s
}

// RoleName returns the short role tag, model.UnknownRole for unmapped roles.
func (e *Element) RoleName() string {
	return model.MapRole(e.Role())
}

// Name returns the first non-empty of AXDescription, AXTitle and AXValue,
// sanitized.
func (e *Element) Name() string {
	for _, attr := range []string{"AXDescription", "AXTitle", "AXValue"} {
		v, ok := e.get(attr)
		if !ok || v == nil {
			continue
		}
		s, isString := v.(string)
		if !isString {
			s = fmt.Sprint(v)
		}
		if s != "" {
			return model.SanitizeName(s)
		}
	}
	return ""
}

// CombinedName returns RoleName()+Name(), or "" when the element has no name.
func (e *Element) CombinedName() string {
	name := e.Name()
	if name == "" {
		return ""
	}
	return e.RoleName() + name
}

// IsTopLevelWindow reports whether the node has no parent. A node whose
// attributes cannot be read is not top-level.
func (e *Element) IsTopLevelWindow() bool {
	if err := e.snap.load(e.b.Nodes, e.node); err != nil {
		return false
	}
	v, ok := e.snap.Get("AXParent")
	if !ok {
		return true
	}
	n, isNode := v.(platform.Node)
	return isNode && n == platform.NoNode
}

// IsSelected reports whether the element is a radio button that is on.
func (e *Element) IsSelected() bool {
	return e.isOn(model.RoleRadioButton)
}

// IsChecked reports whether the element is a check box that is on.
func (e *Element) IsChecked() bool {
	return e.isOn(model.RoleCheckBox)
}

func (e *Element) isOn(tag string) bool {
	if e.RoleName() != tag {
		return false
	}
	v, _ := e.get("AXValue")
	return platform.IsTrue(v)
}

// IsEnabled reads AXEnabled, false when absent.
func (e *Element) IsEnabled() bool {
	v, _ := e.get("AXEnabled")
	return platform.IsTrue(v)
}

// IsVisible is always true: the macOS accessibility tree only exposes
// on-screen elements.
func (e *Element) IsVisible() bool { return true }

// Value returns AXValue, nil when absent.
func (e *Element) Value() any {
	v, _ := e.get("AXValue")
	return v
}

// Description returns AXDescription, nil when absent.
func (e *Element) Description() any {
	v, _ := e.get("AXDescription")
	return v
}

// Selection returns AXSelectedText, nil when absent.
func (e *Element) Selection() any {
	v, _ := e.get("AXSelectedText")
	return v
}

// FocusedElement returns the first descendant, in traversal order, whose
// AXFocused is true.
func (e *Element) FocusedElement() *Element {
	for el := range e.Matches(nil, true) {
		if v, _ := el.get("AXFocused"); platform.IsTrue(v) {
			return el
		}
	}
	return nil
}

// Location reads the on-screen rectangle live from the node.
func (e *Element) Location() (platform.Bounds, error) {
	pos, err := e.b.Nodes.Attribute(e.node, "AXPosition")
	if err != nil {
		return platform.Bounds{}, fmt.Errorf("failed to read position: %w", err)
	}
	size, err := e.b.Nodes.Attribute(e.node, "AXSize")
	if err != nil {
		return platform.Bounds{}, fmt.Errorf("failed to read size: %w", err)
	}
	p, ok := pos.(platform.Point)
	if !ok {
		return platform.Bounds{}, fmt.Errorf("unexpected AXPosition value %T", pos)
	}
	s, ok := size.(platform.Size)
	if !ok {
		return platform.Bounds{}, fmt.Errorf("unexpected AXSize value %T", size)
	}
	return platform.Bounds{X: int(p.X), Y: int(p.Y), Width: int(s.Width), Height: int(s.Height)}, nil
}

// Children wraps the node's immediate children. Enumeration failures read
// as no children.
func (e *Element) Children() []*Element {
	nodes, err := e.b.Nodes.Children(e.node)
	if err != nil {
		return nil
	}
	return e.wrap(nodes)
}

// ChildCount is the live number of immediate children.
func (e *Element) ChildCount() int {
	nodes, err := e.b.Nodes.Children(e.node)
	if err != nil {
		return 0
	}
	return len(nodes)
}

// ParentCount counts ancestor hops until a root or an unsupported link.
func (e *Element) ParentCount() int {
	count := 0
	n := e.node
	for {
		parent, err := e.b.Nodes.Parent(n)
		if err != nil || parent == platform.NoNode {
			return count
		}
		count++
		n = parent
	}
}

// Parent wraps the immediate parent, nil for roots.
func (e *Element) Parent() *Element {
	if e.ParentCount() == 0 {
		return nil
	}
	n, err := e.b.Nodes.Parent(e.node)
	if err != nil {
		return nil
	}
	return New(e.b, n, e.process, e.pid)
}
