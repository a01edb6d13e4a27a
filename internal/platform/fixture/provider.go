package fixture

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/mj1618/uisoup/internal/model"
	"github.com/mj1618/uisoup/internal/platform"
)

type node struct {
	attrs       map[string]any
	unsupported map[string]bool
	children    []platform.Node
	parent      platform.Node
	pid         int
}

type app struct {
	spec    AppSpec
	root    platform.Node
	windows []platform.Node
}

// Provider is an in-memory accessibility tree. It implements
// platform.NodeProvider, platform.ProcessDirectory and platform.ValueSetter.
type Provider struct {
	mu          sync.Mutex
	nodes       map[platform.Node]*node
	apps        []*app
	next        platform.Node
	fetches     map[platform.Node]int
	activations map[int]int
	writes      []platform.SetValueOptions
}

var (
	_ platform.NodeProvider     = (*Provider)(nil)
	_ platform.ProcessDirectory = (*Provider)(nil)
	_ platform.ValueSetter      = (*Provider)(nil)
)

// New builds a provider from a parsed tree. Handles are assigned depth-first
// starting at 1, application nodes first.
func New(t Tree) *Provider {
	p := &Provider{
		nodes:       make(map[platform.Node]*node),
		fetches:     make(map[platform.Node]int),
		activations: make(map[int]int),
	}
	for _, spec := range t.Applications {
		a := &app{spec: spec}
		a.root = p.add(NodeSpec{Role: "AXApplication", Title: spec.Name}, platform.NoNode, spec.PID)
		for _, w := range spec.Windows {
			// Windows are top-level: the application lists them as children
			// but they report no parent.
			h := p.build(w, platform.NoNode, spec.PID)
			a.windows = append(a.windows, h)
			p.nodes[a.root].children = append(p.nodes[a.root].children, h)
		}
		p.nodes[a.root].attrs["AXChildren"] = a.windows
		p.apps = append(p.apps, a)
	}
	return p
}

// NewPlatform builds a provider and a recorder from a tree and bundles them
// as a platform.Provider.
func NewPlatform(t Tree) (*platform.Provider, *Provider, *Recorder) {
	p := New(t)
	x, y := 0, 0
	if len(t.Cursor) == 2 {
		x, y = t.Cursor[0], t.Cursor[1]
	}
	rec := NewRecorder(x, y)
	return &platform.Provider{
		Nodes:       p,
		Apps:        p,
		Events:      rec,
		ValueSetter: p,
	}, p, rec
}

func (p *Provider) add(spec NodeSpec, parent platform.Node, pid int) platform.Node {
	p.next++
	h := p.next
	n := &node{
		attrs:       make(map[string]any),
		unsupported: make(map[string]bool),
		parent:      parent,
		pid:         pid,
	}
	n.attrs["AXRole"] = spec.Role
	if spec.Title != "" {
		n.attrs["AXTitle"] = spec.Title
	}
	if spec.Value != nil {
		n.attrs["AXValue"] = spec.Value
	}
	if spec.Description != "" {
		n.attrs["AXDescription"] = spec.Description
	}
	if spec.Enabled != nil {
		n.attrs["AXEnabled"] = *spec.Enabled
	}
	if spec.Focused {
		n.attrs["AXFocused"] = true
	}
	if len(spec.Position) == 2 {
		n.attrs["AXPosition"] = platform.Point{X: float64(spec.Position[0]), Y: float64(spec.Position[1])}
	}
	if len(spec.Size) == 2 {
		n.attrs["AXSize"] = platform.Size{Width: float64(spec.Size[0]), Height: float64(spec.Size[1])}
	}
	if parent != platform.NoNode {
		n.attrs["AXParent"] = parent
	}
	for k, v := range spec.Attributes {
		n.attrs[k] = v
	}
	for _, name := range spec.Unsupported {
		n.unsupported[name] = true
	}
	p.nodes[h] = n
	return h
}

func (p *Provider) build(spec NodeSpec, parent platform.Node, pid int) platform.Node {
	h := p.add(spec, parent, pid)
	var children []platform.Node
	for _, c := range spec.Children {
		children = append(children, p.build(c, h, pid))
	}
	p.nodes[h].children = children
	p.nodes[h].attrs["AXChildren"] = children
	return h
}

func (p *Provider) lookup(n platform.Node) (*node, error) {
	nd, ok := p.nodes[n]
	if !ok {
		return nil, fmt.Errorf("invalid node handle %d", n)
	}
	return nd, nil
}

// AttributeNames lists the node's attributes, sorted.
func (p *Provider) AttributeNames(n platform.Node) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	nd, err := p.lookup(n)
	if err != nil {
		return nil, err
	}
	p.fetches[n]++
	names := make([]string, 0, len(nd.attrs)+len(nd.unsupported))
	for k := range nd.attrs {
		if !nd.unsupported[k] {
			names = append(names, k)
		}
	}
	for k := range nd.unsupported {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}

// Attribute returns one attribute value.
func (p *Provider) Attribute(n platform.Node, name string) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	nd, err := p.lookup(n)
	if err != nil {
		return nil, err
	}
	if nd.unsupported[name] {
		return nil, platform.ErrUnsupportedAttribute
	}
	v, ok := nd.attrs[name]
	if !ok {
		return nil, platform.ErrUnsupportedAttribute
	}
	if children, ok := v.([]platform.Node); ok {
		return append([]platform.Node(nil), children...), nil
	}
	return v, nil
}

// Children returns the node's children.
func (p *Provider) Children(n platform.Node) ([]platform.Node, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	nd, err := p.lookup(n)
	if err != nil {
		return nil, err
	}
	return append([]platform.Node(nil), nd.children...), nil
}

// Parent returns the node's parent, NoNode for roots.
func (p *Provider) Parent(n platform.Node) (platform.Node, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	nd, err := p.lookup(n)
	if err != nil {
		return platform.NoNode, err
	}
	if nd.unsupported["AXParent"] {
		return platform.NoNode, platform.ErrUnsupportedAttribute
	}
	return nd.parent, nil
}

// Applications lists the fixture's applications in declaration order.
func (p *Provider) Applications() ([]model.Application, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	apps := make([]model.Application, 0, len(p.apps))
	for _, a := range p.apps {
		apps = append(apps, model.Application{
			Name:    a.spec.Name,
			PID:     a.spec.PID,
			Windows: len(a.windows),
			Active:  a.spec.Active,
		})
	}
	return apps, nil
}

func (p *Provider) findApp(pid int) (*app, error) {
	for _, a := range p.apps {
		if a.spec.PID == pid {
			return a, nil
		}
	}
	return nil, fmt.Errorf("no application with pid %d", pid)
}

// Application returns the application node for pid.
func (p *Provider) Application(pid int) (platform.Node, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, err := p.findApp(pid)
	if err != nil {
		return platform.NoNode, err
	}
	return a.root, nil
}

// Activate records an activation of pid.
func (p *Provider) Activate(pid int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.findApp(pid); err != nil {
		return err
	}
	p.activations[pid]++
	return nil
}

// Windows returns the top-level windows of pid.
func (p *Provider) Windows(pid int) ([]platform.Node, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, err := p.findApp(pid)
	if err != nil {
		return nil, err
	}
	return append([]platform.Node(nil), a.windows...), nil
}

// SetValue writes an attribute in memory. Values written over an existing
// boolean attribute are parsed as booleans.
func (p *Provider) SetValue(opts platform.SetValueOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	nd, err := p.lookup(opts.Node)
	if err != nil {
		return err
	}
	if opts.PID != 0 && nd.pid != opts.PID {
		return fmt.Errorf("node %d does not belong to pid %d", opts.Node, opts.PID)
	}
	if nd.unsupported[opts.Attribute] {
		if opts.Wait {
			return fmt.Errorf("failed to set %s=%q: %w", opts.Attribute, opts.Value, platform.ErrUnsupportedAttribute)
		}
		return nil
	}
	var v any = opts.Value
	if _, isBool := nd.attrs[opts.Attribute].(bool); isBool || opts.Attribute == "AXFocused" {
		b, err := strconv.ParseBool(opts.Value)
		if err != nil {
			return fmt.Errorf("failed to set %s=%q: %w", opts.Attribute, opts.Value, err)
		}
		v = b
	}
	nd.attrs[opts.Attribute] = v
	p.writes = append(p.writes, opts)
	return nil
}

// FetchCount returns how many times the attribute names of n were fetched.
func (p *Provider) FetchCount(n platform.Node) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetches[n]
}

// Activations returns how many times pid was activated.
func (p *Provider) Activations(pid int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activations[pid]
}

// Writes returns every successful SetValue call, in order.
func (p *Provider) Writes() []platform.SetValueOptions {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]platform.SetValueOptions(nil), p.writes...)
}

// Lookup returns the first node, in handle order, whose AXRole and AXTitle
// match. An empty title matches any title.
func (p *Provider) Lookup(role, title string) (platform.Node, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for h := platform.Node(1); h <= p.next; h++ {
		nd := p.nodes[h]
		if nd.attrs["AXRole"] != role {
			continue
		}
		if title != "" && nd.attrs["AXTitle"] != title {
			continue
		}
		return h, true
	}
	return platform.NoNode, false
}

// PID returns the owning process of n.
func (p *Provider) PID(n platform.Node) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if nd, ok := p.nodes[n]; ok {
		return nd.pid
	}
	return 0
}
