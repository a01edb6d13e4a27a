package element

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/mj1618/uisoup/internal/platform"
)

// Predicate is a set of attribute constraints. Keys are platform attribute
// names (AXTitle, AXRole, ...) or one of the synthetic keys KeyCombinedName,
// KeyName and KeyRoleName. An empty predicate matches every element.
type Predicate map[string]any

// Synthetic predicate keys.
const (
	KeyCombinedName = "c_name"
	KeyName         = "name"
	KeyRoleName     = "role_name"
)

// Match reports whether el satisfies every constraint in p. A key missing
// from the element's snapshot is a mismatch.
func (p Predicate) Match(el *Element) bool {
	for k, want := range p {
		var got any
		switch k {
		case KeyCombinedName:
			if !matchCombinedName(el, fmt.Sprint(want)) {
				return false
			}
			continue
		case KeyName:
			got = el.Name()
		case KeyRoleName:
			got = el.RoleName()
		default:
			v, ok := el.get(k)
			if !ok {
				return false
			}
			got = v
		}
		if !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

// matchCombinedName compares the element's combined name whole. Splitting
// want on a tag prefix is ambiguous where tags nest ("tbl" and "tblc").
func matchCombinedName(el *Element, want string) bool {
	return el.CombinedName() == want
}

// valuesEqual compares attribute values. Values of different types are
// compared by their printed form so textual input matches numbers and
// booleans.
func valuesEqual(got, want any) bool {
	if reflect.DeepEqual(got, want) {
		return true
	}
	if got == nil || want == nil {
		return false
	}
	return fmt.Sprint(got) == fmt.Sprint(want)
}

func (e *Element) remember(el *Element) {
	if e.visited == nil {
		e.visited = make(map[platform.Node]*Element)
	}
	if _, ok := e.visited[el.node]; ok {
		return
	}
	e.visited[el.node] = el
	e.visitedOrder = append(e.visitedOrder, el.node)
}

// siblingWindows activates the element's process and wraps every other
// top-level window it owns.
func (e *Element) siblingWindows() []*Element {
	_ = e.b.Apps.Activate(e.pid)
	nodes, err := e.b.Apps.Windows(e.pid)
	if err != nil {
		return nil
	}
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		if n != e.node {
			out = append(out, New(e.b, n, e.process, e.pid))
		}
	}
	return out
}

// Matches lazily yields every descendant matching p. The queue starts with
// the immediate children, plus the process's other top-level windows when e
// is itself one. Children of each visited element are pushed to the front
// of the queue. onlyVisible is accepted for interface parity; every
// accessible element is visible on this platform.
func (e *Element) Matches(p Predicate, onlyVisible bool) iter.Seq[*Element] {
	_ = onlyVisible
	return func(yield func(*Element) bool) {
		queue := e.Children()
		if e.IsTopLevelWindow() {
			queue = append(queue, e.siblingWindows()...)
		}
		seen := make(map[platform.Node]bool)
		for len(queue) > 0 {
			el := queue[0]
			queue = queue[1:]
			if seen[el.node] {
				continue
			}
			seen[el.node] = true
			e.remember(el)

			if p.Match(el) && !yield(el) {
				return
			}
			if children := el.Children(); len(children) > 0 {
				queue = append(children, queue...)
			}
		}
	}
}

// Find returns the first match of p.
func (e *Element) Find(p Predicate) (*Element, error) {
	for el := range e.Matches(p, true) {
		return el, nil
	}
	return nil, &NotFoundError{Attributes: p}
}

// FindAll returns every match of p, in traversal order.
func (e *Element) FindAll(p Predicate) ([]*Element, error) {
	var out []*Element
	for el := range e.Matches(p, true) {
		out = append(out, el)
	}
	if len(out) == 0 {
		return nil, &NotFoundError{Attributes: p}
	}
	return out, nil
}

// Exists reports whether Find would succeed.
func (e *Element) Exists(p Predicate) bool {
	_, err := e.Find(p)
	return err == nil
}

// CachedMatches yields the elements recorded by earlier traversals that
// match p, without touching the tree structure.
func (e *Element) CachedMatches(p Predicate) iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for _, n := range e.visitedOrder {
			el := e.visited[n]
			if p.Match(el) && !yield(el) {
				return
			}
		}
	}
}

// FindCached returns the first element recorded by earlier traversals that
// matches p.
func (e *Element) FindCached(p Predicate) (*Element, error) {
	for el := range e.CachedMatches(p) {
		return el, nil
	}
	return nil, &NotFoundError{Attributes: p}
}
