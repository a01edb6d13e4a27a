package element

import (
	"errors"
	"fmt"
	"maps"

	"github.com/mj1618/uisoup/internal/platform"
)

// Snapshot holds a node's attributes as of the last fetch. It is either
// empty or complete; a failed fetch leaves it empty.
type Snapshot struct {
	props map[string]any
}

// Loaded reports whether the snapshot holds a fetch result.
func (s *Snapshot) Loaded() bool { return s.props != nil }

// Clear drops the snapshot so the next read fetches again.
func (s *Snapshot) Clear() { s.props = nil }

// Get returns one attribute from the snapshot.
func (s *Snapshot) Get(name string) (any, bool) {
	v, ok := s.props[name]
	return v, ok
}

// load fetches every advertised attribute of n. Unsupported attributes are
// left out.
func (s *Snapshot) load(nodes platform.NodeProvider, n platform.Node) error {
	if s.Loaded() {
		return nil
	}
	names, err := nodes.AttributeNames(n)
	if err != nil {
		return fmt.Errorf("failed to list attributes: %w", err)
	}
	props := make(map[string]any, len(names))
	for _, name := range names {
		v, err := nodes.Attribute(n, name)
		if errors.Is(err, platform.ErrUnsupportedAttribute) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		props[name] = v
	}
	s.props = props
	return nil
}

func (s *Snapshot) copy() map[string]any {
	return maps.Clone(s.props)
}
