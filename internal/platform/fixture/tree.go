package fixture

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Tree is the YAML document describing a desktop.
type Tree struct {
	Cursor       []int     `yaml:"cursor,omitempty"`
	Applications []AppSpec `yaml:"applications"`
}

// AppSpec describes one running application.
type AppSpec struct {
	Name    string     `yaml:"name"`
	PID     int        `yaml:"pid"`
	Active  bool       `yaml:"active,omitempty"`
	Windows []NodeSpec `yaml:"windows,omitempty"`
}

// NodeSpec describes one accessibility node and its subtree.
type NodeSpec struct {
	Role        string         `yaml:"role"`
	Title       string         `yaml:"title,omitempty"`
	Value       any            `yaml:"value,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Enabled     *bool          `yaml:"enabled,omitempty"`
	Focused     bool           `yaml:"focused,omitempty"`
	Position    []int          `yaml:"position,omitempty"` // [x, y]
	Size        []int          `yaml:"size,omitempty"`     // [w, h]
	Attributes  map[string]any `yaml:"attributes,omitempty"`
	Unsupported []string       `yaml:"unsupported,omitempty"` // advertised names that fail to read
	Children    []NodeSpec     `yaml:"children,omitempty"`
}

// Parse decodes a YAML tree.
func Parse(data []byte) (Tree, error) {
	var t Tree
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tree{}, fmt.Errorf("parse fixture: %w", err)
	}
	if err := t.validate(); err != nil {
		return Tree{}, err
	}
	return t, nil
}

// Load decodes a YAML tree from r.
func Load(r io.Reader) (Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Tree{}, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data)
}

// LoadFile decodes the YAML tree stored at path.
func LoadFile(path string) (Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tree{}, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (t Tree) validate() error {
	if len(t.Cursor) != 0 && len(t.Cursor) != 2 {
		return fmt.Errorf("invalid fixture: cursor must be [x, y]")
	}
	seen := make(map[int]bool)
	for _, app := range t.Applications {
		if app.PID <= 0 {
			return fmt.Errorf("invalid fixture: application %q needs a positive pid", app.Name)
		}
		if seen[app.PID] {
			return fmt.Errorf("invalid fixture: duplicate pid %d", app.PID)
		}
		seen[app.PID] = true
		for _, w := range app.Windows {
			if err := w.validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (n NodeSpec) validate() error {
	if n.Role == "" {
		return fmt.Errorf("invalid fixture: node %q has no role", n.Title)
	}
	if len(n.Position) != 0 && len(n.Position) != 2 {
		return fmt.Errorf("invalid fixture: %s %q position must be [x, y]", n.Role, n.Title)
	}
	if len(n.Size) != 0 && len(n.Size) != 2 {
		return fmt.Errorf("invalid fixture: %s %q size must be [w, h]", n.Role, n.Title)
	}
	for _, c := range n.Children {
		if err := c.validate(); err != nil {
			return err
		}
	}
	return nil
}
