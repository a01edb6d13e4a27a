package platform

import "github.com/mj1618/uisoup/internal/model"

// NodeProvider reads the OS accessibility tree. Nodes are handles issued by
// the provider and are only meaningful to the provider that issued them.
type NodeProvider interface {
	// AttributeNames lists the attributes the node advertises.
	AttributeNames(n Node) ([]string, error)

	// Attribute returns one attribute value. ErrUnsupportedAttribute means
	// the attribute is absent on this node.
	Attribute(n Node, name string) (any, error)

	// Children returns the node's immediate children in platform order.
	Children(n Node) ([]Node, error)

	// Parent returns the node's parent, or NoNode for a root.
	Parent(n Node) (Node, error)
}

// ProcessDirectory resolves running applications and their windows.
type ProcessDirectory interface {
	Applications() ([]model.Application, error)
	Application(pid int) (Node, error)
	Activate(pid int) error
	Windows(pid int) ([]Node, error)
}

// EventPoster injects low-level pointer events.
type EventPoster interface {
	PostMouseEvent(ev MouseEvent) error
	CursorPosition() (x, y int, err error)
}

// ValueSetter writes accessibility attributes on UI elements.
type ValueSetter interface {
	SetValue(opts SetValueOptions) error
}
