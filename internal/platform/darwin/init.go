//go:build darwin && cgo

package darwin

import "github.com/mj1618/uisoup/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		if err := CheckAccessibilityPermission(); err != nil {
			return nil, err
		}
		nodes := NewNodes()
		return &platform.Provider{
			Nodes:       nodes,
			Apps:        NewApps(nodes),
			Events:      NewEvents(),
			ValueSetter: NewValueSetter(nodes),
		}, nil
	}
	platform.RequestPermissionsFunc = RequestAccessibilityPermission
}
