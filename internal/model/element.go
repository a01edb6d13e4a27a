package model

// ElementInfo is a serializable view of one accessibility element, as
// reported by find, inspect and the MCP tools.
type ElementInfo struct {
	Role     string        `yaml:"role"               json:"role"`               // Raw platform role (AXButton)
	RoleName string        `yaml:"r"                  json:"r"`                  // Short role tag (btn)
	Name     string        `yaml:"n,omitempty"        json:"n,omitempty"`        // Display name
	CName    string        `yaml:"c,omitempty"        json:"c,omitempty"`        // Combined role tag + name
	Value    string        `yaml:"v,omitempty"        json:"v,omitempty"`        // Current value
	Bounds   [4]int        `yaml:"b"                  json:"b"`                  // [x, y, width, height]
	Enabled  bool          `yaml:"e,omitempty"        json:"e,omitempty"`        // AXEnabled
	Selected bool          `yaml:"s,omitempty"        json:"s,omitempty"`        // Radio button on
	Checked  bool          `yaml:"k,omitempty"        json:"k,omitempty"`        // Check box on
	TopLevel bool          `yaml:"top,omitempty"      json:"top,omitempty"`      // Has no parent
	Children []ElementInfo `yaml:"children,omitempty" json:"children,omitempty"` // Populated by inspect
}

// Application is a running process that owns accessible windows.
type Application struct {
	Name    string `yaml:"app"               json:"app"`
	PID     int    `yaml:"pid"               json:"pid"`
	Windows int    `yaml:"windows,omitempty" json:"windows,omitempty"`
	Active  bool   `yaml:"active,omitempty"  json:"active,omitempty"`
}
