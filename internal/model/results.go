package model

// ActionResult reports a click, drag, set-value, focus or mouse action.
type ActionResult struct {
	OK     bool         `yaml:"ok"               json:"ok"`
	Action string       `yaml:"action"           json:"action"`
	Target *ElementInfo `yaml:"target,omitempty" json:"target,omitempty"`
	X      int          `yaml:"x,omitempty"      json:"x,omitempty"`
	Y      int          `yaml:"y,omitempty"      json:"y,omitempty"`
	Error  string       `yaml:"error,omitempty"  json:"error,omitempty"`
}

// FindResult is the output of find.
type FindResult struct {
	Count    int           `yaml:"count"    json:"count"`
	Elements []ElementInfo `yaml:"elements" json:"elements"`
}

// ExistsResult is the output of exists.
type ExistsResult struct {
	Exists bool `yaml:"exists" json:"exists"`
}

// PositionResult is the live cursor position.
type PositionResult struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}
