package platform

import "testing"

func TestIsTrue(t *testing.T) {
	tests := []struct {
		input any
		want  bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"True", false},
		{"false", false},
		{1, true},
		{0, false},
		{int64(1), true},
		{float64(1), true},
		{2.0, false},
		{nil, false},
		{Point{}, false},
	}
	for _, tt := range tests {
		if got := IsTrue(tt.input); got != tt.want {
			t.Errorf("IsTrue(%#v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBounds_Center(t *testing.T) {
	b := Bounds{X: 10, Y: 20, Width: 101, Height: 31}
	x, y := b.Center()
	if x != 60 || y != 35 {
		t.Errorf("Center() = (%d, %d), want (60, 35)", x, y)
	}
	if b.Array() != [4]int{10, 20, 101, 31} {
		t.Errorf("Array() = %v", b.Array())
	}
}

func TestEventType_Button(t *testing.T) {
	tests := []struct {
		input EventType
		want  MouseButton
	}{
		{MouseMoved, MouseLeft},
		{LeftMouseDown, MouseLeft},
		{LeftMouseDragged, MouseLeft},
		{RightMouseDown, MouseRight},
		{RightMouseUp, MouseRight},
		{RightMouseDragged, MouseRight},
	}
	for _, tt := range tests {
		if got := tt.input.Button(); got != tt.want {
			t.Errorf("%s.Button() = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestStringers(t *testing.T) {
	if MouseRight.String() != "right" {
		t.Errorf("MouseRight.String() = %q", MouseRight.String())
	}
	if MouseButton(9).String() != "MouseButton(9)" {
		t.Errorf("MouseButton(9).String() = %q", MouseButton(9).String())
	}
	if LeftMouseUp.String() != "left-up" {
		t.Errorf("LeftMouseUp.String() = %q", LeftMouseUp.String())
	}
	if EventType(42).String() != "EventType(42)" {
		t.Errorf("EventType(42).String() = %q", EventType(42).String())
	}
}
