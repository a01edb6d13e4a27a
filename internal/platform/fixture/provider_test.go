package fixture

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/mj1618/uisoup/internal/platform"
)

func loadCalculator(t *testing.T) *Provider {
	t.Helper()
	tree, err := LoadFile("testdata/calculator.yaml")
	if err != nil {
		t.Fatal(err)
	}
	return New(tree)
}

func TestLoadFile_Calculator(t *testing.T) {
	tree, err := LoadFile("testdata/calculator.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Applications) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(tree.Applications))
	}
	if tree.Applications[0].Name != "Calculator" || tree.Applications[0].PID != 4242 {
		t.Errorf("unexpected first app: %+v", tree.Applications[0])
	}
	if got := tree.Cursor; len(got) != 2 || got[0] != 5 || got[1] != 5 {
		t.Errorf("cursor = %v, want [5 5]", got)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"no pid":        "applications:\n  - name: X\n",
		"duplicate pid": "applications:\n  - {name: A, pid: 1}\n  - {name: B, pid: 1}\n",
		"no role":       "applications:\n  - name: A\n    pid: 1\n    windows:\n      - title: W\n",
		"bad position":  "applications:\n  - name: A\n    pid: 1\n    windows:\n      - {role: AXWindow, position: [1]}\n",
		"bad cursor":    "cursor: [1, 2, 3]\napplications: []\n",
		"not yaml":      "applications: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Errorf("Parse should fail for %s", name)
			}
		})
	}
}

func TestProvider_TreeShape(t *testing.T) {
	p := loadCalculator(t)

	root, err := p.Application(4242)
	if err != nil {
		t.Fatal(err)
	}
	windows, err := p.Windows(4242)
	if err != nil {
		t.Fatal(err)
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	children, _ := p.Children(root)
	if !reflect.DeepEqual(children, windows) {
		t.Errorf("application children %v != windows %v", children, windows)
	}
	for _, w := range windows {
		parent, err := p.Parent(w)
		if err != nil {
			t.Fatal(err)
		}
		if parent != platform.NoNode {
			t.Errorf("window %d should report no parent, got %d", w, parent)
		}
	}

	btn, ok := p.Lookup("AXButton", "7")
	if !ok {
		t.Fatal("button 7 not found")
	}
	group, _ := p.Parent(btn)
	if role, _ := p.Attribute(group, "AXRole"); role != "AXGroup" {
		t.Errorf("button parent role = %v, want AXGroup", role)
	}
	pos, err := p.Attribute(btn, "AXPosition")
	if err != nil {
		t.Fatal(err)
	}
	if pos != (platform.Point{X: 110, Y: 200}) {
		t.Errorf("AXPosition = %v", pos)
	}
	if p.PID(btn) != 4242 {
		t.Errorf("PID(btn) = %d, want 4242", p.PID(btn))
	}
}

func TestProvider_UnsupportedAttribute(t *testing.T) {
	p := loadCalculator(t)
	label, ok := p.Lookup("AXStaticText", "")
	if !ok {
		t.Fatal("label not found")
	}
	names, err := p.AttributeNames(label)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(strings.Join(names, ","), "AXDescription") {
		t.Errorf("AXDescription should be advertised, got %v", names)
	}
	if _, err := p.Attribute(label, "AXDescription"); !errors.Is(err, platform.ErrUnsupportedAttribute) {
		t.Errorf("expected ErrUnsupportedAttribute, got %v", err)
	}
	if _, err := p.Attribute(label, "AXMissing"); !errors.Is(err, platform.ErrUnsupportedAttribute) {
		t.Errorf("expected ErrUnsupportedAttribute for missing attribute, got %v", err)
	}
	if p.FetchCount(label) != 1 {
		t.Errorf("FetchCount = %d, want 1", p.FetchCount(label))
	}
}

func TestProvider_InvalidHandle(t *testing.T) {
	p := loadCalculator(t)
	if _, err := p.AttributeNames(9999); err == nil {
		t.Error("AttributeNames should fail for unknown handle")
	}
	if _, err := p.Children(9999); err == nil {
		t.Error("Children should fail for unknown handle")
	}
	if _, err := p.Application(1); err == nil {
		t.Error("Application should fail for unknown pid")
	}
	if err := p.Activate(1); err == nil {
		t.Error("Activate should fail for unknown pid")
	}
}

func TestProvider_SetValue(t *testing.T) {
	p := loadCalculator(t)
	btn, _ := p.Lookup("AXButton", "7")

	if err := p.SetValue(platform.SetValueOptions{Node: btn, PID: 4242, Attribute: "AXValue", Value: "hi", Wait: true}); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.Attribute(btn, "AXValue"); v != "hi" {
		t.Errorf("AXValue = %v, want hi", v)
	}

	if err := p.SetValue(platform.SetValueOptions{Node: btn, Attribute: "AXFocused", Value: "true"}); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.Attribute(btn, "AXFocused"); v != true {
		t.Errorf("AXFocused = %v, want true", v)
	}

	if err := p.SetValue(platform.SetValueOptions{Node: btn, PID: 1, Attribute: "AXValue", Value: "x"}); err == nil {
		t.Error("SetValue should reject a node from another pid")
	}
	if len(p.Writes()) != 2 {
		t.Errorf("expected 2 recorded writes, got %d", len(p.Writes()))
	}
}

func TestProvider_Applications(t *testing.T) {
	p := loadCalculator(t)
	apps, err := p.Applications()
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 apps, got %d", len(apps))
	}
	if apps[0].Windows != 2 || !apps[0].Active {
		t.Errorf("unexpected Calculator entry: %+v", apps[0])
	}
	if apps[1].Name != "Notes" || apps[1].Windows != 0 {
		t.Errorf("unexpected Notes entry: %+v", apps[1])
	}
	if err := p.Activate(99); err != nil {
		t.Fatal(err)
	}
	if p.Activations(99) != 1 {
		t.Errorf("Activations(99) = %d, want 1", p.Activations(99))
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(3, 4)
	x, y, _ := r.CursorPosition()
	if x != 3 || y != 4 {
		t.Errorf("initial position = (%d, %d), want (3, 4)", x, y)
	}
	if err := r.PostMouseEvent(platform.MouseEvent{Type: platform.MouseMoved, X: 10, Y: 20}); err != nil {
		t.Fatal(err)
	}
	x, y, _ = r.CursorPosition()
	if x != 10 || y != 20 {
		t.Errorf("position = (%d, %d), want (10, 20)", x, y)
	}
	if len(r.Events()) != 1 {
		t.Errorf("expected 1 event, got %d", len(r.Events()))
	}
	r.Reset()
	if len(r.Events()) != 0 {
		t.Error("Reset should drop events")
	}

	r.Err = errors.New("boom")
	if err := r.PostMouseEvent(platform.MouseEvent{}); err == nil {
		t.Error("expected injected error")
	}
}
