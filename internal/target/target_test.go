package target

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mj1618/uisoup/internal/element"
	"github.com/mj1618/uisoup/internal/model"
	"github.com/mj1618/uisoup/internal/mouse"
	"github.com/mj1618/uisoup/internal/platform/fixture"
)

func calculatorBackend(t *testing.T) *element.Backend {
	t.Helper()
	tree, err := fixture.LoadFile("../platform/fixture/testdata/calculator.yaml")
	if err != nil {
		t.Fatal(err)
	}
	prov, _, rec := fixture.NewPlatform(tree)
	return element.NewBackend(prov, mouse.New(rec, mouse.WithSleep(func(time.Duration) {})))
}

func TestParseAttrs(t *testing.T) {
	got, err := ParseAttrs([]string{"AXRole=AXButton", "AXTitle=a=b", " AXValue =", "AXEnabled=true"})
	if err != nil {
		t.Fatal(err)
	}
	want := element.Predicate{"AXRole": "AXButton", "AXTitle": "a=b", "AXValue": "", "AXEnabled": "true"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseAttrs mismatch (-want +got):\n%s", diff)
	}
	for _, bad := range []string{"noequals", "=value"} {
		if _, err := ParseAttrs([]string{bad}); err == nil {
			t.Errorf("ParseAttrs(%q) should fail", bad)
		}
	}
}

func TestOptionsPredicate(t *testing.T) {
	o := Options{Attrs: []string{"AXRole=AXButton"}, CName: "btn7"}
	pred, err := o.Predicate()
	if err != nil {
		t.Fatal(err)
	}
	if pred[element.KeyCombinedName] != "btn7" || pred["AXRole"] != "AXButton" {
		t.Errorf("Predicate() = %v", pred)
	}
	if (Options{}).HasPredicate() {
		t.Error("empty options should have no predicate")
	}
}

func TestResolveApp(t *testing.T) {
	apps := []model.Application{
		{Name: "Calculator", PID: 10},
		{Name: "Calendar", PID: 11, Active: true},
		{Name: "Notes", PID: 12},
	}
	tests := []struct {
		name    string
		opts    Options
		wantPID int
		wantErr bool
	}{
		{"pid", Options{PID: 12}, 12, false},
		{"pid wins over name", Options{PID: 10, App: "Notes"}, 10, false},
		{"exact name", Options{App: "calculator"}, 10, false},
		{"unique substring", Options{App: "note"}, 12, false},
		{"ambiguous substring", Options{App: "cal"}, 0, true},
		{"no match", Options{App: "Safari"}, 0, true},
		{"unknown pid", Options{PID: 99}, 0, true},
		{"active app", Options{}, 11, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveApp(apps, tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.PID != tt.wantPID {
				t.Errorf("ResolveApp(%+v) pid = %d, want %d", tt.opts, got.PID, tt.wantPID)
			}
		})
	}

	if _, err := ResolveApp(apps[:1], Options{}); !errors.Is(err, ErrNoTarget) {
		t.Errorf("expected ErrNoTarget without an active app, got %v", err)
	}
}

func TestRoot(t *testing.T) {
	b := calculatorBackend(t)

	app, err := Root(b, Options{App: "Calculator"})
	if err != nil {
		t.Fatal(err)
	}
	if app.RoleName() != "app" {
		t.Errorf("root role = %q, want app", app.RoleName())
	}

	win, err := Root(b, Options{PID: 4242, Window: "tape"})
	if err != nil {
		t.Fatal(err)
	}
	if win.CombinedName() != "frmPaper Tape" {
		t.Errorf("window = %q, want frmPaper Tape", win.CombinedName())
	}

	if _, err := Root(b, Options{App: "Calculator", Window: "Missing"}); err == nil {
		t.Error("expected an error for an unknown window")
	}
}

func TestElement(t *testing.T) {
	b := calculatorBackend(t)

	el, err := Element(b, Options{App: "Calculator", CName: "btnclear"})
	if err != nil {
		t.Fatal(err)
	}
	if el.Name() != "clear" {
		t.Errorf("Element() = %q, want clear", el.Name())
	}

	_, err = Element(b, Options{App: "Calculator", Attrs: []string{"AXTitle=9"}})
	if !errors.Is(err, element.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFromParams(t *testing.T) {
	params := map[string]interface{}{
		"app":    "Calculator",
		"pid":    float64(4242),
		"window": "Calc",
		"attr":   []interface{}{"AXTitle=7", "AXEnabled=true"},
		"c_name": "btn7",
	}
	got := FromParams(params)
	want := Options{App: "Calculator", PID: 4242, Window: "Calc", Attrs: []string{"AXTitle=7", "AXEnabled=true"}, CName: "btn7"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromParams mismatch (-want +got):\n%s", diff)
	}
	if got := StringSliceParam(map[string]interface{}{"attr": "AXRole=AXButton"}, "attr"); len(got) != 1 {
		t.Errorf("single string should become a one-element list, got %v", got)
	}
	if IntParam(nil, "pid", 3) != 3 || BoolParam(nil, "smooth", true) != true || StringParam(nil, "app", "x") != "x" {
		t.Error("missing params should return defaults")
	}
}
