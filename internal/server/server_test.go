package server

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/uisoup/internal/element"
	"github.com/mj1618/uisoup/internal/mouse"
	"github.com/mj1618/uisoup/internal/platform"
	"github.com/mj1618/uisoup/internal/platform/fixture"
	"github.com/mj1618/uisoup/internal/target"
)

type testServer struct {
	s   *Server
	p   *fixture.Provider
	rec *fixture.Recorder
}

func newTestServer(t *testing.T, ttl time.Duration) *testServer {
	t.Helper()
	tree, err := fixture.LoadFile("../platform/fixture/testdata/calculator.yaml")
	if err != nil {
		t.Fatal(err)
	}
	prov, p, rec := fixture.NewPlatform(tree)
	b := element.NewBackend(prov, mouse.New(rec, mouse.WithSleep(func(time.Duration) {})))
	s := New(b, Config{Transport: "stdio", CacheTTL: ttl}, nil)
	return &testServer{s: s, p: p, rec: rec}
}

func request(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	if len(r.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := r.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", r.Content[0])
	}
	return tc.Text
}

func TestHandleList(t *testing.T) {
	ts := newTestServer(t, 0)
	r, err := ts.s.handleList(context.Background(), request(nil))
	if err != nil {
		t.Fatal(err)
	}
	text := resultText(t, r)
	for _, want := range []string{"app: Calculator", "pid: 4242", "app: Notes"} {
		if !strings.Contains(text, want) {
			t.Errorf("list output missing %q:\n%s", want, text)
		}
	}
}

func TestHandleFind(t *testing.T) {
	ts := newTestServer(t, 0)
	r, err := ts.s.handleFind(context.Background(), request(map[string]interface{}{
		"app":  "Calculator",
		"attr": []interface{}{"AXRole=AXButton"},
		"all":  true,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if r.IsError {
		t.Fatalf("find failed: %s", resultText(t, r))
	}
	text := resultText(t, r)
	if !strings.Contains(text, "count: 2") {
		t.Errorf("want two buttons:\n%s", text)
	}
	if !strings.Contains(text, "c: btn7") || !strings.Contains(text, "c: btnclear") {
		t.Errorf("missing combined names:\n%s", text)
	}
}

func TestHandleFindNotFound(t *testing.T) {
	ts := newTestServer(t, 0)
	r, _ := ts.s.handleFind(context.Background(), request(map[string]interface{}{
		"app":    "Calculator",
		"c_name": "btnMissing",
	}))
	if !r.IsError {
		t.Fatal("expected an error result")
	}
	if text := resultText(t, r); !strings.Contains(text, "can't find element") {
		t.Errorf("unexpected error text: %s", text)
	}
}

func TestHandleExists(t *testing.T) {
	ts := newTestServer(t, 0)
	for cname, want := range map[string]string{"btn7": "exists: true", "btn8": "exists: false"} {
		r, err := ts.s.handleExists(context.Background(), request(map[string]interface{}{
			"app":    "Calculator",
			"c_name": cname,
		}))
		if err != nil {
			t.Fatal(err)
		}
		if text := resultText(t, r); !strings.Contains(text, want) {
			t.Errorf("exists %s = %q, want %q", cname, text, want)
		}
	}
}

func TestHandleInspect(t *testing.T) {
	ts := newTestServer(t, 0)
	r, err := ts.s.handleInspect(context.Background(), request(map[string]interface{}{
		"app":    "Calculator",
		"window": "Calc",
		"depth":  float64(1),
	}))
	if err != nil {
		t.Fatal(err)
	}
	text := resultText(t, r)
	if !strings.Contains(text, "c: frmCalculator") {
		t.Errorf("missing window:\n%s", text)
	}
	if strings.Contains(text, "btn7") {
		t.Errorf("depth 1 should stop above the buttons:\n%s", text)
	}
}

func TestHandleClick(t *testing.T) {
	ts := newTestServer(t, 0)
	r, err := ts.s.handleClick(context.Background(), request(map[string]interface{}{
		"app":    "Calculator",
		"c_name": "btn7",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if r.IsError {
		t.Fatalf("click failed: %s", resultText(t, r))
	}
	events := ts.rec.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != platform.LeftMouseDown || events[0].X != 130 || events[0].Y != 215 {
		t.Errorf("first event = %+v", events[0])
	}
}

func TestHandleClickRightWithOffset(t *testing.T) {
	ts := newTestServer(t, 0)
	r, _ := ts.s.handleClick(context.Background(), request(map[string]interface{}{
		"app":      "Calculator",
		"c_name":   "btn7",
		"button":   "right",
		"x_offset": float64(5),
		"y_offset": float64(5),
	}))
	if r.IsError {
		t.Fatalf("click failed: %s", resultText(t, r))
	}
	events := ts.rec.Events()
	if len(events) != 2 || events[0].Type != platform.RightMouseDown {
		t.Fatalf("events = %+v", events)
	}
	if events[0].X != 115 || events[0].Y != 205 {
		t.Errorf("click at (%v, %v), want (115, 205)", events[0].X, events[0].Y)
	}
}

func TestHandleClickSingleAxisOffset(t *testing.T) {
	ts := newTestServer(t, 0)
	r, _ := ts.s.handleClick(context.Background(), request(map[string]interface{}{
		"app":      "Calculator",
		"c_name":   "btn7",
		"y_offset": float64(3),
	}))
	if r.IsError {
		t.Fatalf("click failed: %s", resultText(t, r))
	}
	if ev := ts.rec.Events()[0]; ev.X != 130 || ev.Y != 203 {
		t.Errorf("click at (%v, %v), want (130, 203)", ev.X, ev.Y)
	}
}

func TestHandleClickBadButton(t *testing.T) {
	ts := newTestServer(t, 0)
	r, _ := ts.s.handleClick(context.Background(), request(map[string]interface{}{
		"app":    "Calculator",
		"c_name": "btn7",
		"button": "middle",
	}))
	if !r.IsError {
		t.Fatal("expected an error result")
	}
	if len(ts.rec.Events()) != 0 {
		t.Error("no events should be posted")
	}
}

func TestHandleSetValueAndFocus(t *testing.T) {
	ts := newTestServer(t, 0)
	r, _ := ts.s.handleSetValue(context.Background(), request(map[string]interface{}{
		"app":   "Calculator",
		"attr":  []interface{}{"AXRole=AXStaticText"},
		"value": "42",
	}))
	if r.IsError {
		t.Fatalf("set_value failed: %s", resultText(t, r))
	}
	r, _ = ts.s.handleFocus(context.Background(), request(map[string]interface{}{
		"app":    "Calculator",
		"c_name": "btn7",
	}))
	if r.IsError {
		t.Fatalf("focus failed: %s", resultText(t, r))
	}

	writes := ts.p.Writes()
	if len(writes) != 2 {
		t.Fatalf("got %d writes, want 2", len(writes))
	}
	if writes[0].Attribute != "AXValue" || writes[0].Value != "42" || !writes[0].Wait {
		t.Errorf("first write = %+v", writes[0])
	}
	if writes[1].Attribute != "AXFocused" || writes[1].Value != platform.TrueSentinel || writes[1].Wait {
		t.Errorf("second write = %+v", writes[1])
	}
}

func TestHandleSetValueRequiresValue(t *testing.T) {
	ts := newTestServer(t, 0)
	r, _ := ts.s.handleSetValue(context.Background(), request(map[string]interface{}{
		"app":    "Calculator",
		"c_name": "btn7",
	}))
	if !r.IsError {
		t.Fatal("expected an error result")
	}
}

func TestHandleDrag(t *testing.T) {
	ts := newTestServer(t, 0)
	r, _ := ts.s.handleDrag(context.Background(), request(map[string]interface{}{
		"app":    "Calculator",
		"c_name": "btn7",
		"to_x":   float64(300),
		"to_y":   float64(400),
		"smooth": false,
	}))
	if r.IsError {
		t.Fatalf("drag failed: %s", resultText(t, r))
	}
	events := ts.rec.Events()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3: %+v", len(events), events)
	}
	last := events[len(events)-1]
	if last.Type != platform.LeftMouseUp || last.X != 300 || last.Y != 400 {
		t.Errorf("last event = %+v", last)
	}
}

func TestHandleMouse(t *testing.T) {
	ts := newTestServer(t, 0)
	r, _ := ts.s.handleMouseMove(context.Background(), request(map[string]interface{}{
		"x": float64(50),
		"y": float64(60),
	}))
	if r.IsError {
		t.Fatalf("mouse_move failed: %s", resultText(t, r))
	}
	r, _ = ts.s.handleMousePosition(context.Background(), request(nil))
	text := resultText(t, r)
	if !strings.Contains(text, "x: 50") || !strings.Contains(text, "y: 60") {
		t.Errorf("position = %q", text)
	}

	r, _ = ts.s.handleMouseMove(context.Background(), request(map[string]interface{}{"x": float64(-3), "y": float64(1)}))
	if !r.IsError {
		t.Error("negative coordinates should fail")
	}
}

func TestWriteToolInvalidatesCache(t *testing.T) {
	ts := newTestServer(t, time.Minute)
	args := map[string]interface{}{"app": "Calculator", "c_name": "btn7"}
	if r, _ := ts.s.handleExists(context.Background(), request(args)); r.IsError {
		t.Fatal(resultText(t, r))
	}
	if ts.s.cache.Len() != 1 {
		t.Fatalf("cache len = %d, want 1", ts.s.cache.Len())
	}
	if r, _ := ts.s.handleClick(context.Background(), request(args)); r.IsError {
		t.Fatal(resultText(t, r))
	}
	if ts.s.cache.Len() != 0 {
		t.Errorf("cache len after click = %d, want 0", ts.s.cache.Len())
	}
}

func TestRootCache(t *testing.T) {
	ts := newTestServer(t, 0)
	b := ts.s.backend
	o := target.Options{App: "Calculator"}

	c := NewRootCache(time.Second)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	first, err := c.Root(b, o)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := c.Root(b, o)
	if first != second {
		t.Error("root should be reused within the TTL")
	}

	now = now.Add(2 * time.Second)
	third, _ := c.Root(b, o)
	if third == first {
		t.Error("root should be resolved again after the TTL")
	}

	c.InvalidateApp("", 4242)
	if c.Len() != 0 {
		t.Errorf("len after InvalidateApp = %d", c.Len())
	}

	if _, err := c.Root(b, target.Options{App: "Nope"}); err == nil {
		t.Error("unknown app should fail")
	}
	if c.Len() != 0 {
		t.Error("failed resolutions must not be cached")
	}
}

func TestRootCacheDisabled(t *testing.T) {
	ts := newTestServer(t, 0)
	c := NewRootCache(0)
	a, _ := c.Root(ts.s.backend, target.Options{App: "Calculator"})
	b, _ := c.Root(ts.s.backend, target.Options{App: "Calculator"})
	if a == b {
		t.Error("ttl 0 should resolve fresh roots")
	}
	if c.Len() != 0 {
		t.Error("ttl 0 should cache nothing")
	}
}

func TestToolsRegistered(t *testing.T) {
	ts := newTestServer(t, 0)
	resp := ts.s.MCP().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"list", "find", "exists", "inspect", "click", "drag", "set_value", "focus", "mouse_move", "mouse_position"} {
		if !strings.Contains(string(raw), `"name":"`+name+`"`) {
			t.Errorf("tool %q not registered", name)
		}
	}
}
