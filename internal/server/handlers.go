package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/uisoup/internal/element"
	"github.com/mj1618/uisoup/internal/inspect"
	"github.com/mj1618/uisoup/internal/model"
	"github.com/mj1618/uisoup/internal/mouse"
	"github.com/mj1618/uisoup/internal/output"
	"github.com/mj1618/uisoup/internal/platform"
	"github.com/mj1618/uisoup/internal/target"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// toText serializes a tool result to YAML for the MCP response.
func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %s", err)
	}
	return string(b)
}

func textResult(v interface{}) *mcp.CallToolResult {
	return mcp.NewToolResultText(toText(v))
}

// resolve finds the tool's target element: the (cached) root, or the first
// match of the predicate beneath it. The caller must hold providerMu.
func (s *Server) resolve(o target.Options) (*element.Element, error) {
	root, err := s.cache.Root(s.backend, o)
	if err != nil {
		return nil, err
	}
	if !o.HasPredicate() {
		return root, nil
	}
	pred, err := o.Predicate()
	if err != nil {
		return nil, err
	}
	return root.Find(pred)
}

// writeActionHandler locks the provider, resolves the target element, runs
// fn and invalidates cached roots of the affected application.
func (s *Server) writeActionHandler(
	request mcp.CallToolRequest,
	action string,
	fn func(el *element.Element, params map[string]interface{}) error,
) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	o := target.FromParams(params)
	result := model.ActionResult{Action: action}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	el, err := s.resolve(o)
	if err == nil {
		info := inspect.Describe(el)
		result.Target = &info
		err = fn(el, params)
	}
	if err != nil {
		s.log.Error("tool failed", zap.String("tool", action), zap.Error(err))
		result.Error = err.Error()
		return mcp.NewToolResultError(toText(result)), nil
	}
	result.OK = true
	s.log.Debug("tool done", zap.String("tool", action), zap.String("c_name", result.Target.CName))

	if o.App != "" || o.PID != 0 {
		s.cache.InvalidateApp(o.App, el.PID())
	} else {
		s.cache.InvalidateAll()
	}
	return textResult(result), nil
}

func (s *Server) handleList(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	apps, err := s.backend.Apps.Applications()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(apps), nil
}

func (s *Server) handleFind(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	o := target.FromParams(params)
	all := target.BoolParam(params, "all", false)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	pred, err := o.Predicate()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	root, err := s.cache.Root(s.backend, o)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var found []*element.Element
	if all {
		found, err = root.FindAll(pred)
	} else {
		var el *element.Element
		if el, err = root.Find(pred); err == nil {
			found = []*element.Element{el}
		}
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(model.FindResult{Count: len(found), Elements: inspect.DescribeAll(found)}), nil
}

func (s *Server) handleExists(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	o := target.FromParams(request.GetArguments())

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	pred, err := o.Predicate()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	root, err := s.cache.Root(s.backend, o)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(model.ExistsResult{Exists: root.Exists(pred)}), nil
}

func (s *Server) handleInspect(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	o := target.FromParams(params)
	depth := target.IntParam(params, "depth", 0)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	el, err := s.resolve(o)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(output.InspectResult{
		App:      el.Process(),
		PID:      el.PID(),
		Window:   o.Window,
		Elements: []model.ElementInfo{inspect.Tree(el, depth)},
	}), nil
}

func offsetParam(params map[string]interface{}) *element.Offset {
	_, hasX := params["x_offset"]
	_, hasY := params["y_offset"]
	if !hasX && !hasY {
		return nil
	}
	off := &element.Offset{}
	if hasX {
		x := target.IntParam(params, "x_offset", 0)
		off.X = &x
	}
	if hasY {
		y := target.IntParam(params, "y_offset", 0)
		off.Y = &y
	}
	return off
}

func (s *Server) handleClick(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.writeActionHandler(request, "click", func(el *element.Element, params map[string]interface{}) error {
		button, err := mouse.ParseButton(target.StringParam(params, "button", "left"))
		if err != nil {
			return err
		}
		off := offsetParam(params)
		switch {
		case target.BoolParam(params, "double", false):
			return el.DoubleClick(off, s.cfg.DoubleClickInterval)
		case button == platform.MouseRight:
			return el.RightClick(off)
		default:
			return el.Click(off)
		}
	})
}

func (s *Server) handleDrag(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.writeActionHandler(request, "drag", func(el *element.Element, params map[string]interface{}) error {
		x := target.IntParam(params, "to_x", -1)
		y := target.IntParam(params, "to_y", -1)
		return el.DragTo(x, y, offsetParam(params), target.BoolParam(params, "smooth", true))
	})
}

func (s *Server) handleSetValue(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.writeActionHandler(request, "set_value", func(el *element.Element, params map[string]interface{}) error {
		if _, ok := params["value"]; !ok {
			return fmt.Errorf("value is required")
		}
		return el.SetValue(target.StringParam(params, "value", ""))
	})
}

func (s *Server) handleFocus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.writeActionHandler(request, "focus", func(el *element.Element, _ map[string]interface{}) error {
		return el.SetFocus()
	})
}

func (s *Server) handleMouseMove(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	x := target.IntParam(params, "x", -1)
	y := target.IntParam(params, "y", -1)
	smooth := target.BoolParam(params, "smooth", false)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	result := model.ActionResult{Action: "mouse_move", X: x, Y: y}
	if err := s.backend.Mouse.Move(x, y, smooth); err != nil {
		s.log.Error("tool failed", zap.String("tool", "mouse_move"), zap.Error(err))
		result.Error = err.Error()
		return mcp.NewToolResultError(toText(result)), nil
	}
	result.OK = true
	// Pointer motion can change hover state of cached elements.
	s.cache.InvalidateAll()
	return textResult(result), nil
}

func (s *Server) handleMousePosition(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	x, y, err := s.backend.Mouse.Position()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(model.PositionResult{X: x, Y: y}), nil
}
