package cmd

import (
	"fmt"

	"github.com/mj1618/uisoup/internal/element"
	"github.com/mj1618/uisoup/internal/inspect"
	"github.com/mj1618/uisoup/internal/model"
	"github.com/mj1618/uisoup/internal/observability"
	"github.com/mj1618/uisoup/internal/output"
	"github.com/mj1618/uisoup/internal/target"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// addTargetFlags adds the flags that choose a root element and a predicate.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("app", "", "Application name (default: the active application)")
	cmd.Flags().Int("pid", 0, "Process ID (wins over --app)")
	cmd.Flags().String("window", "", "Window title substring to search under (default: the whole application)")
	cmd.Flags().StringArray("attr", nil, "Attribute predicate key=value (repeatable), e.g. AXRole=AXButton")
	cmd.Flags().String("c-name", "", "Combined role tag + name, e.g. btnOK")
}

// getTargetOptions reads the target flags from a command.
func getTargetOptions(cmd *cobra.Command) target.Options {
	var o target.Options
	o.App, _ = cmd.Flags().GetString("app")
	o.PID, _ = cmd.Flags().GetInt("pid")
	o.Window, _ = cmd.Flags().GetString("window")
	o.Attrs, _ = cmd.Flags().GetStringArray("attr")
	o.CName, _ = cmd.Flags().GetString("c-name")
	return o
}

// requirePredicate rejects element commands that would otherwise act on the
// root itself.
func requirePredicate(o target.Options) error {
	if !o.HasPredicate() {
		return fmt.Errorf("--attr or --c-name is required to choose an element")
	}
	return nil
}

// resolveElement finds the element an action command targets.
func resolveElement(cmd *cobra.Command) (*element.Element, error) {
	o := getTargetOptions(cmd)
	if err := requirePredicate(o); err != nil {
		return nil, err
	}
	return target.Element(backend, o)
}

// addOffsetFlags adds --x-offset and --y-offset. Without them actions aim at
// the element's centre.
func addOffsetFlags(cmd *cobra.Command) {
	cmd.Flags().Int("x-offset", 0, "X offset from the element's left edge (default: centre)")
	cmd.Flags().Int("y-offset", 0, "Y offset from the element's top edge (default: centre)")
}

// getOffset returns nil unless either offset flag was given. An omitted
// axis stays at the centre.
func getOffset(cmd *cobra.Command) *element.Offset {
	if !cmd.Flags().Changed("x-offset") && !cmd.Flags().Changed("y-offset") {
		return nil
	}
	off := &element.Offset{}
	if cmd.Flags().Changed("x-offset") {
		x, _ := cmd.Flags().GetInt("x-offset")
		off.X = &x
	}
	if cmd.Flags().Changed("y-offset") {
		y, _ := cmd.Flags().GetInt("y-offset")
		off.Y = &y
	}
	return off
}

// runElementAction resolves the target element, runs fn on it and prints an
// ActionResult.
func runElementAction(cmd *cobra.Command, action string, fn func(el *element.Element) error) error {
	el, err := resolveElement(cmd)
	if err != nil {
		return err
	}
	info := inspect.Describe(el)
	log := observability.GetLogger().With(zap.String("action", action), zap.String("c_name", info.CName))
	if err := fn(el); err != nil {
		log.Error("action failed", zap.Error(err))
		return err
	}
	log.Debug("action done")
	return output.Print(model.ActionResult{OK: true, Action: action, Target: &info})
}
