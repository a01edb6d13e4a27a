package cmd

import (
	"fmt"

	"github.com/mj1618/uisoup/internal/element"
	"github.com/mj1618/uisoup/internal/model"
	"github.com/mj1618/uisoup/internal/mouse"
	"github.com/mj1618/uisoup/internal/output"
	"github.com/mj1618/uisoup/internal/platform"
	"github.com/spf13/cobra"
)

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click an element or a screen point",
	Long: `Click the element matching the predicates, at its centre or at
--x-offset/--y-offset from its top-left corner. With --x and --y and no
predicate, click that screen point instead.

Examples:
  uisoup click --app Calculator --c-name btn7
  uisoup click --app Finder --c-name txtReadme --button right
  uisoup click --app Calculator --c-name lbl0 --double
  uisoup click --x 200 --y 300`,
	RunE: runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	addTargetFlags(clickCmd)
	addOffsetFlags(clickCmd)
	clickCmd.Flags().String("button", "left", "Mouse button: left, right (b1c and b3c are accepted too)")
	clickCmd.Flags().Bool("double", false, "Double-click (left button only)")
	clickCmd.Flags().Duration("interval", 0, "Pause between the clicks of a double-click (default: mouse.double_click_interval)")
	clickCmd.Flags().Int("x", -1, "Click at absolute X screen coordinate")
	clickCmd.Flags().Int("y", -1, "Click at absolute Y screen coordinate")
}

func runClick(cmd *cobra.Command, args []string) error {
	buttonStr, _ := cmd.Flags().GetString("button")
	double, _ := cmd.Flags().GetBool("double")
	interval, _ := cmd.Flags().GetDuration("interval")
	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")

	button, err := mouse.ParseButton(buttonStr)
	if err != nil {
		return err
	}
	if double && button != platform.MouseLeft {
		return fmt.Errorf("--double only supports the left button")
	}
	if !cmd.Flags().Changed("interval") {
		interval = appConfig.Mouse.DoubleClickInterval
	}

	if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
		if getTargetOptions(cmd).HasPredicate() {
			return fmt.Errorf("--x/--y cannot be combined with --attr or --c-name")
		}
		if double {
			err = backend.Mouse.DoubleClick(x, y, button, interval)
		} else {
			err = backend.Mouse.Click(x, y, button)
		}
		if err != nil {
			return err
		}
		return output.Print(model.ActionResult{OK: true, Action: "click", X: x, Y: y})
	}

	off := getOffset(cmd)
	return runElementAction(cmd, "click", func(el *element.Element) error {
		switch {
		case double:
			return el.DoubleClick(off, interval)
		case button == platform.MouseRight:
			return el.RightClick(off)
		default:
			return el.Click(off)
		}
	})
}
