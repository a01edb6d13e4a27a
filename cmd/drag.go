package cmd

import (
	"fmt"

	"github.com/mj1618/uisoup/internal/element"
	"github.com/mj1618/uisoup/internal/model"
	"github.com/mj1618/uisoup/internal/output"
	"github.com/spf13/cobra"
)

var dragCmd = &cobra.Command{
	Use:   "drag",
	Short: "Drag an element or between screen points",
	Long: `Press the left button on the matched element (centre, or --x-offset/--y-offset),
move to --to-x/--to-y and release. With --from-x/--from-y and no predicate,
drag between two screen points instead. The motion is interpolated unless
--smooth=false.

Examples:
  uisoup drag --app Finder --c-name txtReadme --to-x 800 --to-y 400
  uisoup drag --from-x 100 --from-y 100 --to-x 300 --to-y 300 --smooth=false`,
	RunE: runDrag,
}

func init() {
	rootCmd.AddCommand(dragCmd)
	addTargetFlags(dragCmd)
	addOffsetFlags(dragCmd)
	dragCmd.Flags().Int("from-x", -1, "Start X screen coordinate (coordinate mode)")
	dragCmd.Flags().Int("from-y", -1, "Start Y screen coordinate (coordinate mode)")
	dragCmd.Flags().Int("to-x", -1, "Destination X screen coordinate (required)")
	dragCmd.Flags().Int("to-y", -1, "Destination Y screen coordinate (required)")
	dragCmd.Flags().Bool("smooth", true, "Interpolate the motion")
}

func runDrag(cmd *cobra.Command, args []string) error {
	fromX, _ := cmd.Flags().GetInt("from-x")
	fromY, _ := cmd.Flags().GetInt("from-y")
	toX, _ := cmd.Flags().GetInt("to-x")
	toY, _ := cmd.Flags().GetInt("to-y")
	smooth, _ := cmd.Flags().GetBool("smooth")

	if !cmd.Flags().Changed("to-x") || !cmd.Flags().Changed("to-y") {
		return fmt.Errorf("--to-x and --to-y are required")
	}

	if cmd.Flags().Changed("from-x") || cmd.Flags().Changed("from-y") {
		if getTargetOptions(cmd).HasPredicate() {
			return fmt.Errorf("--from-x/--from-y cannot be combined with --attr or --c-name")
		}
		if err := backend.Mouse.Drag(fromX, fromY, toX, toY, smooth); err != nil {
			return err
		}
		return output.Print(model.ActionResult{OK: true, Action: "drag", X: toX, Y: toY})
	}

	off := getOffset(cmd)
	return runElementAction(cmd, "drag", func(el *element.Element) error {
		return el.DragTo(toX, toY, off, smooth)
	})
}
