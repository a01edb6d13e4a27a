package cmd

import (
	"github.com/mj1618/uisoup/internal/model"
	"github.com/mj1618/uisoup/internal/mouse"
	"github.com/mj1618/uisoup/internal/output"
	"github.com/spf13/cobra"
)

var mouseCmd = &cobra.Command{
	Use:   "mouse",
	Short: "Synthesize raw mouse events",
	Long:  "Move, press, release and click the pointer at screen coordinates, or print its position.",
}

var mouseMoveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move the pointer",
	RunE:  runMouseMove,
}

var mousePressCmd = &cobra.Command{
	Use:   "press",
	Short: "Press a button without releasing it",
	RunE:  runMousePress,
}

var mouseReleaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Release a button at the current pointer position",
	RunE:  runMouseRelease,
}

var mouseClickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click at a screen point",
	RunE:  runMouseClick,
}

var mousePositionCmd = &cobra.Command{
	Use:   "position",
	Short: "Print the pointer position",
	RunE:  runMousePosition,
}

func addPointFlags(cmd *cobra.Command) {
	cmd.Flags().Int("x", -1, "Screen X coordinate (required)")
	cmd.Flags().Int("y", -1, "Screen Y coordinate (required)")
}

func getPoint(cmd *cobra.Command) (int, int) {
	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	return x, y
}

func init() {
	rootCmd.AddCommand(mouseCmd)
	mouseCmd.AddCommand(mouseMoveCmd, mousePressCmd, mouseReleaseCmd, mouseClickCmd, mousePositionCmd)

	addPointFlags(mouseMoveCmd)
	mouseMoveCmd.Flags().Bool("smooth", false, "Glide from the current position")

	for _, c := range []*cobra.Command{mousePressCmd, mouseReleaseCmd, mouseClickCmd} {
		c.Flags().String("button", "left", "Mouse button: left, right")
	}
	addPointFlags(mousePressCmd)
	addPointFlags(mouseClickCmd)
}

func runMouseMove(cmd *cobra.Command, args []string) error {
	x, y := getPoint(cmd)
	smooth, _ := cmd.Flags().GetBool("smooth")
	if err := backend.Mouse.Move(x, y, smooth); err != nil {
		return err
	}
	return output.Print(model.ActionResult{OK: true, Action: "move", X: x, Y: y})
}

func runMousePress(cmd *cobra.Command, args []string) error {
	x, y := getPoint(cmd)
	buttonStr, _ := cmd.Flags().GetString("button")
	button, err := mouse.ParseButton(buttonStr)
	if err != nil {
		return err
	}
	if err := backend.Mouse.PressButton(x, y, button); err != nil {
		return err
	}
	return output.Print(model.ActionResult{OK: true, Action: "press", X: x, Y: y})
}

func runMouseRelease(cmd *cobra.Command, args []string) error {
	buttonStr, _ := cmd.Flags().GetString("button")
	button, err := mouse.ParseButton(buttonStr)
	if err != nil {
		return err
	}
	if err := backend.Mouse.ReleaseButton(button); err != nil {
		return err
	}
	x, y, err := backend.Mouse.Position()
	if err != nil {
		return err
	}
	return output.Print(model.ActionResult{OK: true, Action: "release", X: x, Y: y})
}

func runMouseClick(cmd *cobra.Command, args []string) error {
	x, y := getPoint(cmd)
	buttonStr, _ := cmd.Flags().GetString("button")
	button, err := mouse.ParseButton(buttonStr)
	if err != nil {
		return err
	}
	if err := backend.Mouse.Click(x, y, button); err != nil {
		return err
	}
	return output.Print(model.ActionResult{OK: true, Action: "click", X: x, Y: y})
}

func runMousePosition(cmd *cobra.Command, args []string) error {
	x, y, err := backend.Mouse.Position()
	if err != nil {
		return err
	}
	return output.Print(model.PositionResult{X: x, Y: y})
}
