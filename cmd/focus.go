package cmd

import (
	"github.com/mj1618/uisoup/internal/element"
	"github.com/spf13/cobra"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Give keyboard focus to an element",
	Long:  "Set AXFocused on the matched element. The request is not confirmed; some applications ignore it.",
	RunE:  runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	addTargetFlags(focusCmd)
}

func runFocus(cmd *cobra.Command, args []string) error {
	return runElementAction(cmd, "focus", func(el *element.Element) error {
		return el.SetFocus()
	})
}
