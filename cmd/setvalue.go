package cmd

import (
	"fmt"

	"github.com/mj1618/uisoup/internal/element"
	"github.com/spf13/cobra"
)

var setValueCmd = &cobra.Command{
	Use:   "set-value",
	Short: "Set the value of an element directly",
	Long: `Set the AXValue attribute of the matched element through the accessibility
API, without synthesizing keystrokes. The write is confirmed before the
command returns.

Example:
  uisoup set-value --app TextEdit --attr AXRole=AXTextArea --value "hello"`,
	RunE: runSetValue,
}

func init() {
	rootCmd.AddCommand(setValueCmd)
	addTargetFlags(setValueCmd)
	setValueCmd.Flags().String("value", "", "Value to set (required)")
}

func runSetValue(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("value") {
		return fmt.Errorf("--value is required")
	}
	value, _ := cmd.Flags().GetString("value")
	return runElementAction(cmd, "set-value", func(el *element.Element) error {
		return el.SetValue(value)
	})
}
