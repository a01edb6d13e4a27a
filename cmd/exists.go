package cmd

import (
	"errors"

	"github.com/mj1618/uisoup/internal/model"
	"github.com/mj1618/uisoup/internal/output"
	"github.com/mj1618/uisoup/internal/target"
	"github.com/spf13/cobra"
)

var existsCmd = &cobra.Command{
	Use:   "exists",
	Short: "Report whether a matching element exists",
	Long:  "Report whether any element matches the predicates. Prints exists: true|false; with --check a missing element also exits 1.",
	RunE:  runExists,
}

// errNoMatch is returned by exists --check when nothing matches.
var errNoMatch = errors.New("no element matches the predicates")

func init() {
	rootCmd.AddCommand(existsCmd)
	addTargetFlags(existsCmd)
	existsCmd.Flags().Bool("check", false, "Fail when no element matches")
}

func runExists(cmd *cobra.Command, args []string) error {
	check, _ := cmd.Flags().GetBool("check")
	o := getTargetOptions(cmd)

	pred, err := o.Predicate()
	if err != nil {
		return err
	}
	root, err := target.Root(backend, o)
	if err != nil {
		return err
	}
	exists := root.Exists(pred)
	if err := output.Print(model.ExistsResult{Exists: exists}); err != nil {
		return err
	}
	if check && !exists {
		return errNoMatch
	}
	return nil
}
