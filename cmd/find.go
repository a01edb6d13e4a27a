package cmd

import (
	"github.com/mj1618/uisoup/internal/element"
	"github.com/mj1618/uisoup/internal/inspect"
	"github.com/mj1618/uisoup/internal/model"
	"github.com/mj1618/uisoup/internal/output"
	"github.com/mj1618/uisoup/internal/target"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find elements matching attribute predicates",
	Long: `Search the element tree breadth-first for elements matching every given
predicate. Keys are raw attributes (AXRole, AXTitle, ...) or the derived
name, role_name and c_name.

Examples:
  uisoup find --app Calculator --c-name btn7
  uisoup find --app Calculator --attr AXRole=AXButton --all
  uisoup find --app TextEdit --window Untitled --attr role_name=txt`,
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	addTargetFlags(findCmd)
	findCmd.Flags().Bool("all", false, "Return every match instead of the first")
}

func runFind(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	o := getTargetOptions(cmd)

	pred, err := o.Predicate()
	if err != nil {
		return err
	}
	root, err := target.Root(backend, o)
	if err != nil {
		return err
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
		return err
	}
	return output.Print(model.FindResult{Count: len(found), Elements: inspect.DescribeAll(found)})
}
