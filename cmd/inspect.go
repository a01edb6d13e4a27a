package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mj1618/uisoup/internal/inspect"
	"github.com/mj1618/uisoup/internal/model"
	"github.com/mj1618/uisoup/internal/output"
	"github.com/mj1618/uisoup/internal/target"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dump the element tree",
	Long: `Dump the element subtree under the target application, window or matched
element, with role tags, combined names, values and bounds.

Use the printed c values with --c-name in the other commands. --map also
renders a PNG of the element rectangles labelled with their combined names.

Examples:
  uisoup inspect --app Calculator --depth 3
  uisoup inspect --app Calculator --window Calc --roles btn --flat
  uisoup inspect --app Calculator --map layout.png`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	addTargetFlags(inspectCmd)
	inspectCmd.Flags().Int("depth", 0, "Max depth below the root (0 = unlimited)")
	inspectCmd.Flags().String("roles", "", "Comma-separated role tags to include (e.g. \"btn,txt\")")
	inspectCmd.Flags().String("text", "", "Only include elements whose name or value contains this text")
	inspectCmd.Flags().String("bbox", "", "Only include elements within bounding box (x,y,w,h)")
	inspectCmd.Flags().Bool("prune", false, "Drop anonymous groups, promoting their children")
	inspectCmd.Flags().Bool("flat", false, "Print a flat list with path breadcrumbs instead of a tree")
	inspectCmd.Flags().String("map", "", "Also write a PNG layout map to this path")
}

func parseBBox(s string) ([4]int, error) {
	var bbox [4]int
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return bbox, fmt.Errorf("invalid --bbox %q (use x,y,w,h)", s)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return bbox, fmt.Errorf("invalid --bbox %q: %w", s, err)
		}
		bbox[i] = n
	}
	return bbox, nil
}

func splitRoles(s string) []string {
	var roles []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

func runInspect(cmd *cobra.Command, args []string) error {
	depth, _ := cmd.Flags().GetInt("depth")
	roles, _ := cmd.Flags().GetString("roles")
	text, _ := cmd.Flags().GetString("text")
	bboxStr, _ := cmd.Flags().GetString("bbox")
	prune, _ := cmd.Flags().GetBool("prune")
	flat, _ := cmd.Flags().GetBool("flat")
	mapPath, _ := cmd.Flags().GetString("map")
	o := getTargetOptions(cmd)

	if depth < 0 {
		return fmt.Errorf("--depth must not be negative")
	}
	el, err := target.Element(backend, o)
	if err != nil {
		return err
	}
	tree := []model.ElementInfo{inspect.Tree(el, depth)}

	if bboxStr != "" {
		bbox, err := parseBBox(bboxStr)
		if err != nil {
			return err
		}
		tree = model.FilterByBounds(tree, bbox)
	}
	tree = model.FilterByRoleNames(tree, splitRoles(roles))
	tree = model.FilterByText(tree, text)
	if prune {
		tree = model.PruneEmptyGroups(tree)
	}
	if tree == nil {
		tree = []model.ElementInfo{}
	}

	if mapPath != "" {
		if err := writeLayoutMap(mapPath, tree); err != nil {
			return err
		}
	}

	if flat {
		return output.Print(model.FlattenElements(tree))
	}
	return output.Print(output.InspectResult{
		App:      el.Process(),
		PID:      el.PID(),
		Window:   o.Window,
		TS:       time.Now().Unix(),
		Elements: tree,
	})
}

func writeLayoutMap(path string, tree []model.ElementInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := inspect.WriteLayoutMap(f, tree); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
