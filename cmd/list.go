package cmd

import (
	"strings"

	"github.com/mj1618/uisoup/internal/model"
	"github.com/mj1618/uisoup/internal/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List running applications",
	Long:  "List running applications that expose accessible windows, with their PID, window count and whether they are active.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("app", "", "Only list applications whose name contains this text")
}

func runList(cmd *cobra.Command, args []string) error {
	appName, _ := cmd.Flags().GetString("app")

	apps, err := backend.Apps.Applications()
	if err != nil {
		return err
	}
	if appName != "" {
		apps = filterApps(apps, appName)
	}
	if apps == nil {
		apps = []model.Application{}
	}
	return output.Print(apps)
}

// filterApps keeps applications whose name contains text, case-insensitively.
func filterApps(apps []model.Application, text string) []model.Application {
	text = strings.ToLower(text)
	var out []model.Application
	for _, a := range apps {
		if strings.Contains(strings.ToLower(a.Name), text) {
			out = append(out, a)
		}
	}
	return out
}
