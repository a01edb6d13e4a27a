package cmd

import (
	"fmt"

	"github.com/mj1618/uisoup/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the uisoup version",
	// Needs no backend.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "uisoup", version.String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
