package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/uisoup/internal/config"
	"github.com/mj1618/uisoup/internal/element"
	"github.com/mj1618/uisoup/internal/mouse"
	"github.com/mj1618/uisoup/internal/observability"
	"github.com/mj1618/uisoup/internal/output"
	"github.com/mj1618/uisoup/internal/platform"
	"github.com/mj1618/uisoup/internal/platform/fixture"
	"github.com/mj1618/uisoup/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "uisoup",
	Short: "Find and drive desktop UI elements",
	Long: `uisoup finds UI elements through the accessibility API by attribute
predicates (e.g. --c-name btnOK or --attr AXRole=AXButton) and drives them
with synthesized mouse events.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Set by the root command before any subcommand runs.
var (
	appConfig *config.Config
	backend   *element.Backend
)

func Execute() {
	defer observability.Sync()
	if err := rootCmd.Execute(); err != nil {
		observability.GetLogger().Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.String()
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().String("fixture", "", "Serve the accessibility tree from a YAML fixture instead of the OS")
	rootCmd.PersistentPreRunE = setup
}

func setup(cmd *cobra.Command, args []string) error {
	format, _ := rootCmd.PersistentFlags().GetString("format")
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	output.OutputFormat = f
	output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	v := config.NewViper()
	if err := v.BindPFlag("logger.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		return err
	}
	path, _ := rootCmd.PersistentFlags().GetString("config")
	cfg, err := config.Load(v, path)
	if err != nil {
		return err
	}
	appConfig = cfg
	observability.InitializeLogger(cfg.Logger)

	provider, err := newProvider()
	if err != nil {
		return err
	}
	m := mouse.New(provider.Events,
		mouse.WithSteps(cfg.Mouse.SmoothSteps),
		mouse.WithStepDelay(cfg.Mouse.StepDelay),
	)
	backend = element.NewBackend(provider, m)
	observability.GetLogger().Debug("backend ready", zap.String("command", cmd.Name()))
	return nil
}

// newProvider returns the fixture provider when --fixture is set, otherwise
// the OS provider.
func newProvider() (*platform.Provider, error) {
	path, _ := rootCmd.PersistentFlags().GetString("fixture")
	if path != "" {
		tree, err := fixture.LoadFile(path)
		if err != nil {
			return nil, err
		}
		p, _, _ := fixture.NewPlatform(tree)
		return p, nil
	}
	if platform.RequestPermissionsFunc != nil {
		platform.RequestPermissionsFunc()
	}
	return platform.NewProvider()
}
