// Package cli implements the boardcut command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/BoardCut/internal/config"
	"github.com/piwi3910/BoardCut/internal/logging"
	"github.com/piwi3910/BoardCut/internal/project"
	"github.com/piwi3910/BoardCut/internal/telemetry"
)

// Version is reported by --version and on every span.
var Version = "0.3.0"

// app carries state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	dataDir string
	verbose bool

	v        *viper.Viper
	cfg      config.Config
	logger   *slog.Logger
	renderer *lipgloss.Renderer
	shutdown func(context.Context) error
}

func (a *app) configPath() string    { return filepath.Join(a.dataDir, "config.json") }
func (a *app) templatesPath() string { return filepath.Join(a.dataDir, "templates.json") }

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "boardcut",
		Short: "Wood cutting plans for standard boards",
		Long: `BoardCut lays rectangular wood pieces out on standard boards, counts
the boards to buy and produces the KDT cut list for the workshop.

Examples:
  boardcut layout pieces.csv --xlsx kdt.xlsx --pdf plan.pdf
  boardcut layout --template wardrobe --policy grain-locked
  boardcut estimate pieces.xlsx --price 45 --waste 10
  boardcut serve --addr :8080`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.shutdown != nil {
				return a.shutdown(cmd.Context())
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ~/.boardcut.yaml)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", project.DefaultConfigDir(), "directory for preferences and templates")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newLayoutCmd(a),
		newEstimateCmd(a),
		newCompareCmd(a),
		newCheckCmd(a),
		newServeCmd(a),
		newTemplateCmd(a),
		newCustomerCmd(a),
		newBackupCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	a.v = viper.New()
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigFile(config.DefaultPath())
		a.v.SetConfigType("yaml")
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger
	a.renderer = lipgloss.NewRenderer(cmd.OutOrStdout())

	shutdown, err := telemetry.Init(cmd.Context(), Version, cfg.Telemetry.Endpoint)
	if err != nil {
		return err
	}
	a.shutdown = shutdown
	return nil
}

// Execute runs the root command.
func Execute() {
	ctx := context.Background()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
