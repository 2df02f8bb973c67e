package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"parley/internal/app"
	"parley/internal/config"
	"parley/internal/log"
	"parley/internal/version"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().StringP("data-dir", "D", "", "Custom parley data directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")

	rootCmd.AddCommand(migrateCmd, statsCmd, logsCmd, schemaCmd)
}

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Storage engine for the Parley chat assistant",
	Long: `Parley stores chat sessions, messages, personas, providers and plugin
data in a local SQLite database. This command manages that database.`,
	Example: heredoc.Doc(`
		# Apply pending migrations
		parley migrate

		# Show row counts per table
		parley stats

		# Follow the log file
		parley logs -f

		# Use a custom data directory
		parley -D /path/to/.parley stats
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// setupApp loads config, wires logging and opens the database. The caller
// owns the returned app and must call Shutdown.
func setupApp(cmd *cobra.Command) (*app.App, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	cwd, err := resolveCwd(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cwd, dataDir, debug)
	if err != nil {
		return nil, err
	}

	// Setup and SetupConsole share one init; whichever runs first wins.
	if cfg.Options.Debug {
		log.SetupConsole(true)
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile()), 0o700); err != nil {
			return nil, err
		}
		log.Setup(cfg.LogFile(), false)
	}

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}

	if needs, err := config.NeedsInitialization(cfg); err == nil && needs {
		if err := config.MarkInitialized(cfg); err != nil {
			a.Shutdown()
			return nil, err
		}
	}

	return a, nil
}

func resolveCwd(cmd *cobra.Command) (string, error) {
	if cwd, _ := cmd.Flags().GetString("cwd"); cwd != "" {
		return cwd, nil
	}
	return os.Getwd()
}

// loadConfig is setupApp without opening the database, for commands that
// only need paths.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	cwd, err := resolveCwd(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd, dataDir, debug)
	if err != nil {
		return nil, err
	}
	log.SetupConsole(cfg.Options.Debug)
	return cfg, nil
}
