package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/carpick/carpick/internal/config"
	"github.com/carpick/carpick/internal/store"
)

// logger is built in PersistentPreRunE for non-TUI commands. The TUI
// commands leave it nil so stderr output never tears the alt screen.
var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "carpick",
	Short: "Name-that-car quiz for your terminal",
	Long: `Carpick turns a folder of car photos into a terminal guessing game:
one photo per round, ten choices, lifetime stats, and optional
LLM-generated car facts after every answer.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "carpick", "play":
			return nil
		}
		zcfg := zap.NewProductionConfig()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CARPICK_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: XDG config dir)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(lexiconCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CARPICK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadConfig resolves the effective settings from the --config flag or
// the default location.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

// appLogger returns the command logger, or a nop logger for the TUI.
func appLogger() *zap.Logger {
	if logger != nil {
		return logger
	}
	return zap.NewNop()
}
