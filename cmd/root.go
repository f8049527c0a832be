package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/config"
	"github.com/abhisek/careerpath/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "careerpath",
	Short: "Timed skill assessments in your terminal",
	Long:  "careerpath: pick a skill assessment, answer against the clock, and get a scored result with recommendations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ./careerpath.yaml or the user config dir)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CAREERPATH_DB env var)")
	rootCmd.PersistentFlags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration named by --config and applies the
// flags that override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		cfg.Metrics.Addr = addr
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then store.path from the config, then CAREERPATH_DB env var, then the
// default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store cfg points at. A nil cfg is loaded from
// the command's flags.
func openStore(cmd *cobra.Command, cfg *config.Config) (*store.Store, error) {
	if cfg == nil {
		var err error
		if cfg, err = loadConfig(cmd); err != nil {
			return nil, err
		}
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
