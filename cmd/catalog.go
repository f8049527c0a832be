package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/assessment"
	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/config"
	"github.com/abhisek/careerpath/internal/llm"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the assessment catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadCatalogForCommand(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if loaded.fallback {
			fmt.Fprintln(out, "Catalog source unavailable; showing builtin assessments.")
			fmt.Fprintln(out)
		}

		fmt.Fprintf(out, "%-22s  %-28s  %-14s  %9s  %6s  %5s\n",
			"ID", "Name", "Level", "Questions", "Time", "Pass")
		fmt.Fprintln(out, strings.Repeat("─", 94))
		for _, a := range loaded.list {
			fmt.Fprintf(out, "%-22s  %-28s  %-14s  %9d  %6s  %4d%%\n",
				truncate(a.ID, 22),
				truncate(a.Name, 28),
				a.Difficulty.DisplayName(),
				a.QuestionCount(),
				assessment.FormatClock(int(a.TimeLimit/time.Second)),
				a.PassingScore,
			)
		}
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog as YAML, e.g. to seed a catalog directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadCatalogForCommand(cmd)
		if err != nil {
			return err
		}
		data, err := catalog.EncodeYAML(loaded.list)
		if err != nil {
			return fmt.Errorf("encode catalog: %w", err)
		}

		path, _ := cmd.Flags().GetString("output")
		if path == "" || path == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d assessments to %s\n", len(loaded.list), path)
		return nil
	},
}

// loadCatalogForCommand resolves the catalog for a non-interactive command,
// honoring --source.
func loadCatalogForCommand(cmd *cobra.Command) (loadedCatalog, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return loadedCatalog{}, err
	}
	if src, _ := cmd.Flags().GetString("source"); src != "" {
		cfg.Catalog.Source = src
	}
	log, err := newLogger(cfg)
	if err != nil {
		return loadedCatalog{}, fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	// Only generation talks to an LLM; record its requests like the TUI does.
	var provider llm.Provider
	if cfg.Catalog.Source == config.SourceLLM {
		st, err := openStore(cmd, cfg)
		if err != nil {
			return loadedCatalog{}, err
		}
		defer st.Close()
		provider, err = newLLMProvider(cmd.Context(), cfg, st.EventRepo(), log)
		if err != nil {
			return loadedCatalog{}, fmt.Errorf("LLM provider: %w", err)
		}
	}
	return loadCatalog(cmd.Context(), cfg, provider, log)
}

func init() {
	for _, c := range []*cobra.Command{catalogListCmd, catalogExportCmd} {
		c.Flags().String("source", "", "Catalog source: builtin, dir, remote or llm (default from config)")
	}
	catalogExportCmd.Flags().StringP("output", "o", "-", "Output file, - for stdout")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)
}
