package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/careerpath/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.log.Info("starting careerpath",
		zap.Int("assessments", len(rt.catalog.list)),
		zap.Bool("llm", rt.provider != nil),
	)

	return app.Run(app.Options{
		Assessments: rt.catalog.list,
		NewEngine:   rt.newEngine,
		EventRepo:   rt.store.EventRepo(),
		Logger:      rt.log,
	})
}
