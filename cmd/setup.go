package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/careerpath/internal/assessment"
	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/config"
	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/logging"
	"github.com/abhisek/careerpath/internal/metrics"
	"github.com/abhisek/careerpath/internal/scoring"
	"github.com/abhisek/careerpath/internal/store"
)

// runtime holds everything an attempt needs: config, logger, store, LLM,
// metrics and the loaded catalog.
type runtime struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *store.Store
	provider llm.Provider // nil without an LLM
	metrics  *metrics.Metrics
	catalog  loadedCatalog
	scorer   scoring.Scorer
	sink     assessment.EventSink
	cancel   context.CancelFunc
}

func newRuntime(cmd *cobra.Command) (*runtime, error) {
	ctx, cancel := context.WithCancel(cmd.Context())
	rt := &runtime{cancel: cancel}
	ok := false
	defer func() {
		if !ok {
			rt.Close()
		}
	}()

	var err error
	if rt.cfg, err = loadConfig(cmd); err != nil {
		return nil, err
	}
	if rt.log, err = newLogger(rt.cfg); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if rt.store, err = openStore(cmd, rt.cfg); err != nil {
		return nil, err
	}
	eventRepo := rt.store.EventRepo()

	rt.provider, err = newLLMProvider(ctx, rt.cfg, eventRepo, rt.log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Answers will be graded against the local answer key.")
	}

	rt.metrics = metrics.New()
	if addr := rt.cfg.Metrics.Addr; addr != "" {
		go func() {
			if err := rt.metrics.Serve(ctx, addr, rt.log); err != nil {
				rt.log.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	if rt.catalog, err = loadCatalog(ctx, rt.cfg, rt.provider, rt.log); err != nil {
		return nil, err
	}
	if rt.catalog.fallback {
		rt.metrics.RecordProviderFallback("catalog")
	}

	rt.scorer = scoring.New(rt.provider, rt.cfg.ScoringSettings())
	rt.sink = assessment.MultiSink{assessment.NewEventLog(eventRepo), rt.metrics}
	ok = true
	return rt, nil
}

// newEngine returns an engine for one attempt.
func (rt *runtime) newEngine() *assessment.Engine {
	return assessment.New(rt.scorer,
		assessment.WithSink(rt.sink),
		assessment.WithLogger(rt.log.Named("engine")),
	)
}

// Close stops the metrics server and releases the store and logger.
func (rt *runtime) Close() {
	rt.cancel()
	if rt.store != nil {
		rt.store.Close()
	}
	if rt.log != nil {
		_ = rt.log.Sync()
	}
}

// newLogger builds the file logger. The TUI owns the terminal, so logs
// default to <data dir>/careerpath.log.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	path := cfg.Log.File
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "careerpath.log")
	}
	return logging.New(cfg.Log.Level, cfg.Log.Format, path)
}

// newLLMProvider returns the configured provider, or nil when none is
// configured. recorder may be nil.
func newLLMProvider(ctx context.Context, cfg *config.Config, recorder llm.RequestRecorder, log *zap.Logger) (llm.Provider, error) {
	provider, err := llm.NewProvider(ctx, cfg.LLMSettings(), recorder, log)
	if errors.Is(err, llm.ErrDisabled) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return provider, nil
}

type loadedCatalog struct {
	list     []catalog.Assessment
	fallback bool
}

// loadCatalog fetches the configured catalog once. Any provider failure
// yields the builtin catalog with fallback set.
func loadCatalog(ctx context.Context, cfg *config.Config, provider llm.Provider, log *zap.Logger) (loadedCatalog, error) {
	src, err := catalogProvider(cfg, provider, log)
	if err != nil {
		return loadedCatalog{}, err
	}
	list, fellBack := catalog.Load(ctx, src, log.Named("catalog"))
	if fellBack {
		log.Warn("catalog unavailable, using builtin assessments", zap.String("source", cfg.Catalog.Source))
	}
	return loadedCatalog{list: list, fallback: fellBack}, nil
}

// catalogProvider builds the catalog source selected by cfg.
func catalogProvider(cfg *config.Config, provider llm.Provider, log *zap.Logger) (catalog.Provider, error) {
	switch cfg.Catalog.Source {
	case config.SourceBuiltin, "":
		return catalog.BuiltinProvider, nil
	case config.SourceDir:
		return catalog.NewDirProvider(cfg.Catalog.Dir, log), nil
	case config.SourceRemote:
		return catalog.NewRemoteProvider(cfg.Catalog.URL, cfg.Catalog.Timeout, nil), nil
	case config.SourceLLM:
		if provider == nil {
			// Load treats this like any other provider failure.
			return catalog.ProviderFunc(func(context.Context) ([]catalog.Assessment, error) {
				return nil, errors.New("catalog generation needs an LLM provider")
			}), nil
		}
		return catalog.NewGenerator(provider, cfg.GeneratorSettings(), log), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}
