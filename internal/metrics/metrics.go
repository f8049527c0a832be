// Package metrics exposes assessment activity as Prometheus metrics on a
// private registry.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/abhisek/careerpath/internal/assessment"
)

// Metrics holds the collectors. It implements assessment.EventSink.
type Metrics struct {
	reg *prometheus.Registry

	AttemptsStarted   *prometheus.CounterVec
	AttemptsCompleted *prometheus.CounterVec
	AnswersRecorded   prometheus.Counter
	AttemptScore      prometheus.Histogram
	ProviderFallbacks *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		AttemptsStarted: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerpath_attempts_started_total",
				Help: "Total number of assessment attempts started",
			},
			[]string{"assessment"},
		),
		AttemptsCompleted: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerpath_attempts_completed_total",
				Help: "Total number of assessment attempts completed",
			},
			[]string{"trigger", "fallback"},
		),
		AnswersRecorded: f.NewCounter(
			prometheus.CounterOpts{
				Name: "careerpath_answers_recorded_total",
				Help: "Total number of answers recorded, including overwrites",
			},
		),
		AttemptScore: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "careerpath_attempt_score",
				Help:    "Distribution of attempt scores (0-100)",
				Buckets: prometheus.LinearBuckets(10, 10, 10),
			},
		),
		ProviderFallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerpath_provider_fallbacks_total",
				Help: "Times a provider failed and its fallback was substituted",
			},
			[]string{"provider"},
		),
	}
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// RecordProviderFallback counts a fallback substitution for provider
// ("catalog" or "scoring").
func (m *Metrics) RecordProviderFallback(provider string) {
	m.ProviderFallbacks.WithLabelValues(provider).Inc()
}

func (m *Metrics) AttemptStarted(_ context.Context, ev assessment.StartedEvent) error {
	m.AttemptsStarted.WithLabelValues(ev.AssessmentID).Inc()
	return nil
}

func (m *Metrics) AnswerRecorded(context.Context, assessment.AnswerEvent) error {
	m.AnswersRecorded.Inc()
	return nil
}

func (m *Metrics) AttemptCompleted(_ context.Context, r assessment.Result) error {
	m.AttemptsCompleted.WithLabelValues(string(r.Trigger), strconv.FormatBool(r.Fallback)).Inc()
	m.AttemptScore.Observe(float64(r.Score))
	if r.Fallback {
		m.RecordProviderFallback("scoring")
	}
	return nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, log *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
