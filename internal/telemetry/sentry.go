// Package telemetry reports errors and traces to Sentry. Every function is a
// no-op when Init was not called with a DSN.
package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
)

const serviceName = "resumeforge"

// Config holds the Sentry settings.
type Config struct {
	DSN              string
	Environment      string
	TracesSampleRate float64
}

// Init configures the global Sentry client and returns a function that
// flushes buffered events. An empty DSN disables reporting.
func Init(cfg Config, log *slog.Logger) (func(), error) {
	if cfg.DSN == "" {
		return func() {}, nil
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.TracesSampleRate == 0 {
		cfg.TracesSampleRate = 1.0
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		EnableTracing:    true,
		TracesSampleRate: cfg.TracesSampleRate,
		ServerName:       serviceName,
		TracesSampler: sentry.TracesSampler(func(ctx sentry.SamplingContext) float64 {
			if ctx.Span.Name == "GET /health" {
				return 0
			}
			return cfg.TracesSampleRate
		}),
	})
	if err != nil {
		return func() {}, err
	}

	log.Info("sentry initialized", "environment", cfg.Environment, "sample_rate", cfg.TracesSampleRate)
	return func() { sentry.Flush(5 * time.Second) }, nil
}

// Span wraps a Sentry span so callers need not import sentry-go.
type Span struct {
	inner *sentry.Span
}

// StartSpan starts a child of the span in ctx, or a new transaction.
func StartSpan(ctx context.Context, op string, tags map[string]string) (context.Context, *Span) {
	var span *sentry.Span
	if parent := sentry.SpanFromContext(ctx); parent != nil {
		span = parent.StartChild(op)
	} else {
		span = sentry.StartSpan(ctx, op, sentry.WithTransactionName(op))
	}
	for k, v := range tags {
		span.SetTag(k, v)
	}
	return span.Context(), &Span{inner: span}
}

// End finishes the span. A non-nil err marks it failed.
func (s *Span) End(err error) {
	if s == nil || s.inner == nil {
		return
	}
	if err != nil {
		s.inner.Status = sentry.SpanStatusInternalError
	} else {
		s.inner.Status = sentry.SpanStatusOK
	}
	s.inner.Finish()
}

// CaptureError reports err using the hub in ctx, or the global hub.
func CaptureError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}
