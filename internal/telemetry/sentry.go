package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const flushTimeout = 2 * time.Second

// SentryConfig holds configuration for Sentry error tracking
type SentryConfig struct {
	// DSN is the Sentry Data Source Name. An empty DSN keeps the client
	// running but nothing is sent.
	DSN string

	// Enabled controls whether errors are reported at all
	Enabled bool

	// Environment identifies the deployment environment (dev, prod)
	Environment string

	// Release is the application version/release identifier
	Release string

	// SampleRate controls the percentage of errors to capture (0.0 to 1.0)
	// Default: 1.0 (capture all errors)
	SampleRate float64

	// Debug enables Sentry SDK debug logging
	Debug bool

	// BeforeSend, when set, may modify or drop (by returning nil) each event.
	BeforeSend func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event
}

// Reporter sends errors to Sentry. A nil or disabled Reporter is a no-op,
// so callers never need to check whether error tracking is configured.
type Reporter struct {
	hub *sentry.Hub
}

// InitSentry creates a Reporter from cfg.
// Returns a cleanup function that flushes buffered events; call it on shutdown.
func InitSentry(cfg SentryConfig, logger *slog.Logger) (*Reporter, func(), error) {
	if !cfg.Enabled {
		logger.Info("Sentry disabled (SENTRY_DSN not configured)")
		return &Reporter{}, func() {}, nil
	}

	sampleRate := cfg.SampleRate
	if sampleRate == 0 {
		sampleRate = 1.0
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		SampleRate:  sampleRate,
		Debug:       cfg.Debug,
		BeforeSend:  cfg.BeforeSend,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize Sentry: %w", err)
	}

	logger.Info("Sentry initialized",
		"environment", cfg.Environment,
		"release", cfg.Release,
		"sample_rate", sampleRate,
	)

	r := &Reporter{hub: sentry.NewHub(client, sentry.NewScope())}
	cleanup := func() {
		r.hub.Flush(flushTimeout)
	}
	return r, cleanup, nil
}

// IsEnabled returns whether errors are being reported
func (r *Reporter) IsEnabled() bool {
	return r != nil && r.hub != nil
}

// CaptureError reports err with the given tags. The hub attached to ctx by
// Middleware is used when present, so the event carries the request.
// Safe to call even when Sentry is disabled.
func (r *Reporter) CaptureError(ctx context.Context, err error, tags map[string]string) {
	if !r.IsEnabled() || err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = r.hub
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		hub.CaptureException(err)
	})
}

// Middleware gives each request its own hub carrying the request, so errors
// captured while serving it are reported with method and URL.
// Panics are left to the recovery middleware.
func (r *Reporter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !r.IsEnabled() {
			next.ServeHTTP(w, req)
			return
		}

		hub := r.hub.Clone()
		hub.Scope().SetRequest(req)
		ctx := sentry.SetHubOnContext(req.Context(), hub)

		next.ServeHTTP(w, req.WithContext(ctx))
	})
}
