package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryConfig holds configuration for Sentry error tracking.
type SentryConfig struct {
	// DSN is the Sentry Data Source Name, required when Enabled is true.
	DSN string

	// Enabled turns reporting on. Leave false in development or when no
	// DSN is configured.
	Enabled bool

	// Environment identifies the deployment environment (dev, staging, prod).
	Environment string

	// Release is the application version or release identifier.
	Release string

	// SampleRate controls the fraction of errors captured (0.0 to 1.0).
	// Zero means capture everything.
	SampleRate float64

	// TracesSampleRate controls the fraction of transactions traced.
	// Zero disables performance monitoring.
	TracesSampleRate float64

	// Debug enables Sentry SDK debug logging.
	Debug bool
}

// enabled is set once by InitSentry and read by every capture helper.
var enabled bool

// InitSentry initializes the Sentry SDK. The returned cleanup function
// flushes buffered events and should run on shutdown.
func InitSentry(cfg SentryConfig, logger *slog.Logger) (func(), error) {
	enabled = cfg.Enabled

	if !cfg.Enabled {
		logger.Info("Sentry disabled (SENTRY_ENABLED=false or DSN not configured)")
		return func() {}, nil
	}

	if cfg.DSN == "" {
		logger.Warn("Sentry DSN not configured, disabling error tracking")
		enabled = false
		return func() {}, nil
	}

	sampleRate := cfg.SampleRate
	if sampleRate == 0 {
		sampleRate = 1.0
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		SampleRate:       sampleRate,
		TracesSampleRate: cfg.TracesSampleRate,
		Debug:            cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Sentry: %w", err)
	}

	logger.Info("Sentry initialized",
		"environment", cfg.Environment,
		"release", cfg.Release,
		"sample_rate", sampleRate,
		"traces_sample_rate", cfg.TracesSampleRate,
	)

	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}

// IsEnabled reports whether Sentry reporting is active.
func IsEnabled() bool {
	return enabled
}

// CaptureError reports an error on the request's Sentry hub, so the user
// and request scope set by SentryMiddleware ride along. Extras become
// extra fields on the event. Safe to call when Sentry is disabled.
func CaptureError(ctx context.Context, err error, extras map[string]any) {
	if !IsEnabled() || err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		for key, value := range extras {
			scope.SetExtra(key, value)
		}
		hub.CaptureException(err)
	})
}

// UserInfo identifies the authenticated user on captured events.
type UserInfo struct {
	ID    string
	Email string
}

// UserContextExtractor pulls the authenticated user out of a request
// context, or returns nil for anonymous requests.
type UserContextExtractor func(ctx context.Context) *UserInfo

// SentryMiddleware binds a request-scoped hub carrying request metadata
// and, when the extractor finds one, the authenticated user. Panics are
// reported to Sentry and rethrown for the recovery middleware to answer.
// Apply after authentication middleware.
func SentryMiddleware(userExtractor UserContextExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsEnabled() {
				next.ServeHTTP(w, r)
				return
			}

			hub := sentry.GetHubFromContext(r.Context())
			if hub == nil {
				hub = sentry.CurrentHub().Clone()
			}

			hub.Scope().SetRequest(r)
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetContext("request", map[string]any{
					"url":    r.URL.String(),
					"method": r.Method,
					"path":   r.URL.Path,
				})
			})

			if userExtractor != nil {
				if user := userExtractor(r.Context()); user != nil {
					hub.ConfigureScope(func(scope *sentry.Scope) {
						scope.SetUser(sentry.User{
							ID:    user.ID,
							Email: user.Email,
						})
					})
				}
			}

			ctx := sentry.SetHubOnContext(r.Context(), hub)

			defer func() {
				if rec := recover(); rec != nil {
					hub.RecoverWithContext(ctx, rec)
					sentry.Flush(2 * time.Second)
					panic(rec)
				}
			}()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
