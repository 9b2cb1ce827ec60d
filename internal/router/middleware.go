package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/addressdata/internal/address"
	"github.com/dukerupert/addressdata/internal/telemetry"
)

// Logger logs HTTP requests with method, path, status and duration.
// The record is logged with the request context, so a context-aware handler
// can add the request ID.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			level := slog.LevelInfo
			if wrapped.statusCode >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(r.Context(), level, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration", time.Since(start),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Recovery recovers from panics, logs and reports them, and answers 500 with
// a JSON body. Accessor misuse (*address.PreconditionError) is logged and
// reported with its op and field. reporter may be nil.
//
// Place Recovery inside Logger and the metrics middleware so the 500 it writes
// is seen by both.
func Recovery(logger *slog.Logger, reporter *telemetry.Reporter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				ctx := r.Context()
				var pe *address.PreconditionError
				if err, ok := rec.(error); ok && errors.As(err, &pe) {
					logger.ErrorContext(ctx, "address accessor misuse",
						"path", r.URL.Path,
						"op", pe.Op,
						"field", pe.Field.String(),
						"error", pe.Err,
					)
					reporter.CaptureError(ctx, pe, map[string]string{
						"op":    pe.Op,
						"field": pe.Field.String(),
					})
				} else {
					logger.ErrorContext(ctx, "panic recovered", "path", r.URL.Path, "error", rec)
					if !ok {
						err = fmt.Errorf("panic: %v", rec)
					}
					reporter.CaptureError(ctx, err, map[string]string{"path": r.URL.Path})
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{
					"error":   "internal",
					"message": "An internal error occurred. Please try again later.",
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
