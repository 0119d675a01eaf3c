package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const RequestIDKey contextKey = "request_id"

type StatusRecoder struct {
	http.ResponseWriter
	status int
}

func (w *StatusRecoder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *StatusRecoder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func RequestIdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getRequestID(r *http.Request) string {
	if v := r.Context().Value(RequestIDKey); v != nil {
		return v.(string)
	}
	return "unknown"
}

// LoggerMiddleware 記錄request請求
func LoggerMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recoder := &StatusRecoder{
				ResponseWriter: w,
			}
			start := time.Now()
			next.ServeHTTP(recoder, r)

			logger.Info().
				Str("request_id", getRequestID(r)).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", recoder.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("request completed")
		})
	}
}
