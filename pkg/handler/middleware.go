package handler

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// RequestIDHeaders are checked in order for an upstream request ID.
var RequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

// RequestID stores an upstream or generated request ID in the context and
// echoes it in the X-Request-ID response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		for _, h := range RequestIDHeaders {
			if id = r.Header.Get(h); id != "" {
				break
			}
		}
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// GetRequestID returns the request ID stored by RequestID.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds request_id to log records; see logger.WithExtractors.
func RequestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id := GetRequestID(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}

const recoverStackSize = 4096

// Recover turns a panic into a logged 500 response.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					stack := make([]byte, recoverStackSize)
					stack = stack[:runtime.Stack(stack, false)]
					log.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", v),
						slog.String("stack", string(stack)),
					)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
