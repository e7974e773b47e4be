package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

type requestIDKey struct{}

const requestIDHeader = "X-Request-ID"

// RequestID возвращает идентификатор запроса из контекста
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// LoggingMiddleware присваивает каждому запросу UUID и логирует его
// метод, путь, статус и длительность. Входящий X-Request-ID сохраняется,
// чтобы не терять сквозную трассировку между сервисами.
func LoggingMiddleware(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r.WithContext(ctx))

			log.Info("request_id=%s %s %s -> %d (%s)",
				requestID, r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}
