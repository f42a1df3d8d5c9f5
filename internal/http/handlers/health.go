package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger is implemented by *db.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health reports whether the database is reachable.
func Health(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := p.PingContext(ctx); err != nil {
			slog.Warn("Health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unavailable"))
			return
		}
		_, _ = w.Write([]byte("ok"))
	}
}
