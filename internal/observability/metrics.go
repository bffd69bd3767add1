// Package observability exposes Prometheus instruments and the
// metrics/health HTTP listener.
package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m3rciful/taskbot/internal/logger"
	"log/slog"
)

// Metrics groups all Prometheus instruments used by the bot.
type Metrics struct {
	UpdatesTotal   *prometheus.CounterVec
	HandlerErrors  *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
}

// NewMetrics registers the bot instruments under the given namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		UpdatesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Processed Telegram updates by kind.",
		}, []string{"kind"}),
		HandlerErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_errors_total",
			Help:      "Handler failures by handler name.",
		}, []string{"handler"}),
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_dialog_sessions",
			Help:      "Users currently mid-conversation.",
		}),
	}
}

// Server serves /metrics and /healthz on its own listener.
type Server struct {
	srv *http.Server
}

// NewServer builds the metrics HTTP server. An empty listen address
// returns nil and disables the listener.
func NewServer(listen string) *Server {
	if listen == "" {
		return nil
	}
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &Server{srv: &http.Server{
		Addr:              listen,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// Start runs the listener in the background.
func (s *Server) Start() {
	if s == nil {
		return
	}
	go func() {
		logger.Info(context.Background(), "metrics", "listen",
			slog.String("addr", s.srv.Addr),
		)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "metrics", "listen.fail",
				slog.String("err", err.Error()),
			)
		}
	}()
}

// Shutdown stops the listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
