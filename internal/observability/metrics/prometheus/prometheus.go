package prometheus

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var requestMetrics = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "request_duration_seconds",
		Help:    "Request duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"status", "op"},
)

var cleanupDeleted = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "session_cleanup_deleted_total",
		Help: "Stale session rows removed by the cleanup worker",
	},
)

var cleanupFailures = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "session_cleanup_failures_total",
		Help: "Failed cleanup worker runs",
	},
)

func init() {
	prometheus.MustRegister(requestMetrics, cleanupDeleted, cleanupFailures)
}

func ObserveRequest(d time.Duration, status int, op string) {
	requestMetrics.With(
		prometheus.Labels{
			"status": fmt.Sprintf("%d", status),
			"op":     op,
		},
	).Observe(d.Seconds())
}

func ObserveCleanup(deleted int64, err error) {
	if err != nil {
		cleanupFailures.Inc()
		return
	}
	cleanupDeleted.Add(float64(deleted))
}

type Server struct {
	srv *http.Server
}

func New(port int) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%v", port),
			Handler: mux,
		},
	}
}

func (s *Server) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		if err := s.srv.Shutdown(context.Background()); err != nil {
			zap.L().Debug("Error shutting down metrics server", zap.Error(err))
		}
	}()

	zap.L().Info("Starting metrics server", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zap.L().Error("Metrics server error", zap.Error(err))
	}
}
