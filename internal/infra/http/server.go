package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsSource отдаёт размер активного снапшота тарифной базы для /health.
type StatsSource interface {
	Stats() (rows, vessels int)
}

type Server struct {
	srv *http.Server
}

func New(addr string, exposeMetrics bool, stats StatsSource) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		rows, vessels := stats.Stats()
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK rows=%d vessels=%d", rows, vessels)
	})

	if exposeMetrics {
		mux.Handle("/metrics", promhttp.Handler())
	}

	return &Server{srv: &http.Server{Addr: addr, Handler: mux}}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
