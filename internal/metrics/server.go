package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dosdefrag/defrag"
)

// Server serves /metrics and /health over HTTP.
type Server struct {
	addr   string
	gather prometheus.Gatherer
	log    defrag.Logger
	server *http.Server
	ln     net.Listener
}

// NewServer creates a metrics server. A nil gatherer serves prometheus.DefaultGatherer.
func NewServer(addr string, gatherer prometheus.Gatherer, logger defrag.Logger) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if logger == nil {
		logger = defrag.NopLogger
	}
	return &Server{addr: addr, gather: gatherer, log: logger}
}

// Start binds the listen address and serves in the background until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.gather, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", healthHandler)

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.ln = ln
	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("metrics server listening", "addr", ln.Addr().String())
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("metrics server failed", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		if err := s.Shutdown(); err != nil {
			s.log.Warn("metrics server shutdown", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address, which differs from the configured one for ":0".
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK\n")
}
