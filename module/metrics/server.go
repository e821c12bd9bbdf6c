package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server is the http server that will be serving the /metrics request for prometheus
type Server struct {
	server  *http.Server
	log     zerolog.Logger
	timeout time.Duration
}

// NewServer creates a new server listening on address that responds to the
// `/metrics` endpoint with the metrics of gatherer. In-flight requests get
// shutdownTimeout to finish once the server is stopped.
func NewServer(log zerolog.Logger, address string, gatherer prometheus.Gatherer, shutdownTimeout time.Duration) *Server {
	mux := http.NewServeMux()
	endpoint := "/metrics"
	mux.Handle(endpoint, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &Server{
		server:  &http.Server{Addr: address, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		log:     log.With().Str("component", "metrics_server").Str("address", address).Str("endpoint", endpoint).Logger(),
		timeout: shutdownTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts the server down.
func (m *Server) Run(ctx context.Context) error {
	errs := make(chan error, 1)
	go func() {
		m.log.Info().Msg("metrics server started")
		errs <- m.server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	err := m.server.Shutdown(shutdownCtx)
	// http.ErrServerClosed is returned when Close or Shutdown is called
	// we don't consider this an error
	if serveErr := <-errs; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}
	m.log.Debug().Msg("metrics server shutdown")
	return err
}
