// SPDX-License-Identifier: Apache-2.0

// Package server is the HTTP request gateway: it validates request shape,
// maps workflow outcomes to status codes, and serializes results. All
// provisioning semantics live in the components it wraps.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/joomcode/errorx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sciportal/portal-datastore/internal/datastore"
)

const shutdownTimeout = 10 * time.Second

// Server serves the provisioning API on a single listener. Construct with
// NewServer, start with Open, stop with Close.
type Server struct {
	listenAddr string
	logger     zerolog.Logger

	httpServer *http.Server
	listener   net.Listener
}

// NewServer wires the handler, middleware and metrics around the given
// components. The gateway handle is injected through the components; the
// server never talks to the backend directly.
func NewServer(listenAddr string, provisioner *datastore.Provisioner, access *datastore.AccessController, logger zerolog.Logger) *Server {
	h := &handler{
		provisioner: provisioner,
		access:      access,
		logger:      logger,
	}

	registry := prometheus.NewRegistry()
	metrics := newServerMetrics(registry)

	router := newRouter(h, requestLogger(logger), metrics.middleware())
	router.Get("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP)

	return &Server{
		listenAddr: listenAddr,
		logger:     logger,
		httpServer: &http.Server{Handler: router},
	}
}

// Open binds the listener and starts serving. It blocks until Close is
// called or the listener fails.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to listen on %s", s.listenAddr)
	}
	s.listener = ln

	s.logger.Info().
		Str("addr", ln.Addr().String()).
		Msg("HTTP server listening")

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errorx.IllegalState.Wrap(err, "HTTP server failed")
	}

	return nil
}

// Close drains in-flight requests and stops the server.
func (s *Server) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	s.logger.Info().Msg("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the bound address, useful when listening on port 0 in tests.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.listenAddr
	}
	return s.listener.Addr().String()
}
