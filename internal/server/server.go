// Package server runs the HTTP API until its context is cancelled.
package server

import (
	"context"
	stderrs "errors"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

type Options struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Server struct {
	opts   Options
	http   *http.Server
	logger ports.Logger
}

func New(handler http.Handler, opts Options, logger ports.Logger) *Server {
	return &Server{
		opts: opts,
		http: &http.Server{
			Addr:              opts.Address,
			Handler:           handler,
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadTimeout,
			WriteTimeout:      opts.WriteTimeout,
		},
		logger: logger,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return errors.Wrap(err, errors.CodeConfigValidation, "failed to listen on "+s.opts.Address)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully within
// the shutdown timeout. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, childCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Infof(childCtx, "Serving HTTP on %s", ln.Addr())
		if err := s.http.Serve(ln); err != nil && !stderrs.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, errors.CodeInternal, "http server failed")
		}
		return nil
	})

	g.Go(func() error {
		<-childCtx.Done()
		s.logger.Infof(ctx, "Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, errors.CodeTimeout, "graceful shutdown did not finish in time")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Errorf(ctx, err, "HTTP server stopped with an error")
		return err
	}
	s.logger.Infof(ctx, "HTTP server stopped")
	return nil
}
