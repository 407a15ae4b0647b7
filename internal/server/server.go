// Package server runs the HTTP listener and the background work tied to it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// ErrUnhandled wraps the background failure that stopped the server.
var ErrUnhandled = errors.New("unhandled background failure")

const shutdownTimeout = 10 * time.Second

type Server struct {
	httpServer *http.Server
	log        *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	failOnce sync.Once
	failed   chan error
}

func New(handler http.Handler, log *slog.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		},
		log:    log,
		ctx:    ctx,
		cancel: cancel,
		failed: make(chan error, 1),
	}
}

// Go runs fn in the background until the server stops. A returned error or
// a panic inside fn is an unhandled failure and stops the server.
func (s *Server) Go(fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				s.Fail(fmt.Errorf("panic: %v", rec))
			}
		}()

		err := fn(s.ctx)
		if err != nil && s.ctx.Err() == nil {
			s.Fail(err)
		}
	}()
}

// Fail reports an unhandled failure. Only the first report is kept.
func (s *Server) Fail(err error) {
	s.failOnce.Do(func() {
		s.failed <- err
	})
}

// Serve accepts connections on ln until ctx is done, a background failure is
// reported or the listener breaks.
//
// On ctx done the server shuts down gracefully and Serve returns nil. On a
// background failure the listener and all connections are closed at once and
// the returned error wraps ErrUnhandled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.stopBackground()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)

	case err := <-s.failed:
		s.log.Error("Error: " + err.Error())
		_ = s.httpServer.Close()
		<-serveErr
		return fmt.Errorf("%w: %w", ErrUnhandled, err)

	case <-ctx.Done():
		s.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := s.httpServer.Shutdown(shutdownCtx)
		<-serveErr
		if err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	}
}

func (s *Server) stopBackground() {
	s.cancel()
	s.wg.Wait()
}
