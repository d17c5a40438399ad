// Package server hosts the live view as a local web page. The page is
// rendered from the current snapshot on every request; the poller keeps
// the snapshot fresh in the background.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sonnes/chaukidar/core"
	"github.com/sonnes/chaukidar/render"
	htmlrender "github.com/sonnes/chaukidar/render/html"
	jsonrender "github.com/sonnes/chaukidar/render/json"
	"github.com/sonnes/chaukidar/store"
)

const shutdownTimeout = 5 * time.Second

// Server serves the current snapshot over HTTP.
type Server struct {
	// Store holds the snapshot on display.
	Store *store.Store
	// Status reports poll status for the page header. Optional.
	Status func() core.Status
	// Renderer draws GET /. Nil uses an HTML renderer refreshing every Refresh.
	Renderer render.Renderer
	// Refresh is the browser reload period for the default renderer.
	Refresh time.Duration
	// Logger defaults to log.Default().
	Logger *log.Logger
}

func (s *Server) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

func (s *Server) status() core.Status {
	if s.Status != nil {
		return s.Status()
	}
	return core.Status{Loaded: s.Store.Loaded(), UpdatedAt: s.Store.UpdatedAt()}
}

// Handler returns the HTTP routes:
//
//	GET /               live page
//	GET /api/exchanges  current snapshot as a JSON array
//	GET /healthz        liveness
func (s *Server) Handler() http.Handler {
	page := s.Renderer
	if page == nil {
		h := htmlrender.New()
		h.Refresh = s.Refresh
		page = h
	}
	api := &jsonrender.Renderer{}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := page.Render(w, s.Store.Snapshot(), s.status()); err != nil {
			s.logger().Error("render page", "err", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("GET /api/exchanges", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := api.Render(w, s.Store.Snapshot(), core.Status{}); err != nil {
			s.logger().Error("render exchanges", "err", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})

	return mux
}

// Run listens on addr and serves until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger().Info("serving", "addr", "http://"+ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
