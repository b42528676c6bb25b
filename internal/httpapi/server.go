package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Server wraps an http.Server bound to a listener, with graceful shutdown
// wired to the provided context.
type Server struct {
	srv     *http.Server
	ln      net.Listener
	baseURL string
}

// Start binds the listener and begins serving the API in the background.
// When ctx is cancelled the server shuts down gracefully.
func Start(ctx context.Context, api *API, addr string) (*Server, error) {
	if addr == "" {
		addr = "127.0.0.1:0"
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("binding %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           api.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s := &Server{
		srv:     srv,
		ln:      ln,
		baseURL: "http://" + ln.Addr().String(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			api.logger().Error("http server exited", "error", err)
		}
	}()

	api.logger().Info("http server listening", "base_url", s.baseURL)
	return s, nil
}

// BaseURL returns the address the server is reachable at.
func (s *Server) BaseURL() string {
	return s.baseURL
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
