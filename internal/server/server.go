package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler is an [http.Handler] that knows the patterns it serves.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Options configures [New].
type Options struct {
	Addr           string
	CoversDir      string   // Served under /covers/ when set
	AllowedOrigins []string // CORS origins; empty allows any origin
}

// Server is the site's HTTP server.
type Server struct {
	http   *http.Server
	logger *log.Logger
}

// New builds the router with every API route and wraps it in an [http.Server].
func New(catalog Catalog, opts Options, logger *log.Logger) *Server {
	logger = logger.With("component", "server")

	router := NewBasicRouter()
	router.Use(Recover(logger), AccessLog(logger), CORS(opts.AllowedOrigins))
	router.Handler(NewAPIHandler(catalog, logger))
	router.Handle(http.MethodGet, "/healthz", Health(catalog))
	if opts.CoversDir != "" {
		router.Handle(http.MethodGet, "/covers/", Covers(opts.CoversDir))
	}

	return &Server{
		http: &http.Server{
			Addr:              opts.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("error shutting down server", "error", err)
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
