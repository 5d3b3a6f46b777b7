// Package api provides the HTTP REST API for taskdeck.
//
// It exposes registration, login, session introspection, per-account task
// operations, and admin endpoints over JSON.
//
// The server follows the usual infrastructure lifecycle:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/internal/account"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/infrastructure/config"
	"github.com/taskdeck/taskdeck/internal/infrastructure/logging"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config   config.APIConfig
	Logger   *logging.Logger
	Store    *account.Store
	Sessions *auth.SessionRegistry
	Gate     *auth.Gate
	Version  string
}

// Server is the HTTP API server for taskdeck.
//
// It manages the HTTP listener, routes, and middleware. The server is
// created with New() and started with Start().
type Server struct {
	cfg      config.APIConfig
	logger   *logging.Logger
	store    *account.Store
	sessions *auth.SessionRegistry
	gate     *auth.Gate
	version  string
	server   *http.Server
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("account store is required")
	}
	if deps.Sessions == nil {
		return nil, fmt.Errorf("session registry is required")
	}
	if deps.Gate == nil {
		return nil, fmt.Errorf("authorization gate is required")
	}

	return &Server{
		cfg:      deps.Config,
		logger:   deps.Logger,
		store:    deps.Store,
		sessions: deps.Sessions,
		gate:     deps.Gate,
		version:  deps.Version,
	}, nil
}

// Start begins listening for HTTP connections in a background goroutine.
// The server can be stopped with Close().
func (s *Server) Start(_ context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// authenticate runs the gate for a request and writes the error response on
// failure. On success the caller owns the grant and must Close it.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request, require account.Role) (*auth.Grant, bool) {
	grant, err := s.gate.Authenticate(r.Context(), bearerToken(r), require)
	if err != nil {
		if !errors.Is(err, auth.ErrMissingToken) &&
			!errors.Is(err, auth.ErrInvalidToken) &&
			!errors.Is(err, auth.ErrForbidden) {
			s.logger.Error("authentication failed", "error", err)
		}
		writeDomainError(w, err)
		return nil, false
	}
	return grant, true
}
