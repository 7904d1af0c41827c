package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/recipe-box/auth"
	"github.com/jrsteele09/recipe-box/internal/config"
	"github.com/jrsteele09/recipe-box/sessions"
)

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	handler http.HandlerFunc
	routes  []string
	config  config.Config
	policy  RoutePolicy

	sessions *sessions.Service
	auth     *auth.Service
	reviews  *ReviewDrafts
	cors     *cors.Cors
	pages    map[string]*template.Template

	closers []func(context.Context) error
}

type Option func(*Server)

// WithRoutePolicy replaces the default guard routing table.
func WithRoutePolicy(p RoutePolicy) Option {
	return func(s *Server) {
		s.policy = p
	}
}

func New(cfg config.Config, sessionService *sessions.Service, authService *auth.Service, reviews *ReviewDrafts, options ...Option) (*Server, error) {
	if sessionService == nil || authService == nil || reviews == nil {
		return nil, fmt.Errorf("[server New] session, auth and review services are required")
	}

	pages, err := ParsePages()
	if err != nil {
		return nil, fmt.Errorf("[server New] failed to parse page templates: %w", err)
	}

	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		policy:   DefaultRoutePolicy(),
		sessions: sessionService,
		auth:     authService,
		reviews:  reviews,
		pages:    pages,
		cors: cors.New(cors.Options{
			AllowedOrigins:   cfg.GetAllowedOrigins(),
			AllowedMethods:   cfg.GetAllowedMethods(),
			AllowedHeaders:   cfg.GetAllowedHeaders(),
			AllowCredentials: true,
			MaxAge:           86400,
		}),
	}
	for _, opt := range options {
		opt(s)
	}

	s.initRoutes()
	s.handler = ChainMiddleware(s.mux.ServeHTTP, s.RootMiddleware()...)
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// onClose registers cleanup run by Close, in reverse order of registration.
func (s *Server) onClose(fn func(context.Context) error) {
	s.closers = append(s.closers, fn)
}

// Close flushes pending review drafts and releases the server's connections.
func (s *Server) Close(ctx context.Context) error {
	var firstErr error
	if err := s.reviews.Close(ctx); err != nil {
		firstErr = fmt.Errorf("[Server Close] review drafts: %w", err)
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("[Server Close] %w", err)
		}
	}
	return firstErr
}

// cookieStore is the request's view of the session and OAuth state cookies.
func (s *Server) cookieStore(w http.ResponseWriter, r *http.Request) *sessions.CookieStore {
	return sessions.NewCookieStore(w, r, s.config.IsProduction())
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Info().Msgf("[ %-16s] %s", colorMethod(parts[0]), parts[1])
		} else {
			log.Info().Msgf("[ %-16s] %s", colorMethod("ANY"), parts[0])
		}
	}
}
