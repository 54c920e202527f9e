package console

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/schooltrack/go-console-auth/auth"
)

// Server is the local console shell: it hosts the login and unauthorized
// views, the guarded section routes, and the filtered navigation menu. The
// actual CRUD screens are external collaborators; the shell only renders
// placeholders where they mount.
type Server struct {
	manager *auth.Manager
	guard   *Guard
	menu    []MenuEntry
	log     zerolog.Logger
	router  chi.Router
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithMenu overrides the navigation descriptor table.
func WithMenu(entries []MenuEntry) ServerOption {
	return func(s *Server) {
		s.menu = entries
	}
}

// WithServerLogger sets the request logger; the default discards everything.
func WithServerLogger(log zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.log = log
	}
}

// NewServer builds the shell around a session manager.
func NewServer(manager *auth.Manager, options ...ServerOption) *Server {
	s := &Server{
		manager: manager,
		guard:   NewGuard(manager),
		menu:    DefaultMenu(),
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})
	r.Get(LoginPath, s.handleLoginPage)
	r.Get(UnauthorizedPath, s.handleUnauthorizedPage)
	r.Get("/menu", s.handleMenu)

	for _, entry := range s.menu {
		entry := entry
		r.With(s.guard.Protect(entry.Requirement())).Get(entry.Path, s.handleSection(entry))
	}

	return r
}

func (s *Server) handleLoginPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<html><body><h1>Sign in</h1><p>Use the console CLI to log in: schooltrack-console login</p></body></html>`)
}

func (s *Server) handleUnauthorizedPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	fmt.Fprint(w, `<html><body><h1>Unauthorized</h1><p>Your account does not have access to this area.</p></body></html>`)
}

// handleMenu returns the navigation entries visible to the current user. An
// empty list tells the shell to render its "no access" placeholder.
func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	if !s.manager.IsAuthenticated() {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}
	user, _ := s.manager.CurrentUser()
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": VisibleMenu(user, s.menu),
	})
}

func (s *Server) handleSection(entry MenuEntry) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		// Visiting a section counts as activity and staves off idle expiry.
		s.manager.ExtendSession()
		writeJSON(w, http.StatusOK, map[string]string{
			"section": entry.Label,
			"path":    entry.Path,
		})
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", colourMethod(r.Method)).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
