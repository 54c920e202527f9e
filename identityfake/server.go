// Package identityfake is an in-process stand-in for the schooltrack
// identity service, used by integration tests. It checks bcrypt password
// hashes, mints HS256 access tokens, and hands out opaque refresh tokens,
// matching the wire contract the real service exposes.
package identityfake

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/schooltrack/go-console-auth/session"
	"golang.org/x/crypto/bcrypt"
)

// User is a login fixture.
type User struct {
	Profile  session.UserProfile
	Password string
}

type fixture struct {
	profile      session.UserProfile
	passwordHash []byte
}

// Server implements the identity service endpoints plus a guarded
// /api/ping echo route for interceptor-style tests.
type Server struct {
	mu            sync.Mutex
	users         map[string]fixture // username -> fixture
	refreshTokens map[string]string  // refresh token -> username
	validTokens   map[string]bool    // access tokens accepted by /api/ping
	secret        []byte
	rejectRefresh bool
	denyAPI       bool
	loginCalls    int
	refreshCalls  int
}

// New creates a fake with the given users. Passwords are bcrypt-hashed the
// way the real service stores them; missing profile IDs get fresh UUIDs.
func New(users ...User) *Server {
	s := &Server{
		users:         make(map[string]fixture, len(users)),
		refreshTokens: make(map[string]string),
		validTokens:   make(map[string]bool),
		secret:        []byte(uuid.NewString()),
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		profile := u.Profile
		if profile.ID == "" {
			profile.ID = uuid.NewString()
		}
		if profile.Permissions == nil {
			profile.Permissions = []string{}
		}
		s.users[profile.Username] = fixture{profile: profile, passwordHash: hash}
	}
	return s
}

// Handler returns the fake's HTTP surface.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/refresh", s.handleRefresh)
	r.Get("/api/ping", s.handlePing)
	return r
}

// RejectRefresh makes every subsequent refresh call fail.
func (s *Server) RejectRefresh(reject bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectRefresh = reject
}

// DenyAPI makes the guarded endpoint return 401 regardless of token.
func (s *Server) DenyAPI(deny bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.denyAPI = deny
}

// ExpireAccessTokens invalidates every outstanding access token so the next
// guarded call returns 401, as if the tokens had aged out server-side.
func (s *Server) ExpireAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validTokens = make(map[string]bool)
}

// LoginCalls reports how many login attempts the fake has seen.
func (s *Server) LoginCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginCalls
}

// RefreshCalls reports how many refresh attempts the fake has seen.
func (s *Server) RefreshCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshCalls
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginCalls++

	fix, ok := s.users[req.Username]
	if !ok || bcrypt.CompareHashAndPassword(fix.passwordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	accessToken := s.mintAccessToken(fix.profile)
	refreshToken := uuid.NewString()
	s.refreshTokens[refreshToken] = fix.profile.Username
	s.validTokens[accessToken] = true

	writeJSON(w, http.StatusOK, map[string]any{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         fix.profile,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshCalls++

	username, ok := s.refreshTokens[req.RefreshToken]
	if s.rejectRefresh || !ok {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	accessToken := s.mintAccessToken(s.users[username].profile)
	s.validTokens[accessToken] = true
	writeJSON(w, http.StatusOK, map[string]any{"accessToken": accessToken})
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.denyAPI || token == "" || !s.validTokens[token] {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	if _, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"pong": "ok"})
}

// mintAccessToken must be called with the mutex held.
func (s *Server) mintAccessToken(profile session.UserProfile) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      profile.ID,
		"username": profile.Username,
		"role":     string(profile.Role),
		"schoolId": profile.SchoolID,
		"iat":      now.Unix(),
		"exp":      now.Add(time.Hour).Unix(),
		"jti":      uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
