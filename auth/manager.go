package auth

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/schooltrack/go-console-auth/session"
)

// DefaultSessionTTL is how long a session stays valid without activity.
const DefaultSessionTTL = 8 * time.Hour

// TokenStatus is the tagged result of EnsureValidSession.
type TokenStatus int

const (
	// TokenAbsent means no session is stored; the user is logged out.
	TokenAbsent TokenStatus = iota
	// TokenExpired means a session was stored but its expiry has passed.
	// Observing this status clears the store.
	TokenExpired
	// TokenValid means the returned access token may be used.
	TokenValid
)

// Manager owns the session lifecycle: login, logout, expiry enforcement,
// refresh, and extension. It is the only writer of the session store; page
// components and transports go through it rather than reading storage
// directly. All methods are safe for concurrent use.
type Manager struct {
	api   IdentityAPI
	store session.Store
	now   func() time.Time
	ttl   time.Duration
	log   zerolog.Logger

	mu sync.Mutex
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = nowFunc
	}
}

// WithSessionTTL overrides the session lifetime applied on login, refresh,
// and extension.
func WithSessionTTL(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.ttl = d
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(log zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager initializes a Manager with its required collaborators.
func NewManager(api IdentityAPI, store session.Store, options ...ManagerOption) (*Manager, error) {
	if api == nil {
		return nil, errors.New("[NewManager] identity API is required")
	}
	if store == nil {
		return nil, errors.New("[NewManager] session store is required")
	}

	m := &Manager{
		api:   api,
		store: store,
		now:   time.Now,
		ttl:   DefaultSessionTTL,
		log:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Login exchanges credentials for a new session and returns the profile.
// On failure the store is left untouched; a server rejection surfaces as
// InvalidCredentialsError with the server's message.
func (m *Manager) Login(ctx context.Context, username, password string) (*session.UserProfile, error) {
	result, err := m.api.Login(ctx, username, password)
	if err != nil {
		if IsInvalidCredentials(err) {
			m.log.Info().Str("username", username).Msg("login rejected")
			return nil, err
		}
		return nil, errors.Wrap(err, "[Manager.Login] identity service unreachable")
	}

	user := result.User
	if user.Permissions == nil {
		user.Permissions = []string{}
	}

	sess := session.Session{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresAt:    m.now().Add(m.ttl),
		User:         user,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(sess); err != nil {
		return nil, errors.Wrap(err, "[Manager.Login] persist session")
	}
	m.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("session established")
	return user, nil
}

// Logout unconditionally clears the session. Calling it with no active
// session is not an error.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear session store")
	}
}

// IsExpired reports whether the stored session is past its expiry. A missing
// session or missing expiry counts as expired (fail closed).
func (m *Manager) IsExpired() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.store.Load()
	if !ok {
		return true
	}
	return sess.Expired(m.now())
}

// EnsureValidSession returns the access token together with an explicit
// status. An expired session is cleared on observation (lazy logout), so a
// non-valid status means "the user is no longer logged in", not a transient
// error.
func (m *Manager) EnsureValidSession() (string, TokenStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.store.Load()
	if !ok {
		return "", TokenAbsent
	}
	if sess.Expired(m.now()) {
		if err := m.store.Clear(); err != nil {
			m.log.Warn().Err(err).Msg("failed to clear expired session")
		}
		m.log.Debug().Msg("session expired, cleared")
		return "", TokenExpired
	}
	return sess.AccessToken, TokenValid
}

// Token is a convenience wrapper over EnsureValidSession for callers that
// only care whether a usable token exists.
func (m *Manager) Token() (string, bool) {
	tok, status := m.EnsureValidSession()
	return tok, status == TokenValid
}

// IsAuthenticated reports whether a complete, unexpired session exists.
// Like EnsureValidSession it clears an expired session as a side effect.
func (m *Manager) IsAuthenticated() bool {
	_, status := m.EnsureValidSession()
	return status == TokenValid
}

// Refresh exchanges the stored refresh token for one new access token. On
// success only the access token and expiry change; the refresh token is not
// rotated. Any failure clears the entire session and returns
// RefreshFailedErr, never a partial state. Concurrent callers are
// serialized per store write; the last write wins.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	m.mu.Lock()
	sess, ok := m.store.Load()
	m.mu.Unlock()
	if !ok {
		return "", NoSessionErr
	}

	newToken, err := m.api.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		m.log.Warn().Err(err).Msg("token refresh failed, forcing logout")
		m.mu.Lock()
		defer m.mu.Unlock()
		if clearErr := m.store.Clear(); clearErr != nil {
			m.log.Warn().Err(clearErr).Msg("failed to clear session after refresh failure")
		}
		return "", RefreshFailedErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.store.Load()
	if ok {
		current.AccessToken = newToken
		current.ExpiresAt = m.now().Add(m.ttl)
		if err := m.store.Save(current); err != nil {
			return "", errors.Wrap(err, "[Manager.Refresh] persist refreshed session")
		}
	}
	m.log.Debug().Msg("access token refreshed")
	return newToken, nil
}

// ExtendSession pushes the expiry out to now + TTL without contacting the
// server. Intended to be invoked on user activity; a no-op when no live
// session exists.
func (m *Manager) ExtendSession() {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.store.Load()
	if !ok || sess.Expired(m.now()) {
		return
	}
	sess.ExpiresAt = m.now().Add(m.ttl)
	if err := m.store.Save(sess); err != nil {
		m.log.Warn().Err(err).Msg("failed to extend session")
	}
}

// CurrentUser returns the stored profile, if any. It does not enforce
// expiry; callers gate on IsAuthenticated first.
func (m *Manager) CurrentUser() (*session.UserProfile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.store.Load()
	if !ok {
		return nil, false
	}
	return sess.User, true
}

// Permissions returns a copy of the current user's permission set; empty,
// never nil, when no session exists.
func (m *Manager) Permissions() []string {
	user, ok := m.CurrentUser()
	if !ok {
		return []string{}
	}
	perms := make([]string, len(user.Permissions))
	copy(perms, user.Permissions)
	return perms
}

// HasPermission reports whether the current user holds the named capability.
func (m *Manager) HasPermission(permission string) bool {
	user, ok := m.CurrentUser()
	return ok && user.HasPermission(permission)
}

// HasAnyPermission reports whether the current user holds at least one of
// the named capabilities. An empty list is never satisfied.
func (m *Manager) HasAnyPermission(permissions ...string) bool {
	user, ok := m.CurrentUser()
	if !ok {
		return false
	}
	for _, p := range permissions {
		if user.HasPermission(p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the current user holds every named
// capability. An empty list is trivially satisfied when a session exists.
func (m *Manager) HasAllPermissions(permissions ...string) bool {
	user, ok := m.CurrentUser()
	if !ok {
		return false
	}
	for _, p := range permissions {
		if !user.HasPermission(p) {
			return false
		}
	}
	return true
}
