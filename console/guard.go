// Package console is the boundary page components see: the route guard, the
// navigation filter, and the local shell server that hosts them. Permission
// decisions all flow through authz.CanAccess; nothing here re-derives them.
package console

import (
	"net/http"

	"github.com/schooltrack/go-console-auth/auth"
	"github.com/schooltrack/go-console-auth/authz"
)

const (
	// LoginPath is where unauthenticated visitors are sent.
	LoginPath = "/login"
	// UnauthorizedPath is where authenticated but under-privileged users are
	// sent. The distinction from LoginPath is an observable contract: a
	// valid user is never bounced back to the login form.
	UnauthorizedPath = "/unauthorized"
)

// Guard applies the authorization evaluator at the page level.
type Guard struct {
	manager *auth.Manager
}

// NewGuard creates a guard bound to the session manager.
func NewGuard(manager *auth.Manager) *Guard {
	return &Guard{manager: manager}
}

// Protect wraps a view with the given requirement. Render order: no live
// session redirects to login; a live session failing the requirement
// redirects to the unauthorized view; otherwise the wrapped view renders.
func (g *Guard) Protect(req authz.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !g.manager.IsAuthenticated() {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			user, _ := g.manager.CurrentUser()
			if !authz.CanAccess(user, req) {
				http.Redirect(w, r, UnauthorizedPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
