// Package authz holds the single authorization decision function used by
// every protected screen and navigation entry. Nothing else in the console
// duplicates role or permission logic.
package authz

import "github.com/schooltrack/go-console-auth/session"

// Requirement declares what a screen or menu entry demands of the current
// user. The zero value means "any authenticated user". AltPermission models
// a stronger capability implying the weaker view-only one: a role with edit
// rights is not blocked for lacking the separately-named view permission.
type Requirement struct {
	Roles         []session.Role
	Permission    string
	AltPermission string
}

// CanAccess decides whether user satisfies req. Pure and deterministic:
// nil user denies; a non-empty role list without membership denies; no
// required permission allows on the role check alone; otherwise the user
// must hold the required permission or, when declared, the alternative.
func CanAccess(user *session.UserProfile, req Requirement) bool {
	if user == nil {
		return false
	}
	if len(req.Roles) > 0 && !roleIn(user.Role, req.Roles) {
		return false
	}
	if req.Permission == "" {
		return true
	}
	if user.HasPermission(req.Permission) {
		return true
	}
	return req.AltPermission != "" && user.HasPermission(req.AltPermission)
}

func roleIn(role session.Role, roles []session.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
