package session

import "time"

// Role is the coarse-grained access category assigned to every console user.
// Exactly one role per user; roles gate entire feature areas while
// permissions gate individual capabilities within them.
type Role string

const (
	RoleSuperAdmin  Role = "SuperAdmin"
	RoleSchoolAdmin Role = "SchoolAdmin"
	RoleTeacher     Role = "Teacher"
	RoleStaff       Role = "Staff"
)

// UserProfile is the identity record the identity service returns at login.
// Identity attributes are immutable for the lifetime of the session. A
// non-SuperAdmin user's data access is scoped to SchoolID server-side; the
// client only reflects it.
type UserProfile struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	FullName    string   `json:"fullName"`
	Email       string   `json:"email"`
	Role        Role     `json:"role"`
	SchoolID    string   `json:"schoolId,omitempty"`
	SchoolName  string   `json:"schoolName,omitempty"`
	Permissions []string `json:"permissions"`
}

// HasPermission reports whether the named capability has been granted.
func (u *UserProfile) HasPermission(permission string) bool {
	if u == nil {
		return false
	}
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// Session is the authenticated state of the one logged-in console user.
// A session is either complete (all four fields present) or absent; partial
// sessions are never observable.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         *UserProfile
}

// Complete reports whether every field a live session requires is present.
func (s Session) Complete() bool {
	return s.AccessToken != "" && s.RefreshToken != "" && !s.ExpiresAt.IsZero() && s.User != nil
}

// Expired reports whether the access token must be treated as invalid at the
// given instant. A missing expiry counts as expired.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt.IsZero() || now.After(s.ExpiresAt)
}
