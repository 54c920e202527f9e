package auth

import (
	"context"

	"github.com/schooltrack/go-console-auth/session"
)

// LoginResult is what the identity service hands back for valid credentials.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *session.UserProfile
}

// IdentityAPI is the slice of the identity service the session manager
// consumes. Refresh exchanges a stored refresh token for one new access
// token; the refresh token itself is not rotated.
type IdentityAPI interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
