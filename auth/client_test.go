package auth_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/schooltrack/go-console-auth/auth"
	"github.com/schooltrack/go-console-auth/identityfake"
	"github.com/schooltrack/go-console-auth/session"
	"github.com/stretchr/testify/require"
)

func startIdentity(t *testing.T) (*identityfake.Server, *auth.Client) {
	t.Helper()

	fake := identityfake.New(identityfake.User{
		Profile: session.UserProfile{
			Username:    testUsername,
			FullName:    "Jane Doe",
			Email:       "jane.doe@northside.example",
			Role:        session.RoleTeacher,
			SchoolID:    "school-1",
			SchoolName:  "Northside Primary",
			Permissions: []string{"ViewAttendanceRecords"},
		},
		Password: testPassword,
	})

	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)
	return fake, auth.NewClient(srv.URL)
}

func TestClient_Login(t *testing.T) {
	t.Run("valid credentials return tokens and profile", func(t *testing.T) {
		_, client := startIdentity(t)

		result, err := client.Login(context.Background(), testUsername, testPassword)
		require.NoError(t, err)
		require.NotEmpty(t, result.AccessToken)
		require.NotEmpty(t, result.RefreshToken)
		require.Equal(t, testUsername, result.User.Username)
		require.Equal(t, session.RoleTeacher, result.User.Role)
	})

	t.Run("rejection carries the server message", func(t *testing.T) {
		_, client := startIdentity(t)

		_, err := client.Login(context.Background(), testUsername, "wrong-password")
		require.Error(t, err)
		require.True(t, auth.IsInvalidCredentials(err))
		require.Equal(t, "invalid username or password", err.Error())
	})

	t.Run("unknown user", func(t *testing.T) {
		_, client := startIdentity(t)

		_, err := client.Login(context.Background(), "nobody", testPassword)
		require.True(t, auth.IsInvalidCredentials(err))
	})

	t.Run("unreachable server is not an invalid-credentials error", func(t *testing.T) {
		client := auth.NewClient("http://127.0.0.1:1")
		_, err := client.Login(context.Background(), testUsername, testPassword)
		require.Error(t, err)
		require.False(t, auth.IsInvalidCredentials(err))
	})
}

func TestClient_Refresh(t *testing.T) {
	t.Run("exchanges the refresh token for a new access token", func(t *testing.T) {
		_, client := startIdentity(t)

		result, err := client.Login(context.Background(), testUsername, testPassword)
		require.NoError(t, err)

		newToken, err := client.Refresh(context.Background(), result.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, newToken)
		require.NotEqual(t, result.AccessToken, newToken)
	})

	t.Run("rejected refresh token", func(t *testing.T) {
		fake, client := startIdentity(t)

		result, err := client.Login(context.Background(), testUsername, testPassword)
		require.NoError(t, err)

		fake.RejectRefresh(true)
		_, err = client.Refresh(context.Background(), result.RefreshToken)
		require.Error(t, err)
	})
}
