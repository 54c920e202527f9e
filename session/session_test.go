package session_test

import (
	"testing"
	"time"

	"github.com/schooltrack/go-console-auth/session"
	"github.com/stretchr/testify/require"
)

func testProfile() *session.UserProfile {
	return &session.UserProfile{
		ID:          "user-1",
		Username:    "jdoe",
		FullName:    "Jane Doe",
		Email:       "jane.doe@example.com",
		Role:        session.RoleTeacher,
		SchoolID:    "school-1",
		SchoolName:  "Northside Primary",
		Permissions: []string{"ViewAttendanceRecords"},
	}
}

func TestSession_Complete(t *testing.T) {
	now := time.Now()

	full := session.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    now.Add(time.Hour),
		User:         testProfile(),
	}
	require.True(t, full.Complete())

	t.Run("missing access token", func(t *testing.T) {
		s := full
		s.AccessToken = ""
		require.False(t, s.Complete())
	})

	t.Run("missing refresh token", func(t *testing.T) {
		s := full
		s.RefreshToken = ""
		require.False(t, s.Complete())
	})

	t.Run("missing expiry", func(t *testing.T) {
		s := full
		s.ExpiresAt = time.Time{}
		require.False(t, s.Complete())
	})

	t.Run("missing user", func(t *testing.T) {
		s := full
		s.User = nil
		require.False(t, s.Complete())
	})
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()

	t.Run("future expiry is live", func(t *testing.T) {
		s := session.Session{ExpiresAt: now.Add(time.Minute)}
		require.False(t, s.Expired(now))
	})

	t.Run("one millisecond past is expired", func(t *testing.T) {
		s := session.Session{ExpiresAt: now.Add(-time.Millisecond)}
		require.True(t, s.Expired(now))
	})

	t.Run("exactly at expiry is still live", func(t *testing.T) {
		s := session.Session{ExpiresAt: now}
		require.False(t, s.Expired(now))
	})

	t.Run("no expiry recorded counts as expired", func(t *testing.T) {
		require.True(t, session.Session{}.Expired(now))
	})
}

func TestUserProfile_HasPermission(t *testing.T) {
	u := testProfile()
	require.True(t, u.HasPermission("ViewAttendanceRecords"))
	require.False(t, u.HasPermission("ManageStudents"))

	var absent *session.UserProfile
	require.False(t, absent.HasPermission("ViewAttendanceRecords"))
}
