package session_test

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/schooltrack/go-console-auth/session"
	"github.com/stretchr/testify/require"
)

// Requires a reachable redis; set REDIS_ADDR to run.
func TestRedisStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	store := session.NewRedisStore(addr, session.WithKey("schooltrack:test:"+uuid.NewString()))
	defer func() {
		_ = store.Clear()
		_ = store.Close()
	}()

	saved := session.Session{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(8 * time.Hour).Truncate(time.Millisecond),
		User:         testProfile(),
	}
	require.NoError(t, store.Save(saved))

	loaded, ok := store.Load()
	require.True(t, ok)
	require.Equal(t, saved.AccessToken, loaded.AccessToken)
	require.Equal(t, saved.User, loaded.User)

	require.NoError(t, store.Clear())
	_, ok = store.Load()
	require.False(t, ok)
	require.NoError(t, store.Clear())
}
