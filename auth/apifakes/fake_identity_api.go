package apifakes

import (
	"context"
	"sync"

	"github.com/schooltrack/go-console-auth/auth"
)

// FakeIdentityAPI is a scripted auth.IdentityAPI for manager tests.
type FakeIdentityAPI struct {
	mu sync.Mutex

	LoginResult auth.LoginResult
	LoginErr    error

	RefreshToken string // access token handed out by Refresh
	RefreshErr   error

	loginCalls   int
	refreshCalls int
	lastRefresh  string // refresh token most recently presented
}

// NewFakeIdentityAPI creates a fake that fails every call until scripted.
func NewFakeIdentityAPI() *FakeIdentityAPI {
	return &FakeIdentityAPI{}
}

func (f *FakeIdentityAPI) Login(_ context.Context, _, _ string) (auth.LoginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	if f.LoginErr != nil {
		return auth.LoginResult{}, f.LoginErr
	}
	return f.LoginResult, nil
}

func (f *FakeIdentityAPI) Refresh(_ context.Context, refreshToken string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls++
	f.lastRefresh = refreshToken
	if f.RefreshErr != nil {
		return "", f.RefreshErr
	}
	return f.RefreshToken, nil
}

func (f *FakeIdentityAPI) LoginCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls
}

func (f *FakeIdentityAPI) RefreshCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshCalls
}

func (f *FakeIdentityAPI) LastRefreshToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastRefresh
}
