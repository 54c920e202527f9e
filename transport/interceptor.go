// Package transport attaches session credentials to outgoing API calls and
// recovers from authorization failures with a single refresh-and-retry.
package transport

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/schooltrack/go-console-auth/auth"
)

const (
	authorizationHeader = "Authorization"
	requestIDHeader     = "X-Request-ID"
	bearerPrefix        = "Bearer "
)

// Interceptor is an http.RoundTripper that bearer-authenticates every
// request through the session manager. On a 401 it attempts exactly one
// refresh and re-issues the original request once; a second 401 or a failed
// refresh forces logout. A request is never retried more than once, so a
// failing refresh endpoint cannot start a loop.
type Interceptor struct {
	base          http.RoundTripper
	manager       *auth.Manager
	onAuthFailure func()
	log           zerolog.Logger
}

// InterceptorOption configures an Interceptor.
type InterceptorOption func(*Interceptor)

// WithBaseTransport sets the wrapped transport (default http.DefaultTransport).
func WithBaseTransport(rt http.RoundTripper) InterceptorOption {
	return func(i *Interceptor) {
		i.base = rt
	}
}

// WithOnAuthFailure registers a hook invoked after a forced logout; the
// console uses it to navigate to the login entry point.
func WithOnAuthFailure(fn func()) InterceptorOption {
	return func(i *Interceptor) {
		i.onAuthFailure = fn
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(log zerolog.Logger) InterceptorOption {
	return func(i *Interceptor) {
		i.log = log
	}
}

// NewInterceptor creates an interceptor bound to the given session manager.
func NewInterceptor(manager *auth.Manager, options ...InterceptorOption) *Interceptor {
	i := &Interceptor{
		base:    http.DefaultTransport,
		manager: manager,
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(i)
	}
	return i
}

// NewClient returns an http.Client whose transport is an Interceptor.
func NewClient(manager *auth.Manager, options ...InterceptorOption) *http.Client {
	return &http.Client{Transport: NewInterceptor(manager, options...)}
}

// RoundTrip implements http.RoundTripper.
func (i *Interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	first := cloneRequest(req)
	if first.Header.Get(requestIDHeader) == "" {
		first.Header.Set(requestIDHeader, uuid.New().String())
	}

	// A missing token is not an error here; the request goes out
	// unauthenticated and the server stays the final authority.
	if token, status := i.manager.EnsureValidSession(); status == auth.TokenValid {
		first.Header.Set(authorizationHeader, bearerPrefix+token)
	}

	resp, err := i.base.RoundTrip(first)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// Per-request retry state: this request moves NotRetried -> Retried
	// here and can never transition again.
	newToken, refreshErr := i.manager.Refresh(req.Context())
	if refreshErr != nil {
		i.log.Warn().Str("url", req.URL.String()).Msg("refresh after 401 failed, forcing logout")
		i.forceLogout()
		return resp, nil
	}

	retry, ok := replayableRequest(req)
	if !ok {
		// Body cannot be replayed; hand the 401 back with the session
		// already repaired so the caller's own retry will succeed.
		i.log.Debug().Str("url", req.URL.String()).Msg("401 response not retriable, body not replayable")
		return resp, nil
	}
	drain(resp)

	retry.Header.Set(requestIDHeader, first.Header.Get(requestIDHeader))
	retry.Header.Set(authorizationHeader, bearerPrefix+newToken)

	retryResp, err := i.base.RoundTrip(retry)
	if err != nil {
		return nil, err
	}
	if retryResp.StatusCode == http.StatusUnauthorized {
		i.log.Warn().Str("url", req.URL.String()).Msg("retried request rejected again, forcing logout")
		i.manager.Logout()
		i.forceLogout()
	}
	return retryResp, nil
}

func (i *Interceptor) forceLogout() {
	if i.onAuthFailure != nil {
		i.onAuthFailure()
	}
}

// cloneRequest shallow-copies req with its headers, as RoundTrippers must
// not mutate the caller's request.
func cloneRequest(req *http.Request) *http.Request {
	out := req.Clone(req.Context())
	return out
}

// replayableRequest rebuilds the original request for the single retry.
// Requests with a body need GetBody; without it the body was consumed by the
// first attempt and cannot be re-sent.
func replayableRequest(req *http.Request) (*http.Request, bool) {
	out := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return out, true
	}
	if req.GetBody == nil {
		return nil, false
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	out.Body = body
	return out, true
}

// drain discards and closes a response body so the underlying connection can
// be reused for the retry.
func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 32*1024))
	_ = resp.Body.Close()
}
