package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/schooltrack/go-console-auth/session"
)

const defaultRequestTimeout = 20 * time.Second

// Client is the HTTP implementation of IdentityAPI, speaking the identity
// service's JSON endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates an identity service client for the given base URL.
func NewClient(baseURL string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	User         *session.UserProfile `json:"user"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a token pair and profile. A rejection by
// the server comes back as InvalidCredentialsError carrying its message.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var out loginResponse
	status, serverMsg, err := c.postJSON(ctx, "/auth/login", loginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return LoginResult{}, errors.Wrap(err, "[Client.Login] login request")
	}
	if status != http.StatusOK {
		return LoginResult{}, NewInvalidCredentialsError(serverMsg)
	}
	if out.AccessToken == "" || out.RefreshToken == "" || out.User == nil {
		return LoginResult{}, errors.New("[Client.Login] incomplete login response")
	}
	return LoginResult{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         out.User,
	}, nil
}

// Refresh requests one new access token for the given refresh token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var out refreshResponse
	status, _, err := c.postJSON(ctx, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &out)
	if err != nil {
		return "", errors.Wrap(err, "[Client.Refresh] refresh request")
	}
	if status != http.StatusOK {
		return "", errors.Errorf("[Client.Refresh] refresh rejected with status %d", status)
	}
	if out.AccessToken == "" {
		return "", errors.New("[Client.Refresh] refresh response missing access token")
	}
	return out.AccessToken, nil
}

// postJSON issues one JSON POST. On a non-200 it returns the status and the
// server's message body instead of decoding into out.
func (c *Client) postJSON(ctx context.Context, path string, body any, out any) (int, string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, "", errors.Wrap(err, "marshal request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, "", errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var serverErr errorResponse
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(data, &serverErr)
		return resp.StatusCode, serverErr.Message, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, "", errors.Wrap(err, "decode response body")
	}
	return resp.StatusCode, "", nil
}
