// Package auth exposes the authentication provider the viewer consumes.
//
// The core never drives a login UI itself; it only asks the provider for a
// credential and, when a secured layer fails with an authorization error,
// asks it to log in again. Two implementations are provided: a static token
// (CI, development) and a session-backed provider that exchanges service
// account credentials and persists the resulting session between runs.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/session"
)

// Provider is the authentication interface the viewer consumes.
type Provider interface {
	// IsAuthenticated reports whether a usable credential is available.
	IsAuthenticated() bool

	// Login acquires a credential. Called on demand, typically after a
	// secured layer load fails with an authorization error.
	Login(ctx context.Context) error

	// Token returns the current bearer token, or "" when logged out.
	Token() string
}

// StaticProvider wraps a fixed token. Login is a no-op; the token either
// works or it doesn't.
type StaticProvider struct {
	token string
}

// NewStaticProvider creates a provider around a fixed bearer token.
func NewStaticProvider(token string) *StaticProvider {
	return &StaticProvider{token: token}
}

func (p *StaticProvider) IsAuthenticated() bool       { return p.token != "" }
func (p *StaticProvider) Login(context.Context) error { return nil }
func (p *StaticProvider) Token() string               { return p.token }

// SessionProvider obtains tokens from a token endpoint using password-grant
// credentials and persists the session via a [session.Store] so repeated CLI
// runs reuse a live credential.
type SessionProvider struct {
	mu        sync.Mutex
	current   *session.Session
	store     session.Store
	sessionID string

	tokenURL string
	clientID string
	username string
	password string
	client   *http.Client
}

// SessionConfig configures a SessionProvider.
type SessionConfig struct {
	TokenURL  string
	ClientID  string // OAuth client_id, sent when the endpoint requires one
	Username  string
	Password  string
	SessionID string // stable ID under which the session is persisted
}

// NewSessionProvider creates a provider and loads any persisted session.
func NewSessionProvider(ctx context.Context, cfg SessionConfig, store session.Store) (*SessionProvider, error) {
	p := &SessionProvider{
		store:     store,
		sessionID: cfg.SessionID,
		tokenURL:  cfg.TokenURL,
		clientID:  cfg.ClientID,
		username:  cfg.Username,
		password:  cfg.Password,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
	if store != nil && cfg.SessionID != "" {
		sess, err := store.Get(ctx, cfg.SessionID)
		if err != nil {
			return nil, err
		}
		p.current = sess
	}
	return p, nil
}

// IsAuthenticated reports whether a non-expired session is held.
func (p *SessionProvider) IsAuthenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil && !p.current.IsExpired()
}

// Token returns the current bearer token, or "" when logged out.
func (p *SessionProvider) Token() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil || p.current.IsExpired() {
		return ""
	}
	return p.current.AccessToken
}

// Login exchanges the configured credentials for a fresh token and persists
// the session.
func (p *SessionProvider) Login(ctx context.Context) error {
	form := url.Values{
		"grant_type": {"password"},
		"username":   {p.username},
		"password":   {p.password},
	}
	if p.clientID != "" {
		form.Set("client_id", p.clientID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "token endpoint unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New(errors.ErrCodeUnauthorized, "token endpoint returned status %d", resp.StatusCode)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "decode token response")
	}
	if result.AccessToken == "" {
		return errors.New(errors.ErrCodeUnauthorized, "token endpoint returned no access token")
	}

	ttl := session.DefaultTTL
	if result.ExpiresIn > 0 {
		ttl = time.Duration(result.ExpiresIn) * time.Second
	}

	sess := session.New(result.AccessToken, p.username, ttl)
	if p.sessionID != "" {
		sess.ID = p.sessionID
	}

	p.mu.Lock()
	p.current = sess
	p.mu.Unlock()

	if p.store != nil {
		return p.store.Set(ctx, sess)
	}
	return nil
}
