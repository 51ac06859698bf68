// Package auth owns the authentication state machine: the OAuth2
// authorization-code flow against the identity provider, the resulting token
// pair, and the user identity derived from it.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/polyprep/polynotes/internal/client/api"
	"github.com/polyprep/polynotes/internal/client/config"
	"github.com/polyprep/polynotes/internal/client/repositories/tokens"
	"github.com/polyprep/polynotes/internal/logging"
)

// State names the session lifecycle phases.
type State string

const (
	StateLoggedOut      State = "logged_out"
	StateAuthenticating State = "authenticating"
	StateExchangingCode State = "exchanging_code"
	StateLoggedIn       State = "logged_in"
)

// Session is the authenticated identity held by this process.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Username     string
}

// IsAuthenticated reports whether a token pair is present.
func (s Session) IsAuthenticated() bool {
	return s.AccessToken != ""
}

// PresentAuthUI is supplied by the UI layer: it drives the user through the
// given authorization URL (external browser, web-auth sheet) and returns the
// redirect callback URL it came back with.
type PresentAuthUI func(ctx context.Context, authURL string) (callbackURL string, err error)

// Manager drives the login flow and holds the current session. All methods
// are safe for concurrent use; mutations are serialized on one mutex.
type Manager struct {
	api    api.Client
	repo   tokens.Repository
	oauth  oauth2.Config
	regURL string
	log    logging.Logger

	mu      sync.Mutex
	state   State
	session Session
}

// NewManager wires the manager to the backend API client and the durable
// token repository.
func NewManager(cfg *config.Config, apiClient api.Client, repo tokens.Repository, log logging.Logger) *Manager {
	base := strings.TrimRight(cfg.IdentityBaseURL, "/")
	return &Manager{
		api:  apiClient,
		repo: repo,
		oauth: oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.RedirectURI,
			Scopes:      []string{"openid", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL: fmt.Sprintf("%s/realms/%s/protocol/openid-connect/auth", base, cfg.Realm),
			},
		},
		regURL: fmt.Sprintf("%s/realms/%s/protocol/openid-connect/registrations", base, cfg.Realm),
		log:    log.With("component", "auth"),
		state:  StateLoggedOut,
	}
}

// State returns the current lifecycle phase.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Session returns a copy of the current session.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// AccessToken returns the current access token, or "" when logged out.
// Used as the api.TokenSource for the HTTP client.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.AccessToken
}

// BeginLogin builds the identity-provider authorization URL and moves the
// session into the authenticating phase. Nothing is persisted yet; the
// caller hands the URL to the external auth surface.
func (m *Manager) BeginLogin() string {
	m.mu.Lock()
	m.state = StateAuthenticating
	m.mu.Unlock()
	return m.oauth.AuthCodeURL(uuid.NewString())
}

// RegisterURL returns the identity-provider registration URL with the same
// client parameters as the login URL.
func (m *Manager) RegisterURL() string {
	v := url.Values{}
	v.Set("client_id", m.oauth.ClientID)
	v.Set("redirect_uri", m.oauth.RedirectURL)
	v.Set("response_type", "code")
	v.Set("scope", strings.Join(m.oauth.Scopes, " "))
	return m.regURL + "?" + v.Encode()
}

// CompleteLogin consumes the redirect callback URL: extracts the code,
// exchanges it for a token pair, persists the pair, derives the user id from
// the access token's subject claim and fetches the profile.
//
// A missing code or a failed exchange leaves the session logged out. A
// malformed subject claim or a failed profile fetch is reported but the
// session stays logged in: the token may still be good for everything else.
func (m *Manager) CompleteLogin(ctx context.Context, callbackURL string) error {
	code, err := extractCode(callbackURL)
	if err != nil {
		m.setState(StateLoggedOut)
		return err
	}

	m.setState(StateExchangingCode)

	pair, err := m.api.ExchangeCode(ctx, code, "")
	if err != nil {
		m.setState(StateLoggedOut)
		return fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}

	if err := m.repo.SetPair(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		// Session still works for this process lifetime; only restart
		// restore is affected.
		m.log.Error(ctx, "persisting tokens failed", "error", err)
	}

	m.mu.Lock()
	m.session = Session{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
	m.state = StateLoggedIn
	m.mu.Unlock()

	sub, err := subjectClaim(pair.AccessToken)
	if err != nil {
		m.log.Warn(ctx, "cannot derive user id from token", "error", err)
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	m.mu.Lock()
	m.session.UserID = sub
	m.mu.Unlock()

	return m.FetchUserInfo(ctx)
}

// CheckSession asks the backend whether the stored token pair is still good.
// When the backend demands a redirect, present is invoked with the fresh
// authorization URL and the callback it returns is fed into CompleteLogin.
// Otherwise the session is treated as valid and user info is refetched.
func (m *Manager) CheckSession(ctx context.Context, present PresentAuthUI) error {
	m.mu.Lock()
	access, refresh := m.session.AccessToken, m.session.RefreshToken
	m.mu.Unlock()

	res, err := m.api.CheckSession(ctx, access, refresh, "")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSessionCheckFailed, err)
	}

	if !res.Redirect {
		if err := m.FetchUserInfo(ctx); err != nil {
			m.log.Warn(ctx, "profile refresh after session check failed", "error", err)
		}
		return nil
	}

	if present == nil {
		return fmt.Errorf("%w: re-authentication required but no auth UI available", ErrSessionCheckFailed)
	}

	m.setState(StateAuthenticating)
	callbackURL, err := present(ctx, res.URL)
	if err != nil {
		m.setState(StateLoggedOut)
		return fmt.Errorf("%w: %w", ErrSessionCheckFailed, err)
	}
	return m.CompleteLogin(ctx, callbackURL)
}

// FetchUserInfo loads the profile for the session's user id and fills in the
// username. Failure never logs the user out: a stale session with an unknown
// username beats a forced logout while the token may still be valid.
func (m *Manager) FetchUserInfo(ctx context.Context) error {
	m.mu.Lock()
	userID := m.session.UserID
	m.mu.Unlock()

	if userID == "" {
		return fmt.Errorf("%w: no user id", ErrProfileFetchFailed)
	}

	user, err := m.api.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProfileFetchFailed, err)
	}

	m.mu.Lock()
	m.session.Username = user.Username
	m.mu.Unlock()
	return nil
}

// Logout clears tokens and identity and returns the manager to the
// logged-out state. Idempotent; succeeds with no session at all.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.repo.Clear(ctx); err != nil {
		m.log.Warn(ctx, "clearing stored tokens failed", "error", err)
	}

	m.mu.Lock()
	m.session = Session{}
	m.state = StateLoggedOut
	m.mu.Unlock()
	return nil
}

// Restore loads a previously persisted token pair on startup. With tokens
// present the session goes straight to logged in; user info is fetched
// best-effort so a dead network at launch does not force a logout.
func (m *Manager) Restore(ctx context.Context) {
	access, err := m.repo.Get(ctx, tokens.KeyAccess)
	if err != nil {
		m.log.Warn(ctx, "reading stored access token failed", "error", err)
		return
	}
	if len(access) == 0 {
		return
	}
	refresh, err := m.repo.Get(ctx, tokens.KeyRefresh)
	if err != nil {
		m.log.Warn(ctx, "reading stored refresh token failed", "error", err)
	}

	m.mu.Lock()
	m.session = Session{AccessToken: string(access), RefreshToken: string(refresh)}
	m.state = StateLoggedIn
	m.mu.Unlock()

	if sub, err := subjectClaim(string(access)); err == nil {
		m.mu.Lock()
		m.session.UserID = sub
		m.mu.Unlock()
		if err := m.FetchUserInfo(ctx); err != nil {
			m.log.Warn(ctx, "restoring user info failed", "error", err)
		}
	} else {
		m.log.Warn(ctx, "stored token has no readable subject", "error", err)
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// extractCode pulls the code query parameter out of the redirect callback.
func extractCode(callbackURL string) (string, error) {
	u, err := url.Parse(callbackURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingCode, err)
	}
	code := u.Query().Get("code")
	if code == "" {
		return "", ErrMissingCode
	}
	return code, nil
}

// subjectClaim reads the sub claim from the access token without verifying
// the signature. Verification is the backend's job; the client only needs
// the subject to look up display info.
func subjectClaim(accessToken string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return "", err
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("empty sub claim")
	}
	return sub, nil
}
