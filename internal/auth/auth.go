// Package auth talks to the hosted identity provider and carries the
// resulting access token in a cookie session. The provider is optional:
// with no URL configured the server runs in single-user local mode and
// the middleware passes every request through.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"golang.org/x/time/rate"
)

const (
	sessionName = "checkdeck-session"
	tokenKey    = "access_token"
)

// exchangeRate caps OAuth code exchanges against the provider: a small
// steady rate with a burst for page loads that race the callback.
var exchangeRate = rate.Limit(1)

const exchangeBurst = 5

// Config holds the provider connection settings.
type Config struct {
	// ProviderURL is the base URL of the hosted identity provider.
	// Empty disables authentication entirely.
	ProviderURL string
	// APIKey is the provider's public API key, sent with every call.
	APIKey string
	// SessionSecret signs the session cookie.
	SessionSecret string
}

// User is the provider's notion of the signed-in user.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is a validated session: the bearer token plus the user it
// belongs to.
type Session struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// TokenSet is the provider's response to a code exchange.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         *User  `json:"user"`
}

// Service implements the session boundary against the provider.
type Service struct {
	providerURL string
	apiKey      string
	client      *http.Client
	cookies     *sessions.CookieStore
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// New creates a Service. If logger is nil, a discard logger is used.
func New(cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cookieStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	cookieStore.MaxAge(86400 * 30) // 30 days
	cookieStore.Options.Path = "/"
	cookieStore.Options.HttpOnly = true
	cookieStore.Options.SameSite = http.SameSiteLaxMode

	return &Service{
		providerURL: strings.TrimSuffix(cfg.ProviderURL, "/"),
		apiKey:      cfg.APIKey,
		client:      &http.Client{Timeout: 10 * time.Second},
		cookies:     cookieStore,
		limiter:     rate.NewLimiter(exchangeRate, exchangeBurst),
		logger:      logger,
	}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool {
	return s.providerURL != ""
}

// CookieStore exposes the session store for handlers that need it.
func (s *Service) CookieStore() *sessions.CookieStore {
	return s.cookies
}

// Token extracts the bearer token from the request's session cookie.
// Empty means no session.
func (s *Service) Token(r *http.Request) string {
	session, err := s.cookies.Get(r, sessionName)
	if err != nil {
		return ""
	}
	token, _ := session.Values[tokenKey].(string)
	return token
}

// GetSession validates the request's token against the provider and
// returns the session with its user.
func (s *Service) GetSession(ctx context.Context, r *http.Request) (*Session, error) {
	token := s.Token(r)
	if token == "" {
		return nil, fmt.Errorf("no session")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.providerURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity provider rejected session: %s", resp.Status)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &Session{AccessToken: token, User: &user}, nil
}

// ExchangeCode trades an OAuth authorization code for a token set.
// Exchanges are rate limited; over-limit calls fail immediately.
func (s *Service) ExchangeCode(ctx context.Context, code string) (*TokenSet, error) {
	if !s.limiter.Allow() {
		return nil, fmt.Errorf("too many sign-in attempts")
	}

	body := strings.NewReader(url.Values{"auth_code": {code}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.providerURL+"/auth/v1/token?grant_type=authorization_code", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("code exchange failed: %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var tokens TokenSet
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("failed to decode token set: %w", err)
	}
	if tokens.AccessToken == "" {
		return nil, fmt.Errorf("code exchange returned no access token")
	}
	return &tokens, nil
}

// SetSession stores the access token in the session cookie.
func (s *Service) SetSession(w http.ResponseWriter, r *http.Request, token string) error {
	session, _ := s.cookies.Get(r, sessionName)
	session.Values[tokenKey] = token
	return session.Save(r, w)
}

// ClearSession drops the session cookie.
func (s *Service) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.cookies.Get(r, sessionName)
	delete(session.Values, tokenKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// SignOut revokes the token at the provider and clears the cookie. A
// provider failure is logged but still clears the local session.
func (s *Service) SignOut(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	token := s.Token(r)
	if token != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.providerURL+"/auth/v1/logout", nil)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("apikey", s.apiKey)
			if resp, err := s.client.Do(req); err != nil {
				s.logger.Warn("provider sign-out failed", "error", err)
			} else {
				_ = resp.Body.Close()
			}
		}
	}
	return s.ClearSession(w, r)
}

// Middleware gates /api routes behind a session cookie. With no
// provider configured it is a pass-through. The token is only checked
// for presence here; validation against the provider happens in the
// session endpoint, not per request.
func (s *Service) Middleware(next http.Handler) http.Handler {
	if !s.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}
		if s.Token(r) == "" {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("not signed in"), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
