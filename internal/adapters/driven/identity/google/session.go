package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/oauth"
	"github.com/custodia-labs/mcc-cli/internal/core/domain"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mcc-cli/internal/logger"
)

// Ensure Session implements the interface.
var _ driven.IdentityProvider = (*Session)(nil)

const (
	// defaultTokenTTL applies when the token endpoint omits expires_in.
	defaultTokenTTL = 55 * time.Minute
	// expiryLeeway drops cached tokens before Google does.
	expiryLeeway = time.Minute
	// defaultCallbackTimeout bounds how long sign-in waits for the browser.
	defaultCallbackTimeout = 5 * time.Minute
	// profileKeyPrefix namespaces cached profiles, keyed by access token.
	profileKeyPrefix = "profile:"
)

// Config configures a Session.
type Config struct {
	ClientID     string
	ClientSecret string
	Scopes       []string

	// Endpoint overrides Google's OAuth endpoints.
	Endpoint oauth2.Endpoint
	// UserinfoEndpoint overrides the userinfo API base URL.
	UserinfoEndpoint string
	// HTTPClient is used for token requests. Nil uses http.DefaultClient.
	HTTPClient *http.Client
	// OpenURL presents the consent URL to the user. Nil opens the browser.
	OpenURL func(url string) error
	// CallbackTimeout bounds the wait for the redirect.
	CallbackTimeout time.Duration
}

// Session obtains Google access tokens and profiles for one process.
type Session struct {
	id     string
	cfg    Config
	grants driven.GrantStore
	cache  *gocache.Cache

	mu      sync.Mutex
	current string
}

// NewSession creates a session backed by the given grant store.
func NewSession(cfg Config, grants driven.GrantStore) *Session {
	if cfg.Endpoint.AuthURL == "" {
		cfg.Endpoint = googleoauth.Endpoint
	}
	if cfg.OpenURL == nil {
		cfg.OpenURL = oauth.OpenBrowser
	}
	if cfg.CallbackTimeout == 0 {
		cfg.CallbackTimeout = defaultCallbackTimeout
	}
	return &Session{
		id:     uuid.NewString(),
		cfg:    cfg,
		grants: grants,
		cache:  gocache.New(defaultTokenTTL, 10*time.Minute),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// GetToken returns an access token for the request.
//
// Without SelectAccount the cached token or stored grant for the account is
// tried first; an empty account means the most recently used one. Silent
// requests with neither return domain.ErrNoCachedGrant. Interactive requests
// fall back to the consent flow when the grant is missing or rejected.
func (s *Session) GetToken(ctx context.Context, req driven.TokenRequest) (string, error) {
	if s.cfg.ClientID == "" {
		return "", fmt.Errorf("%w: OAuth client id is not configured (run 'mcc auth setup')", domain.ErrConfig)
	}
	scopes := req.Scopes
	if len(scopes) == 0 {
		scopes = s.cfg.Scopes
	}
	if len(scopes) == 0 {
		return "", fmt.Errorf("%w: no OAuth scopes configured", domain.ErrConfig)
	}

	if !req.SelectAccount {
		email, err := s.resolveAccount(ctx, req.Account)
		if err != nil {
			return "", err
		}
		if email != "" {
			token, err := s.silentToken(ctx, email, scopes)
			if err == nil {
				return token, nil
			}
			// Missing and rejected grants both need fresh consent.
			if !errors.Is(err, domain.ErrAuth) || !req.Interactive {
				return "", err
			}
			logger.Debug("session %s: %v, signing in again", s.id, err)
		} else if !req.Interactive {
			return "", domain.ErrNoCachedGrant
		}
	}
	if !req.Interactive {
		return "", fmt.Errorf("%w: account selection requires an interactive request", domain.ErrInvalidInput)
	}
	return s.interactiveToken(ctx, req.Account, scopes)
}

// ClearCachedTokens drops every cached access token and forgets the
// current account so the next interactive request shows the picker.
func (s *Session) ClearCachedTokens(_ context.Context) error {
	s.cache.Flush()
	s.mu.Lock()
	s.current = ""
	s.mu.Unlock()
	logger.Debug("session %s: cleared cached tokens", s.id)
	return nil
}

// RemoveCachedToken drops a single cached access token and its profile.
// Stored grants are kept.
func (s *Session) RemoveCachedToken(_ context.Context, token string) error {
	for email, item := range s.cache.Items() {
		if tok, ok := item.Object.(*oauth2.Token); ok && tok.AccessToken == token {
			s.cache.Delete(email)
		}
	}
	s.cache.Delete(profileKeyPrefix + token)
	return nil
}

// FetchProfile returns the profile of the token's owner. Profiles seen
// during sign-in are served from the cache.
func (s *Session) FetchProfile(ctx context.Context, token string) (*domain.Profile, error) {
	if cached, ok := s.cache.Get(profileKeyPrefix + token); ok {
		if p, ok := cached.(*domain.Profile); ok {
			profile := *p
			return &profile, nil
		}
	}

	opts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		})),
	}
	if s.cfg.UserinfoEndpoint != "" {
		opts = append(opts, option.WithEndpoint(s.cfg.UserinfoEndpoint))
	}

	svc, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create userinfo service: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, mapProfileError(err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("%w: profile has no email (is the userinfo.email scope granted?)", domain.ErrAuth)
	}

	return &domain.Profile{
		ID:      info.Id,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

// resolveAccount returns the hint, the current account, or the account
// whose grant was most recently updated.
func (s *Session) resolveAccount(ctx context.Context, hint string) (string, error) {
	if hint != "" {
		return hint, nil
	}
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if current != "" {
		return current, nil
	}
	if s.grants == nil {
		return "", nil
	}

	grants, err := s.grants.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list grants: %w", err)
	}
	if len(grants) == 0 {
		return "", nil
	}
	sort.SliceStable(grants, func(i, j int) bool {
		return grants[i].UpdatedAt.After(grants[j].UpdatedAt)
	})
	return grants[0].Email, nil
}

// silentToken returns a cached token or refreshes the stored grant.
func (s *Session) silentToken(ctx context.Context, email string, scopes []string) (string, error) {
	if cached, ok := s.cache.Get(email); ok {
		if tok, ok := cached.(*oauth2.Token); ok && tok.Valid() {
			s.setCurrent(email)
			return tok.AccessToken, nil
		}
	}
	if s.grants == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrNoCachedGrant, email)
	}

	grant, err := s.grants.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && !grant.HasRefreshToken()) {
		return "", fmt.Errorf("%w: %s", domain.ErrNoCachedGrant, email)
	}
	if err != nil {
		return "", fmt.Errorf("load grant for %s: %w", email, err)
	}
	if !grantCovers(grant.Scopes, scopes) {
		logger.Debug("session %s: grant for %s lacks scopes, re-consent needed", s.id, email)
		return "", fmt.Errorf("%w: %s (scopes changed)", domain.ErrNoCachedGrant, email)
	}

	logger.Debug("session %s: refreshing access token for %s", s.id, email)
	conf := s.oauthConfig("", scopes)
	tok, err := conf.TokenSource(s.httpContext(ctx), &oauth2.Token{RefreshToken: grant.RefreshToken}).Token()
	if err != nil {
		if isInvalidGrant(err) {
			if derr := s.grants.Delete(ctx, email); derr != nil && !errors.Is(derr, domain.ErrNotFound) {
				logger.Warn("delete rejected grant for %s: %v", email, derr)
			}
		}
		return "", mapTokenError("refresh token for "+email, err)
	}
	if tok.RefreshToken != "" && tok.RefreshToken != grant.RefreshToken {
		grant.RefreshToken = tok.RefreshToken
		if err := s.grants.Save(ctx, *grant); err != nil {
			logger.Warn("save rotated refresh token for %s: %v", email, err)
		}
	}

	s.cacheToken(email, tok)
	s.setCurrent(email)
	return tok.AccessToken, nil
}

// interactiveToken runs the browser consent flow.
func (s *Session) interactiveToken(ctx context.Context, loginHint string, scopes []string) (string, error) {
	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()

	server := oauth.NewCallbackServer(0, state)
	if err := server.Start(); err != nil {
		return "", fmt.Errorf("start callback server: %w", err)
	}
	defer func() { _ = server.Stop() }()

	conf := s.oauthConfig(server.RedirectURI(), scopes)
	opts := []oauth2.AuthCodeOption{
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("prompt", "select_account consent"),
	}
	if loginHint != "" {
		opts = append(opts, oauth2.SetAuthURLParam("login_hint", loginHint))
	}
	authURL := conf.AuthCodeURL(state, opts...)

	logger.Info("session %s: waiting for Google sign-in", s.id)
	if err := s.cfg.OpenURL(authURL); err != nil {
		logger.Warn("open browser: %v (visit %s)", err, authURL)
	}

	code, err := server.WaitForCode(ctx, s.cfg.CallbackTimeout)
	if err != nil {
		if errors.Is(err, oauth.ErrCallback) {
			return "", fmt.Errorf("%w: %w", domain.ErrAuth, err)
		}
		return "", err
	}

	tok, err := conf.Exchange(s.httpContext(ctx), code, oauth2.VerifierOption(verifier))
	if err != nil {
		return "", mapTokenError("exchange code", err)
	}

	profile, err := s.FetchProfile(ctx, tok.AccessToken)
	if err != nil {
		return "", err
	}

	if tok.RefreshToken != "" && s.grants != nil {
		grant := domain.Grant{
			ID:           uuid.NewString(),
			Email:        profile.Email,
			RefreshToken: tok.RefreshToken,
			Scopes:       append([]string(nil), scopes...),
		}
		if err := s.grants.Save(ctx, grant); err != nil {
			return "", fmt.Errorf("%w: save grant for %s: %w", domain.ErrStorage, profile.Email, err)
		}
	}

	s.cacheToken(profile.Email, tok)
	s.cacheProfile(tok, profile)
	s.setCurrent(profile.Email)
	logger.Info("session %s: signed in as %s", s.id, profile.Email)
	return tok.AccessToken, nil
}

func (s *Session) oauthConfig(redirectURL string, scopes []string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.ClientID,
		ClientSecret: s.cfg.ClientSecret,
		Endpoint:     s.cfg.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
	}
}

func (s *Session) httpContext(ctx context.Context) context.Context {
	if s.cfg.HTTPClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, s.cfg.HTTPClient)
}

func (s *Session) cacheToken(email string, tok *oauth2.Token) {
	if ttl, ok := tokenTTL(tok); ok {
		s.cache.Set(email, tok, ttl)
	}
}

// cacheProfile keeps the profile for as long as the token it was fetched with.
func (s *Session) cacheProfile(tok *oauth2.Token, profile *domain.Profile) {
	if ttl, ok := tokenTTL(tok); ok {
		s.cache.Set(profileKeyPrefix+tok.AccessToken, profile, ttl)
	}
}

func tokenTTL(tok *oauth2.Token) (time.Duration, bool) {
	if tok.Expiry.IsZero() {
		return gocache.DefaultExpiration, true
	}
	ttl := time.Until(tok.Expiry) - expiryLeeway
	return ttl, ttl > 0
}

func (s *Session) setCurrent(email string) {
	s.mu.Lock()
	s.current = email
	s.mu.Unlock()
}

// grantCovers reports whether granted includes every wanted scope.
// Grants saved without scopes are assumed to cover any request.
func grantCovers(granted, wanted []string) bool {
	if len(granted) == 0 {
		return true
	}
	have := make(map[string]bool, len(granted))
	for _, s := range granted {
		have[strings.TrimSpace(s)] = true
	}
	for _, w := range wanted {
		if !have[strings.TrimSpace(w)] {
			return false
		}
	}
	return true
}
