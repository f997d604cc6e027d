// Package idp is the client for the Keycloak-style identity provider:
// direct-grant login, token refresh, and remote logout over its
// openid-connect endpoints, plus claim extraction from issued tokens.
package idp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrAuthenticationFailed is returned when the provider rejects credentials
// or the token exchange cannot complete.
var ErrAuthenticationFailed = errors.New("authentication failed")

// TokenSet is the provider's response to a successful token exchange.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Client calls one Keycloak realm's openid-connect endpoints.
type Client struct {
	BaseURL  string
	Realm    string
	ClientID string
	HTTP     *http.Client
}

// NewClient returns a Client for the realm at baseURL. httpClient may be nil,
// in which case a default client with a sane timeout is used. The client
// must not be the credential-attaching one: provider requests are never
// decorated with the tokens the provider itself issued.
func NewClient(baseURL, realm, clientID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		Realm:    realm,
		ClientID: clientID,
		HTTP:     httpClient,
	}
}

func (c *Client) endpoint(name string) string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/%s", c.BaseURL, c.Realm, name)
}

// IsIdentityURL reports whether u targets this provider. The credential
// attacher uses this to avoid recursively decorating provider requests.
func (c *Client) IsIdentityURL(u *url.URL) bool {
	if u == nil {
		return false
	}
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, base.Host)
}

// tokenResponse is the provider's JSON token payload.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Login exchanges username/password for a token set (direct access grant).
// Provider rejection and transport failure both wrap ErrAuthenticationFailed.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenSet, error) {
	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {c.ClientID},
		"username":   {username},
		"password":   {password},
	}
	return c.exchange(ctx, form)
}

// Refresh exchanges a refresh token for a new token set.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenSet, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {c.ClientID},
		"refresh_token": {refreshToken},
	}
	return c.exchange(ctx, form)
}

// Logout invalidates the provider-side session for the refresh token.
// Best-effort: callers clear local state regardless of the outcome.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	form := url.Values{
		"client_id":     {c.ClientID},
		"refresh_token": {refreshToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("logout"), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("idp: logout returned %s", resp.Status)
	}
	return nil
}

func (c *Client) exchange(ctx context.Context, form url.Values) (*TokenSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("token"), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: token endpoint returned %s", ErrAuthenticationFailed, resp.Status)
	}
	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("%w: malformed token response: %v", ErrAuthenticationFailed, err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response missing access_token", ErrAuthenticationFailed)
	}
	return &TokenSet{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    time.Now().UTC().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}, nil
}
