// Package suap talks to the SUAP identity provider through the OAuth2
// authorization code flow.
package suap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	apperrors "ifnexus/internal/errors"
)

// Config holds the SUAP application registration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthURL      string
	TokenURL     string
	APIURL       string
}

// Profile is the subset of /api/eu/ the application stores.
type Profile struct {
	Email      string `json:"email"`
	Name       string `json:"nome"`
	ShortName  string `json:"nome_usual"`
	Enrollment string `json:"identificacao"`
	BirthDate  string `json:"data_de_nascimento"`
	CPF        string `json:"cpf"`
	Role       string `json:"tipo_usuario"`
	Campus     string `json:"campus"`
	Photo      string `json:"foto"`
}

// DisplayName prefers the short name SUAP users pick for themselves.
func (p Profile) DisplayName() string {
	if p.ShortName != "" {
		return p.ShortName
	}
	return p.Name
}

// Client performs the token exchange and fetches the user's profile.
type Client struct {
	oauth      *oauth2.Config
	apiURL     string
	httpClient *http.Client
}

// NewClient creates a SUAP client.
func NewClient(cfg Config) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiURL:     cfg.APIURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// AuthCodeURL is where the browser is sent to authorize the application.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for an access token.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSUAPTokenExchange, err)
	}
	return token, nil
}

// FetchProfile reads the authenticated user's profile.
func (c *Client) FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSUAPProfile, err)
	}
	req.Header.Set("Accept", "application/json")
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSUAPProfile, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", apperrors.ErrSUAPProfile, resp.StatusCode, body)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", apperrors.ErrSUAPProfile, err)
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("%w: profile has no email", apperrors.ErrSUAPProfile)
	}
	return &profile, nil
}
