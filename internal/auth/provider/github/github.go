package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"

	"vestibule-demo/internal/auth"
)

const providerName = "github"

const (
	defaultAuthBase = "https://github.com"
	defaultAPIBase  = "https://api.github.com"
)

// Provider implements OAuth authentication against GitHub.
// GitHub issues plain OAuth tokens (no id_token), so the identity is
// fetched from the user API after the code exchange.
type Provider struct {
	oauthConfig *oauth2.Config
	apiBase     string
}

type githubUser struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func New(
	clientID string,
	clientSecret string,
	redirectURL string,
) (*Provider, error) {

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("github oauth config missing required fields")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:  defaultAuthBase + "/login/oauth/authorize",
			TokenURL: defaultAuthBase + "/login/oauth/access_token",
		},
		Scopes: []string{
			"read:user",
			"user:email",
		},
	}

	return &Provider{
		oauthConfig: oauthCfg,
		apiBase:     defaultAPIBase,
	}, nil
}

// Name returns the provider identifier used by the registry.
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL builds the OAuth authorization URL with PKCE parameters.
func (p *Provider) AuthCodeURL(state string, codeChallenge string) string {
	return p.oauthConfig.AuthCodeURL(
		state,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

// ExchangeCode exchanges the authorization code, then resolves the
// identity from the GitHub user and emails APIs. The primary verified
// email wins; the profile email is a fallback.
func (p *Provider) ExchangeCode(
	ctx context.Context,
	code string,
	codeVerifier string,
) (*auth.Identity, error) {

	token, err := p.oauthConfig.Exchange(
		ctx,
		code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
	)
	if err != nil {
		return nil, fmt.Errorf("github token exchange failed: %w", err)
	}

	var user githubUser
	if err := p.apiGet(ctx, token, "/user", &user); err != nil {
		return nil, fmt.Errorf("github user fetch failed: %w", err)
	}

	if user.ID == 0 {
		return nil, errors.New("github user response missing id")
	}

	identity := &auth.Identity{
		Provider:       providerName,
		ProviderUserID: strconv.Itoa(user.ID),
		Email:          user.Email,
		Name:           user.Name,
		Username:       user.Login,
		AvatarURL:      user.AvatarURL,
	}

	var emails []githubEmail
	if err := p.apiGet(ctx, token, "/user/emails", &emails); err != nil {
		return nil, fmt.Errorf("github emails fetch failed: %w", err)
	}

	for _, e := range emails {
		if e.Email == "" {
			continue
		}
		if e.Primary {
			identity.Email = e.Email
			identity.EmailVerified = e.Verified
			break
		}
	}

	if identity.Email == "" {
		return nil, errors.New("github account has no usable email")
	}

	return identity, nil
}

func (p *Provider) apiGet(
	ctx context.Context,
	token *oauth2.Token,
	path string,
	out any,
) error {

	client := p.oauthConfig.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBase+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github api %s returned %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
