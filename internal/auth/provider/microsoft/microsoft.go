package microsoft

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"vestibule-demo/internal/auth"
)

const providerName = "microsoft"

// The multi-tenant "common" endpoint accepts both organizational and
// personal Microsoft accounts. Tokens it mints carry per-tenant issuers,
// so issuer validation is skipped and only signature, audience and
// expiry are enforced.
const (
	issuerCommon = "https://login.microsoftonline.com/common/v2.0"
	authURL      = "https://login.microsoftonline.com/common/oauth2/v2.0/authorize"
	tokenURL     = "https://login.microsoftonline.com/common/oauth2/v2.0/token"
	jwksURL      = "https://login.microsoftonline.com/common/discovery/v2.0/keys"
)

// Provider implements OAuth + OIDC authentication against Microsoft
// identity platform (Azure AD v2.0). The identity comes from the
// id_token returned alongside the access token.
type Provider struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
}

func New(
	ctx context.Context,
	clientID string,
	clientSecret string,
	redirectURL string,
) (*Provider, error) {

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("microsoft oauth config missing required fields")
	}

	// Remote key set fetches JWKS lazily at verification time, so no
	// network round-trip happens at startup.
	keySet := oidc.NewRemoteKeySet(ctx, jwksURL)
	verifier := oidc.NewVerifier(issuerCommon, keySet, &oidc.Config{
		ClientID:        clientID,
		SkipIssuerCheck: true,
	})

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
		Scopes: []string{
			oidc.ScopeOpenID,
			"profile",
			"email",
		},
	}

	return &Provider{
		oauthConfig: oauthCfg,
		verifier:    verifier,
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

// ExchangeCode exchanges the authorization code and returns a normalized
// identity extracted from the verified id_token claims.
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
		return nil, fmt.Errorf("microsoft token exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("microsoft did not return id_token")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("microsoft id_token verification failed: %w", err)
	}

	var claims struct {
		Subject           string `json:"sub"`
		Email             string `json:"email"`
		Name              string `json:"name"`
		PreferredUsername string `json:"preferred_username"`
	}

	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("microsoft id_token claims parse failed: %w", err)
	}

	if claims.Subject == "" {
		return nil, errors.New("microsoft id_token missing sub claim")
	}

	email := claims.Email
	if email == "" && strings.Contains(claims.PreferredUsername, "@") {
		// Organizational accounts often omit the email claim; the UPN
		// in preferred_username is the working address in that case.
		email = claims.PreferredUsername
	}
	if email == "" {
		return nil, errors.New("microsoft id_token missing email")
	}

	return &auth.Identity{
		Provider:       providerName,
		ProviderUserID: claims.Subject,
		Email:          email,
		EmailVerified:  claims.Email != "",
		Name:           claims.Name,
		Username:       claims.PreferredUsername,
	}, nil
}
