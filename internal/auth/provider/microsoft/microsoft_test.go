package microsoft

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestNewRequiresAllFields(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, "", "secret", "http://localhost:8000/auth/microsoft/callback")
	assert.Error(t, err)

	_, err = New(ctx, "id", "secret", "")
	assert.Error(t, err)

	p, err := New(ctx, "id", "secret", "http://localhost:8000/auth/microsoft/callback")
	require.NoError(t, err)
	assert.Equal(t, "microsoft", p.Name())
}

func TestAuthCodeURL(t *testing.T) {
	p, err := New(
		context.Background(),
		"client-id",
		"client-secret",
		"http://localhost:8000/auth/microsoft/callback",
	)
	require.NoError(t, err)

	raw := p.AuthCodeURL("state-123", "challenge-abc")

	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "login.microsoftonline.com", u.Host)
	assert.Equal(t, "/common/oauth2/v2.0/authorize", u.Path)

	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "challenge-abc", q.Get("code_challenge"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.Contains(t, q.Get("scope"), "openid")
}

// unsignedIDToken builds a structurally valid JWT whose signature is
// garbage; tests pair it with a verifier that skips signature checks.
func unsignedIDToken(t *testing.T, claims map[string]any) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))

	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	return header + "." +
		base64.RawURLEncoding.EncodeToString(payload) + "." +
		base64.RawURLEncoding.EncodeToString([]byte("sig"))
}

func newTestProvider(tokenURL string, idToken string) *Provider {
	verifier := oidc.NewVerifier(issuerCommon, nil, &oidc.Config{
		ClientID:                   "client-id",
		SkipIssuerCheck:            true,
		InsecureSkipSignatureCheck: true,
	})

	return &Provider{
		oauthConfig: &oauth2.Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "http://localhost:8000/auth/microsoft/callback",
			Endpoint: oauth2.Endpoint{
				TokenURL: tokenURL,
			},
		},
		verifier: verifier,
	}
}

func newTokenServer(t *testing.T, idToken string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if idToken == "" {
			w.Write([]byte(`{"access_token":"at","token_type":"bearer"}`))
			return
		}
		fmt.Fprintf(w, `{"access_token":"at","token_type":"bearer","id_token":%q}`, idToken)
	}))
}

func TestExchangeCode(t *testing.T) {
	idToken := unsignedIDToken(t, map[string]any{
		"iss":                "https://login.microsoftonline.com/tenant-1/v2.0",
		"aud":                "client-id",
		"exp":                time.Now().Add(time.Hour).Unix(),
		"sub":                "subject-1",
		"email":              "person@contoso.com",
		"name":               "Person Example",
		"preferred_username": "person@contoso.com",
	})

	srv := newTokenServer(t, idToken)
	defer srv.Close()

	p := newTestProvider(srv.URL, idToken)

	identity, err := p.ExchangeCode(context.Background(), "auth-code", "verifier-xyz")
	require.NoError(t, err)

	assert.Equal(t, "microsoft", identity.Provider)
	assert.Equal(t, "subject-1", identity.ProviderUserID)
	assert.Equal(t, "person@contoso.com", identity.Email)
	assert.True(t, identity.EmailVerified)
	assert.Equal(t, "Person Example", identity.Name)
}

func TestExchangeCodeFallsBackToUPN(t *testing.T) {
	// Organizational accounts often omit the email claim.
	idToken := unsignedIDToken(t, map[string]any{
		"iss":                "https://login.microsoftonline.com/tenant-1/v2.0",
		"aud":                "client-id",
		"exp":                time.Now().Add(time.Hour).Unix(),
		"sub":                "subject-2",
		"preferred_username": "worker@contoso.com",
	})

	srv := newTokenServer(t, idToken)
	defer srv.Close()

	p := newTestProvider(srv.URL, idToken)

	identity, err := p.ExchangeCode(context.Background(), "auth-code", "verifier-xyz")
	require.NoError(t, err)

	assert.Equal(t, "worker@contoso.com", identity.Email)
	assert.False(t, identity.EmailVerified)
}

func TestExchangeCodeMissingIDToken(t *testing.T) {
	srv := newTokenServer(t, "")
	defer srv.Close()

	p := newTestProvider(srv.URL, "")

	_, err := p.ExchangeCode(context.Background(), "auth-code", "verifier-xyz")
	assert.ErrorContains(t, err, "did not return id_token")
}
