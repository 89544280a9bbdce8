package handler

import (
	"crypto/hmac"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vestibule-demo/internal/crypto"
)

const (
	stateCookieName = "__oauth_state"
	stateTTL        = 5 * time.Minute
)

// generateState issues a random state value and stores it, signed, in a
// short-lived cookie. The provider echoes the plain value back on the
// callback query string.
func (h *Handler) generateState(c *gin.Context) string {
	state := crypto.SecureToken(32)

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     stateCookieName,
		Value:    crypto.Sign(state, h.secret),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(stateTTL.Seconds()),
	})

	return state
}

func (h *Handler) validateState(c *gin.Context) bool {
	stateQuery := c.Query("state")
	if stateQuery == "" {
		return false
	}

	cookie, err := c.Request.Cookie(stateCookieName)
	if err != nil {
		return false
	}

	state, ok := crypto.Verify(cookie.Value, h.secret)
	if !ok {
		return false
	}

	return hmac.Equal([]byte(state), []byte(stateQuery))
}

func (h *Handler) clearState(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
