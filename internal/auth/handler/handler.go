package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"vestibule-demo/internal/auth/provider"
	"vestibule-demo/internal/auth/resolver"
	"vestibule-demo/internal/crypto"
	"vestibule-demo/internal/logger"
	"vestibule-demo/internal/middleware"
	"vestibule-demo/internal/session"
)

const sessionTTL = 24 * time.Hour

type Handler struct {
	providers     *provider.Registry
	sessionStore  session.Store
	resolver      resolver.Resolver
	secret        []byte
	secureCookies bool
}

func NewHandler(
	registry *provider.Registry,
	sessionStore session.Store,
	resolver resolver.Resolver,
	secret []byte,
	baseURL string,
) *Handler {
	return &Handler{
		providers:     registry,
		sessionStore:  sessionStore,
		resolver:      resolver,
		secret:        secret,
		secureCookies: strings.HasPrefix(baseURL, "https://"),
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.SetHTMLTemplate(indexTemplate)

	r.GET("/", h.index)
	r.GET("/auth/:provider", h.authorize)
	r.GET("/auth/:provider/callback", h.callback)
	r.POST("/logout", h.logout)
}

// authorize starts the OAuth flow: issue state + PKCE cookies, then
// redirect the browser to the provider's authorization page.
func (h *Handler) authorize(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	state := h.generateState(c)
	_, codeChallenge := h.generatePKCE(c)

	authURL := p.AuthCodeURL(state, codeChallenge)
	c.Redirect(http.StatusFound, authURL)
}

func (h *Handler) callback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	if !h.validateState(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid state",
		})
		return
	}
	h.clearState(c)

	// Provider-reported errors (user denied consent, etc.) restart the
	// flow from the index page rather than failing the request.
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		c.Redirect(http.StatusFound, "/")
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error", nil)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "missing pkce verifier",
		})
		return
	}

	identity, err := p.ExchangeCode(
		c.Request.Context(),
		code,
		codeVerifier,
	)
	if err != nil {
		logger.Error("oauth code exchange failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "authentication failed",
		})
		return
	}

	userID, err := h.resolver.Resolve(c.Request.Context(), identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to resolve user",
		})
		return
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to create session",
		})
		return
	}

	now := time.Now()
	sess := session.Session{
		SessionID: sessionID,
		UserID:    userID,
		Provider:  providerName,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}

	if err := h.sessionStore.Create(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to persist session",
		})
		return
	}

	session.SetCookie(c.Writer, crypto.Sign(sessionID, h.secret), sess.ExpiresAt, session.CookieOptions{
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	logger.Info("login succeeded", map[string]any{
		"provider": providerName,
		"user_id":  userID,
		"ip":       c.ClientIP(),
	})

	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		if sessionID, ok := crypto.Verify(cookie.Value, h.secret); ok {
			// Best-effort delete; the cookie is cleared either way.
			_ = h.sessionStore.Delete(c.Request.Context(), sessionID)
			logger.Info("logout", map[string]any{
				"ip": c.ClientIP(),
			})
		}
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Path:     "/",
		Secure:   h.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	c.Redirect(http.StatusSeeOther, "/")
}

// Me returns the authenticated user. Mounted behind the auth middleware.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.resolver.User(c.Request.Context(), userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":    user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"username":   user.Username,
		"avatar_url": user.AvatarURL,
	})
}
