package middleware

import (
	"context"
	"net/http"

	"vestibule-demo/internal/crypto"
	"vestibule-demo/internal/session"
)

// unexported, collision-proof context key
type userIDContextKeyType struct{}

var userIDKey = userIDContextKeyType{}

// UserIDFromContext extracts the authenticated user ID from context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

type AuthMiddleware struct {
	Store  session.Store
	Secret []byte
}

func NewAuthMiddleware(store session.Store, secret []byte) *AuthMiddleware {
	return &AuthMiddleware{Store: store, Secret: secret}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read session cookie
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 2. Verify the cookie signature before touching the store
		sessionID, ok := crypto.Verify(cookie.Value, a.Secret)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 3. Load session (expired sessions read as not found)
		sess, err := a.Store.Get(r.Context(), sessionID)
		if err != nil || sess == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 4. Attach user_id to context
		ctx := context.WithValue(r.Context(), userIDKey, sess.UserID)

		// 5. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
