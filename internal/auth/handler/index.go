package handler

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"vestibule-demo/internal/auth"
	"vestibule-demo/internal/crypto"
	"vestibule-demo/internal/session"
)

var indexTemplate = template.Must(template.New("index.html").Parse(`<!DOCTYPE html>
<html>
<head><title>Vestibule Demo</title></head>
<body>
  <h1>Vestibule Demo</h1>
  {{if .User}}
    <p>Signed in as <strong>{{.User.Name}}</strong> ({{.User.Email}})</p>
    {{if .User.AvatarURL}}<img src="{{.User.AvatarURL}}" width="64" height="64" alt="avatar">{{end}}
    <form method="post" action="/logout"><button type="submit">Log out</button></form>
  {{else}}
    <ul>
    {{range .Providers}}
      <li><a href="/auth/{{.}}">Sign in with {{.}}</a></li>
    {{end}}
    </ul>
  {{end}}
</body>
</html>
`))

type indexData struct {
	Providers []string
	User      *auth.User
}

// index renders the login page, or the signed-in user when a valid
// session cookie is present. Auth is optional here, so the session is
// read inline rather than through the middleware.
func (h *Handler) index(c *gin.Context) {
	data := indexData{
		Providers: h.providers.Names(),
	}

	if user := h.currentUser(c); user != nil {
		data.User = user
	}

	c.HTML(http.StatusOK, "index.html", data)
}

func (h *Handler) currentUser(c *gin.Context) *auth.User {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	sessionID, ok := crypto.Verify(cookie.Value, h.secret)
	if !ok {
		return nil
	}

	sess, err := h.sessionStore.Get(c.Request.Context(), sessionID)
	if err != nil || sess == nil {
		return nil
	}

	user, err := h.resolver.User(c.Request.Context(), sess.UserID)
	if err != nil {
		return nil
	}
	return user
}
