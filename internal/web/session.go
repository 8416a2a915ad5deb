package web

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/config"
	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/core"
	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/logging"
)

// The cookie only carries the session id; uploads stay server side. It is
// a browser-session cookie: expiry is the store's sliding TTL, which is
// renewed on every run.
const (
	sessionCookie = "datacleaner"
	sessionIDKey  = "id"
)

func newCookieStore(cfg config.SessionConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// sessionID returns the request's session id, or "" when it has none. A
// cookie that fails verification counts as none.
func (s *Server) sessionID(r *http.Request) string {
	sess, err := s.cookies.Get(r, sessionCookie)
	if err != nil {
		logging.FromContext(r.Context()).Debug("ignoring session cookie", "error", err)
		return ""
	}
	id, _ := sess.Values[sessionIDKey].(string)
	if !core.ValidSessionID(id) {
		return ""
	}
	return id
}

// ensureSession returns the request's session id, issuing a new one and
// setting the cookie when needed.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) (string, error) {
	// A decode error still yields a usable new session.
	sess, _ := s.cookies.Get(r, sessionCookie)

	id, _ := sess.Values[sessionIDKey].(string)
	if core.ValidSessionID(id) {
		return id, nil
	}

	id = core.NewSessionID()
	sess.Values[sessionIDKey] = id
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return id, nil
}
