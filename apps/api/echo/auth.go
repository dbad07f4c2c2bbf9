package echoapi

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bouncebacklearning/backend/core"
	"github.com/bouncebacklearning/backend/core/admin"
)

const (
	sessionName       = "bbl_admin"
	sessionAuthKey    = "isAuthenticated"
	sessionIDKey      = "sessionId"
	contextSessionKey = "adminSession"
)

func newSessionStore(conf core.SessionConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(conf.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(conf.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   conf.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// getSession never returns nil: an undecodable cookie yields a fresh session.
func getSession(store sessions.Store, ctx echo.Context) *sessions.Session {
	sess, err := store.Get(ctx.Request(), sessionName)
	if sess == nil || err != nil {
		sess = sessions.NewSession(store, sessionName)
		if cs, ok := store.(*sessions.CookieStore); ok {
			opts := *cs.Options
			sess.Options = &opts
		}
	}
	return sess
}

func sessionID(sess *sessions.Session) string {
	if ok, _ := sess.Values[sessionAuthKey].(bool); !ok {
		return ""
	}
	sid, _ := sess.Values[sessionIDKey].(string)
	return sid
}

// activeSession returns the admin session behind the request cookie. The cookie only names
// the session: it counts while its record is still authenticated, so a logout revokes every
// copy of the cookie.
func activeSession(store sessions.Store, svc *admin.Service, ctx echo.Context) (admin.Session, bool, error) {
	sid := sessionID(getSession(store, ctx))
	if sid == "" {
		return admin.Session{}, false, nil
	}
	return svc.ActiveSession(sid)
}

// adminMiddleware rejects requests without an active admin session.
func (s *Server) adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		sess, ok, err := activeSession(s.sessions, s.deps.AdminSvc, ctx)
		if err != nil {
			return errors.Wrap(err, "checking admin session")
		}
		if !ok {
			return errUnauthorized
		}
		ctx.Set(contextSessionKey, sess)
		return next(ctx)
	}
}
