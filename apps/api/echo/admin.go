package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bouncebacklearning/backend/core"
	"github.com/bouncebacklearning/backend/core/admin"
)

type adminApi struct {
	svc      *admin.Service
	sessions sessions.Store
	validate *validator.Validate
	logger   core.Logger
}

func registerAdminAPI(g *echo.Group, adminOnly echo.MiddlewareFunc, api *adminApi) {
	ag := g.Group("/admin")
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout)
	ag.GET("/status", api.status)
	ag.GET("/stats", api.stats, adminOnly)
}

// Handlers

func (api *adminApi) login(ctx echo.Context) error {
	var data admin.LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ok, err := api.svc.Authenticate(data.Username, data.Password)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	if !ok {
		return errInvalidCredentials
	}

	sid := uuid.NewString()
	if _, err = api.svc.CreateSession(sid); err != nil {
		return errors.Wrap(err, "creating admin session")
	}

	sess := getSession(api.sessions, ctx)
	sess.Values[sessionAuthKey] = true
	sess.Values[sessionIDKey] = sid
	if err = sess.Save(ctx.Request(), ctx.Response()); err != nil {
		return errors.Wrap(err, "saving session")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Message: "Login successful", Authenticated: true})
}

func (api *adminApi) logout(ctx echo.Context) error {
	sess := getSession(api.sessions, ctx)
	if sid := sessionID(sess); sid != "" {
		if err := api.svc.EndSession(sid); err != nil {
			return errors.Wrap(err, "ending admin session")
		}
	}
	sess.Values[sessionAuthKey] = false
	delete(sess.Values, sessionIDKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(ctx.Request(), ctx.Response()); err != nil {
		return errors.Wrap(err, "saving session")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Logout successful"})
}

func (api *adminApi) status(ctx echo.Context) error {
	_, ok, err := activeSession(api.sessions, api.svc, ctx)
	if err != nil {
		return errors.Wrap(err, "checking admin session")
	}
	return ctx.JSON(http.StatusOK, StatusResponse{Authenticated: ok})
}

func (api *adminApi) stats(ctx echo.Context) error {
	stats, err := api.svc.Stats()
	if err != nil {
		return errors.Wrap(err, "computing stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}
