package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/bouncebacklearning/backend/core"
	"github.com/bouncebacklearning/backend/core/admin"
	"github.com/bouncebacklearning/backend/core/feedback"
	"github.com/bouncebacklearning/backend/core/paper"
	"github.com/bouncebacklearning/backend/core/video"
)

type (
	ServerDeps struct {
		Conf        *core.Config
		Logger      core.Logger
		PaperSvc    *paper.Service
		VideoSvc    *video.Service
		FeedbackSvc *feedback.Service
		AdminSvc    *admin.Service
		Files       core.FileStore
		Validate    *validator.Validate
		Translator  ut.Translator
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		sessions sessions.Store
		metrics  *metrics
		errors   chan error
		shutdown chan os.Signal
	}
)

// localDir is implemented by file stores that can be served as static files.
type localDir interface {
	Dir() string
}

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		sessions: newSessionStore(deps.Conf.Session),
		metrics:  newMetrics(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(s.metrics.middleware)

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)
	if ld, ok := s.deps.Files.(localDir); ok {
		s.app.Static("/uploads", ld.Dir())
	}

	g := s.app.Group("/api")
	adminOnly := s.adminMiddleware

	registerPaperAPI(g, adminOnly, &paperApi{
		svc:      s.deps.PaperSvc,
		files:    s.deps.Files,
		maxSize:  conf.Upload.MaxSize,
		validate: s.deps.Validate,
		logger:   s.deps.Logger,
		metrics:  s.metrics,
	})
	registerVideoAPI(g, adminOnly, &videoApi{
		svc:      s.deps.VideoSvc,
		validate: s.deps.Validate,
		metrics:  s.metrics,
	})
	registerFeedbackAPI(g, adminOnly, &feedbackApi{
		svc:      s.deps.FeedbackSvc,
		validate: s.deps.Validate,
	})
	registerAdminAPI(g, adminOnly, &adminApi{
		svc:      s.deps.AdminSvc,
		sessions: s.sessions,
		validate: s.deps.Validate,
		logger:   s.deps.Logger,
	})
}

// Start listens on the configured address. Listener errors are reported on Errors().
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.deps.Logger.Info("API listening on " + s.deps.Conf.Server.Address)
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

// MetricsHandler exposes the server's Prometheus registry.
func (s *Server) MetricsHandler() http.Handler {
	return s.metrics.handler()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to BounceBack Learning API!")
}
