package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	echoapi "github.com/bouncebacklearning/backend/apps/api/echo"
	"github.com/bouncebacklearning/backend/assets"
	"github.com/bouncebacklearning/backend/core"
	"github.com/bouncebacklearning/backend/core/admin"
	"github.com/bouncebacklearning/backend/core/feedback"
	"github.com/bouncebacklearning/backend/core/paper"
	"github.com/bouncebacklearning/backend/core/user"
	"github.com/bouncebacklearning/backend/core/video"
	emailsvc "github.com/bouncebacklearning/backend/services/email"
	logsvc "github.com/bouncebacklearning/backend/services/logger"
	inmemdb "github.com/bouncebacklearning/backend/storage/database/inmem"
	"github.com/bouncebacklearning/backend/storage/files/localstore"
	"github.com/bouncebacklearning/backend/storage/files/s3store"
	"github.com/bouncebacklearning/backend/storage/seed"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	paper.InitValidators(validate, translator)
	video.InitValidators(validate, translator)

	core.ParseEmailTemplates(assets.FS, logger)

	// set up store & services
	db := inmemdb.Open()

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	paperSvc := paper.NewService(inmemdb.NewPaperRepository(db))
	videoSvc := video.NewService(inmemdb.NewVideoRepository(db))
	feedbackSvc := feedback.NewService(inmemdb.NewFeedbackRepository(db), mailSvc, conf.FeedbackNotifyEmail)

	auth, err := newAuthenticator(conf, validate, user.NewService(inmemdb.NewUserRepository(db)))
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up admin authentication: %v", err), err)
	}
	adminSvc := admin.NewService(
		inmemdb.NewSessionRepository(db),
		auth,
		admin.Sources{Papers: paperSvc, Videos: videoSvc, Feedback: feedbackSvc},
	)

	files, err := newFileStore(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up file storage: %v", err), err)
	}

	if conf.SeedSampleData {
		if err = seedSampleData(validate, paperSvc, videoSvc); err != nil {
			logger.Fatal(fmt.Sprintf("seeding sample data: %v", err), err)
		}
		logger.Info("Sample data loaded")
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:        conf,
		Logger:      logger,
		PaperSvc:    paperSvc,
		VideoSvc:    videoSvc,
		FeedbackSvc: feedbackSvc,
		AdminSvc:    adminSvc,
		Files:       files,
		Validate:    validate,
		Translator:  translator,
	})

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - profiling
	// /debug/vars - expvar
	// /metrics - Prometheus

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	if conf.Server.DebugHost != "" {
		go func() {
			logger.Info("Debug listening on " + conf.Server.DebugHost)
			if err := http.ListenAndServe(conf.Server.DebugHost, debugMux(server)); err != nil {
				logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
			}
		}()
	}

	// =========================================================================
	// Start API Service

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// newAuthenticator returns the configured admin Authenticator. The "users" authenticator
// gets the configured admin account created on start.
func newAuthenticator(conf *core.Config, validate *validator.Validate, users *user.Service) (admin.Authenticator, error) {
	switch conf.Admin.Authenticator {
	case "", "static":
		return admin.NewStaticAuthenticator(conf.Admin.Username, conf.Admin.Password), nil
	case "users":
		nu := user.NewUser{Username: conf.Admin.Username, Password: conf.Admin.Password}
		if err := nu.Validate(validate); err != nil {
			return nil, errors.Wrap(err, "admin account")
		}
		if _, err := users.Create(nu); err != nil {
			return nil, errors.Wrap(err, "creating admin account")
		}
		return admin.NewUserAuthenticator(users), nil
	default:
		return nil, errors.Errorf("unknown authenticator %q", conf.Admin.Authenticator)
	}
}

func newFileStore(conf *core.Config) (core.FileStore, error) {
	switch conf.Storage.Backend {
	case core.StorageLocal:
		return localstore.New(conf.Upload.Dir)
	case core.StorageS3:
		return s3store.New(context.Background(), conf.S3)
	default:
		return nil, errors.Errorf("unknown storage backend %q", conf.Storage.Backend)
	}
}

func seedSampleData(validate *validator.Validate, papers *paper.Service, videos *video.Service) error {
	data, err := seed.Load(assets.FS, seed.SamplePath)
	if err != nil {
		return err
	}
	return seed.Apply(data, validate, papers, videos)
}

func debugMux(server *echoapi.Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/vars", expvar.Handler())
	mux.Handle("/metrics", server.MetricsHandler())
	return mux
}
