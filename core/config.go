package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Supported environments
const (
	EnvDev  = "DEV"
	EnvTest = "TEST"
	EnvQA   = "QA"
	EnvProd = "PROD"
)

// Storage backends
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type (
	Config struct {
		Env      string
		Build    string
		Debug    bool
		TestMode bool
		AppName  string

		Server  ServerConfig
		Session SessionConfig
		Admin   AdminConfig
		Upload  UploadConfig
		Storage StorageConfig
		S3      S3Config

		RollbarToken        string
		SendgridApiKey      string
		DefaultFromEmail    mail.Address
		FeedbackNotifyEmail string
		SeedSampleData      bool
	}

	ServerConfig struct {
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	SessionConfig struct {
		Secret string
		MaxAge time.Duration
		Secure bool
	}

	AdminConfig struct {
		// Authenticator is either "static" (the configured pair) or "users" (the user table).
		Authenticator string
		Username      string
		Password      string
	}

	UploadConfig struct {
		Dir     string
		MaxSize int64
	}

	StorageConfig struct {
		Backend string
	}

	S3Config struct {
		Bucket    string
		Region    string
		Endpoint  string
		AccessKey string
		SecretKey string
	}
)

// DefaultSessionSecret signs session cookies unless session.secret is set.
// Only DEV and TEST may run with it.
const DefaultSessionSecret = "bounceback-learning-secret-key"

func defaultConfig(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("appName", "BounceBack Learning")
	v.SetDefault("build", "dev")

	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)

	v.SetDefault("session.secret", DefaultSessionSecret)
	v.SetDefault("session.maxAge", 24*time.Hour)
	v.SetDefault("session.secure", false)

	v.SetDefault("admin.authenticator", "static")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")

	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.maxSize", 10<<20)

	v.SetDefault("storage.backend", StorageLocal)
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.accessKey", "")
	v.SetDefault("s3.secretKey", "")

	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("defaultFromEmail", "BounceBack Learning <noreply@bouncebacklearning.local>")
	v.SetDefault("feedbackNotifyEmail", "")
	v.SetDefault("seedSampleData", false)
}

// NewConfig reads the configuration for the environment named by $ENV.
// Values are looked up in order: environment variables prefixed with the env name
// (e.g. DEV_SERVER_ADDRESS), then config/.env.<env> (lowercase env), then defaults.
func NewConfig() *Config {
	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case EnvTest, EnvQA, EnvProd:
	default:
		env = EnvDev
	}

	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = "config"
	}
	envFile := filepath.Join(dir, ".env."+strings.ToLower(env))
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		log.Fatalf("core.NewConfig: loading %s: %v", envFile, err)
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	defaultConfig(v)
	if env == EnvDev {
		v.SetDefault("debug", true)
		v.SetDefault("seedSampleData", true)
	}

	from, err := mail.ParseAddress(v.GetString("defaultFromEmail"))
	if err != nil {
		log.Fatalf("core.NewConfig: invalid defaultFromEmail: %v", err)
	}

	conf := &Config{
		Env:      env,
		Build:    v.GetString("build"),
		Debug:    v.GetBool("debug"),
		TestMode: env == EnvTest,
		AppName:  v.GetString("appName"),
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Session: SessionConfig{
			Secret: v.GetString("session.secret"),
			MaxAge: v.GetDuration("session.maxAge"),
			Secure: v.GetBool("session.secure"),
		},
		Admin: AdminConfig{
			Authenticator: v.GetString("admin.authenticator"),
			Username:      v.GetString("admin.username"),
			Password:      v.GetString("admin.password"),
		},
		Upload: UploadConfig{
			Dir:     v.GetString("upload.dir"),
			MaxSize: v.GetInt64("upload.maxSize"),
		},
		Storage: StorageConfig{Backend: strings.ToLower(v.GetString("storage.backend"))},
		S3: S3Config{
			Bucket:    v.GetString("s3.bucket"),
			Region:    v.GetString("s3.region"),
			Endpoint:  v.GetString("s3.endpoint"),
			AccessKey: v.GetString("s3.accessKey"),
			SecretKey: v.GetString("s3.secretKey"),
		},
		RollbarToken:        v.GetString("rollbarToken"),
		SendgridApiKey:      v.GetString("sendgridApiKey"),
		DefaultFromEmail:    *from,
		FeedbackNotifyEmail: v.GetString("feedbackNotifyEmail"),
		SeedSampleData:      v.GetBool("seedSampleData"),
	}
	if err = conf.Validate(); err != nil {
		log.Fatalf("core.NewConfig: %v", err)
	}
	return conf
}

// Validate rejects settings that are unsafe for the environment.
func (c *Config) Validate() error {
	if c.Env == EnvQA || c.Env == EnvProd {
		if c.Session.Secret == "" || c.Session.Secret == DefaultSessionSecret {
			return errors.Errorf("%s_SESSION_SECRET must be set in %s", c.Env, c.Env)
		}
	}
	switch c.Storage.Backend {
	case StorageLocal, StorageS3:
	default:
		return errors.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}
