package testutil

import (
	"fmt"
	"net/mail"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/bouncebacklearning/backend/core"
	"github.com/bouncebacklearning/backend/core/feedback"
	"github.com/bouncebacklearning/backend/core/paper"
	"github.com/bouncebacklearning/backend/core/user"
	"github.com/bouncebacklearning/backend/core/video"
)

// NewConfig returns a test configuration that never talks to external services.
func NewConfig(uploadDir string) *core.Config {
	return &core.Config{
		Env:      core.EnvTest,
		Build:    "test",
		TestMode: true,
		AppName:  "BounceBack Learning",
		Server: core.ServerConfig{
			Address:         "127.0.0.1:0",
			ShutdownTimeout: time.Second,
		},
		Session: core.SessionConfig{
			Secret: "test-secret",
			MaxAge: time.Hour,
		},
		Admin: core.AdminConfig{
			Authenticator: "static",
			Username:      "admin",
			Password:      "admin123",
		},
		Upload:              core.UploadConfig{Dir: uploadDir, MaxSize: 10 << 20},
		Storage:             core.StorageConfig{Backend: core.StorageLocal},
		DefaultFromEmail:    mail.Address{Name: "BounceBack Learning", Address: "noreply@test.local"},
		FeedbackNotifyEmail: "staff@test.local",
	}
}

// NewValidator returns a validator with every application tag registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	paper.InitValidators(validate, translator)
	video.InitValidators(validate, translator)
	return validate, translator
}

func CreatePaper(
	t *testing.T,
	repo paper.Repository,
	title, class, subject string,
	year int,
	phase string,
	createdAt ...time.Time,
) paper.Paper {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	fname := fmt.Sprintf("%s_%s_%d.pdf", subject, class, year)
	p, err := repo.CreatePaper(paper.Paper{
		Title:     title,
		Class:     class,
		Subject:   subject,
		Year:      year,
		Phase:     phase,
		FileName:  fname,
		FilePath:  "/uploads/" + fname,
		CreatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("createPaper() failed: %v", err)
	}
	return p
}

func CreateVideo(
	t *testing.T,
	repo video.Repository,
	title, class, subject, youtubeURL string,
	createdAt ...time.Time,
) video.Video {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	v, err := repo.CreateVideo(video.Video{
		Title:      title,
		Class:      class,
		Subject:    subject,
		YouTubeURL: youtubeURL,
		CreatedAt:  tstamp,
	})
	if err != nil {
		t.Fatalf("createVideo() failed: %v", err)
	}
	return v
}

func CreateFeedback(
	t *testing.T,
	repo feedback.Repository,
	name, email, message string,
	createdAt ...time.Time,
) feedback.Feedback {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	fb, err := repo.CreateFeedback(feedback.Feedback{
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("createFeedback() failed: %v", err)
	}
	return fb
}
