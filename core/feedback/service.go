package feedback

import (
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/bouncebacklearning/backend/core"
)

var (
	// errors
	ErrNotFound = errors.New("feedback not found")

	NowFunc = time.Now // mockable
)

const notificationTemplate = "feedback_received"

type (
	Repository interface {
		CreateFeedback(fb Feedback) (Feedback, error)
		// QueryAllFeedback returns every Feedback, newest first.
		QueryAllFeedback() ([]Feedback, error)
		DeleteFeedback(id int) (bool, error)
	}

	Service struct {
		repo     Repository
		mailSvc  core.EmailService
		notifyTo string
	}
)

// NewService returns a feedback Service. When notifyTo is set, every new Feedback
// is forwarded to that address through mailSvc.
func NewService(repo Repository, mailSvc core.EmailService, notifyTo string) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, notifyTo: notifyTo}
}

func (svc *Service) Create(nf NewFeedback) (Feedback, error) {
	fb, err := svc.repo.CreateFeedback(Feedback{
		Name:       nf.Name,
		Email:      nf.Email,
		Subject:    nf.Subject,
		Message:    nf.Message,
		Newsletter: nf.Newsletter,
		CreatedAt:  NowFunc().UTC(),
	})
	if err != nil {
		return Feedback{}, err
	}
	svc.notify(fb)
	return fb, nil
}

func (svc *Service) notify(fb Feedback) {
	if svc.notifyTo == "" || svc.mailSvc == nil {
		return
	}
	subject := "New feedback from " + fb.Name
	if fb.Subject != "" {
		subject += ": " + fb.Subject
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Address: svc.notifyTo}},
		Subject:      subject,
		TemplateName: notificationTemplate,
		TemplateData: fb,
	})
}

func (svc *Service) QueryAll() ([]Feedback, error) {
	return svc.repo.QueryAllFeedback()
}

// Delete reports whether a Feedback was removed.
func (svc *Service) Delete(id int) (bool, error) {
	return svc.repo.DeleteFeedback(id)
}
