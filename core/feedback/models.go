package feedback

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bouncebacklearning/backend/core"
)

// Feedback is a message submitted through the public contact form.
type Feedback struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	Newsletter bool      `json:"newsletter"`
	CreatedAt  time.Time `json:"createdAt"` // UTC
}

// NewFeedback contains information needed to create a new Feedback.
type NewFeedback struct {
	Name       string `json:"name" validate:"required,notblank,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Subject    string `json:"subject" validate:"max=200"`
	Message    string `json:"message" validate:"required,notblank"`
	Newsletter bool   `json:"newsletter"`
}

func (nf *NewFeedback) Validate(validate *validator.Validate) error {
	nf.Name = core.CleanString(nf.Name)
	nf.Email = core.CleanString(nf.Email, true /* lower */)
	nf.Subject = core.CleanString(nf.Subject)
	nf.Message = core.CleanString(nf.Message)
	return validate.Struct(nf)
}
