package echoapi

import "github.com/bouncebacklearning/backend/core/feedback"

type (
	MessageResponse struct {
		Message string `json:"message"`
	}

	LoginResponse struct {
		Message       string `json:"message"`
		Authenticated bool   `json:"authenticated"`
	}

	StatusResponse struct {
		Authenticated bool `json:"authenticated"`
	}

	FeedbackResponse struct {
		Message  string            `json:"message"`
		Feedback feedback.Feedback `json:"feedback"`
	}
)
