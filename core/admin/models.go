package admin

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Session records an admin sign-in.
type Session struct {
	ID              int       `json:"id"`
	SessionID       string    `json:"sessionId"`
	IsAuthenticated bool      `json:"isAuthenticated"`
	CreatedAt       time.Time `json:"createdAt"` // UTC
}

// Stats summarises the content of the store for the admin dashboard.
type Stats struct {
	TotalPapers    int `json:"totalPapers"`
	TotalVideos    int `json:"totalVideos"`
	TotalFeedback  int `json:"totalFeedback"`
	TotalDownloads int `json:"totalDownloads"`
	TotalViews     int `json:"totalViews"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate leaves the credentials untouched; they must match exactly.
func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(lr)
}
