package video

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bouncebacklearning/backend/core"
)

// Video is a lesson hosted on YouTube.
type Video struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Class        string    `json:"class"`
	Subject      string    `json:"subject"`
	YouTubeURL   string    `json:"youtubeUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Duration     string    `json:"duration"`
	Views        int       `json:"views"`
	CreatedAt    time.Time `json:"createdAt"` // UTC
}

// NewVideo contains information needed to create a new Video.
type NewVideo struct {
	Title        string `json:"title" validate:"required,notblank"`
	Description  string `json:"description"`
	Class        string `json:"class" validate:"required,schoolclass"`
	Subject      string `json:"subject" validate:"required,notblank"`
	YouTubeURL   string `json:"youtubeUrl" validate:"required,youtubeurl"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url"`
	Duration     string `json:"duration"`
}

func (nv *NewVideo) Validate(validate *validator.Validate) error {
	nv.Title = core.CleanString(nv.Title)
	nv.Description = core.CleanString(nv.Description)
	nv.Class = core.CleanString(nv.Class, true /* lower */)
	nv.Subject = core.CleanString(nv.Subject)
	nv.YouTubeURL = core.CleanString(nv.YouTubeURL)
	nv.ThumbnailURL = core.CleanString(nv.ThumbnailURL)
	nv.Duration = core.CleanString(nv.Duration)
	return validate.Struct(nv)
}

// QueryFilter narrows a Video listing. Zero-valued fields are ignored.
type QueryFilter struct {
	Class   string
	Subject string // case-insensitive substring
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Class == "" && qf.Subject == ""
}

func (qf *QueryFilter) Clean() {
	qf.Class = core.CleanString(qf.Class)
	qf.Subject = core.CleanString(qf.Subject)
}
