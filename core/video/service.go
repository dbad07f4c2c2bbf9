package video

import (
	"time"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound = errors.New("video not found")

	NowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateVideo(v Video) (Video, error)
		// QueryVideos applies AND operation on available QueryFilter fields
		// and sorts the result by CreatedAt, newest first.
		QueryVideos(filter QueryFilter) ([]Video, error)
		GetVideoByID(id int) (Video, error)
		// IncrementVideoViews is a no-op when the Video does not exist.
		IncrementVideoViews(id int) error
		DeleteVideo(id int) (bool, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new Video with no views. A missing thumbnail is derived from the YouTube id.
func (svc *Service) Create(nv NewVideo) (Video, error) {
	v := Video{
		Title:        nv.Title,
		Description:  nv.Description,
		Class:        nv.Class,
		Subject:      nv.Subject,
		YouTubeURL:   nv.YouTubeURL,
		ThumbnailURL: nv.ThumbnailURL,
		Duration:     nv.Duration,
		CreatedAt:    NowFunc().UTC(),
	}
	if v.ThumbnailURL == "" {
		if id, ok := YouTubeID(v.YouTubeURL); ok {
			v.ThumbnailURL = ThumbnailURL(id)
		}
	}
	return svc.repo.CreateVideo(v)
}

func (svc *Service) Query(filter QueryFilter) ([]Video, error) {
	filter.Clean()
	return svc.repo.QueryVideos(filter)
}

func (svc *Service) GetByID(id int) (Video, error) {
	return svc.repo.GetVideoByID(id)
}

func (svc *Service) IncrementViews(id int) error {
	return svc.repo.IncrementVideoViews(id)
}

// Delete reports whether a Video was removed.
func (svc *Service) Delete(id int) (bool, error) {
	return svc.repo.DeleteVideo(id)
}
