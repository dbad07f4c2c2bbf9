package admin

import (
	"time"

	"github.com/pkg/errors"

	"github.com/bouncebacklearning/backend/core/feedback"
	"github.com/bouncebacklearning/backend/core/paper"
	"github.com/bouncebacklearning/backend/core/video"
)

var (
	// errors
	ErrSessionNotFound = errors.New("admin session not found")

	NowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateSession(sess Session) (Session, error)
		GetSession(sessionID string) (Session, error)
		// EndSession clears IsAuthenticated on the session, or fails with ErrSessionNotFound.
		EndSession(sessionID string) error
	}

	// Sources are the services the dashboard statistics are computed from.
	Sources struct {
		Papers   *paper.Service
		Videos   *video.Service
		Feedback *feedback.Service
	}

	Service struct {
		repo Repository
		auth Authenticator
		src  Sources
	}
)

func NewService(repo Repository, auth Authenticator, src Sources) *Service {
	return &Service{repo: repo, auth: auth, src: src}
}

func (svc *Service) Authenticate(username, password string) (bool, error) {
	return svc.auth.Authenticate(username, password)
}

// CreateSession records an authenticated admin session.
func (svc *Service) CreateSession(sessionID string) (Session, error) {
	return svc.repo.CreateSession(Session{
		SessionID:       sessionID,
		IsAuthenticated: true,
		CreatedAt:       NowFunc().UTC(),
	})
}

func (svc *Service) GetSession(sessionID string) (Session, error) {
	return svc.repo.GetSession(sessionID)
}

// ActiveSession reports whether sessionID names a session that is still authenticated.
func (svc *Service) ActiveSession(sessionID string) (Session, bool, error) {
	sess, err := svc.repo.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Session{}, false, nil
		}
		return Session{}, false, err
	}
	return sess, sess.IsAuthenticated, nil
}

// EndSession signs the session out. Unknown sessions are ignored.
func (svc *Service) EndSession(sessionID string) error {
	if err := svc.repo.EndSession(sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

func (svc *Service) Stats() (Stats, error) {
	var stats Stats

	papers, err := svc.src.Papers.Query(paper.QueryFilter{})
	if err != nil {
		return Stats{}, errors.Wrap(err, "Papers.Query()")
	}
	stats.TotalPapers = len(papers)
	for _, p := range papers {
		stats.TotalDownloads += p.Downloads
	}

	videos, err := svc.src.Videos.Query(video.QueryFilter{})
	if err != nil {
		return Stats{}, errors.Wrap(err, "Videos.Query()")
	}
	stats.TotalVideos = len(videos)
	for _, v := range videos {
		stats.TotalViews += v.Views
	}

	fbs, err := svc.src.Feedback.QueryAll()
	if err != nil {
		return Stats{}, errors.Wrap(err, "Feedback.QueryAll()")
	}
	stats.TotalFeedback = len(fbs)

	return stats, nil
}
