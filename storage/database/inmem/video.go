package inmemdb

import (
	"sort"
	"strings"
	"time"

	"github.com/bouncebacklearning/backend/core/video"
)

type videoRepository struct {
	db *table[video.Video]
}

var _ video.Repository = (*videoRepository)(nil)

func NewVideoRepository(db *DB) video.Repository {
	return &videoRepository{db: db.videos}
}

func (repo *videoRepository) CreateVideo(v video.Video) (video.Video, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	v.ID = repo.db.nextPK()
	v.Views = 0
	repo.db.rows[v.ID] = v
	return v, nil
}

func (repo *videoRepository) QueryVideos(filter video.QueryFilter) ([]video.Video, error) {
	repo.db.RLock()
	videos := repo.db.query()
	repo.db.RUnlock()

	if !filter.IsEmpty() {
		subject := strings.ToLower(filter.Subject)
		filtered := make([]video.Video, 0, len(videos))
		for _, v := range videos {
			if filter.Class != "" && v.Class != filter.Class {
				continue
			}
			if subject != "" && !strings.Contains(strings.ToLower(v.Subject), subject) {
				continue
			}
			filtered = append(filtered, v)
		}
		videos = filtered
	}

	sort.SliceStable(videos, func(i, j int) bool {
		return sortTime(videos[i].CreatedAt).After(sortTime(videos[j].CreatedAt))
	})
	return videos, nil
}

func (repo *videoRepository) GetVideoByID(id int) (video.Video, error) {
	if v, ok := repo.db.get(id); ok {
		return v, nil
	}
	return video.Video{}, video.ErrNotFound
}

func (repo *videoRepository) IncrementVideoViews(id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if v, ok := repo.db.rows[id]; ok {
		v.Views++
		repo.db.rows[id] = v
	}
	return nil
}

func (repo *videoRepository) DeleteVideo(id int) (bool, error) {
	return repo.db.delete(id), nil
}

// sortTime orders a missing timestamp as the Unix epoch, so it sorts after any real one.
func sortTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Unix(0, 0)
	}
	return t
}
