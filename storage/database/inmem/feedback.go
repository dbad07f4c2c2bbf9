package inmemdb

import (
	"sort"

	"github.com/bouncebacklearning/backend/core/feedback"
)

type feedbackRepository struct {
	db *table[feedback.Feedback]
}

var _ feedback.Repository = (*feedbackRepository)(nil)

func NewFeedbackRepository(db *DB) feedback.Repository {
	return &feedbackRepository{db: db.feedback}
}

func (repo *feedbackRepository) CreateFeedback(fb feedback.Feedback) (feedback.Feedback, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	fb.ID = repo.db.nextPK()
	repo.db.rows[fb.ID] = fb
	return fb, nil
}

func (repo *feedbackRepository) QueryAllFeedback() ([]feedback.Feedback, error) {
	repo.db.RLock()
	fbs := repo.db.query()
	repo.db.RUnlock()

	sort.SliceStable(fbs, func(i, j int) bool {
		return sortTime(fbs[i].CreatedAt).After(sortTime(fbs[j].CreatedAt))
	})
	return fbs, nil
}

func (repo *feedbackRepository) DeleteFeedback(id int) (bool, error) {
	return repo.db.delete(id), nil
}
