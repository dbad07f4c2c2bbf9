package inmemdb

import (
	"github.com/bouncebacklearning/backend/core/admin"
)

type sessionRepository struct {
	db *table[admin.Session]
}

var _ admin.Repository = (*sessionRepository)(nil)

func NewSessionRepository(db *DB) admin.Repository {
	return &sessionRepository{db: db.sessions}
}

func (repo *sessionRepository) CreateSession(sess admin.Session) (admin.Session, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sess.ID = repo.db.nextPK()
	repo.db.rows[sess.ID] = sess
	return sess, nil
}

func (repo *sessionRepository) GetSession(sessionID string) (admin.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, sess := range repo.db.rows {
		if sess.SessionID == sessionID {
			return sess, nil
		}
	}
	return admin.Session{}, admin.ErrSessionNotFound
}

func (repo *sessionRepository) EndSession(sessionID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for id, sess := range repo.db.rows {
		if sess.SessionID == sessionID {
			sess.IsAuthenticated = false
			repo.db.rows[id] = sess
			return nil
		}
	}
	return admin.ErrSessionNotFound
}
