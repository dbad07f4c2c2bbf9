package inmemdb

import (
	"github.com/bouncebacklearning/backend/core/user"
)

type userRepository struct {
	db *table[user.User]
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.users}
}

// CreateUser checks the username under the same write lock it inserts with.
func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.rows {
		if existing.Username == usr.Username {
			return user.User{}, user.ErrUsernameExists
		}
	}
	usr.ID = repo.db.nextPK()
	repo.db.rows[usr.ID] = usr
	return usr, nil
}

func (repo *userRepository) GetUserByID(id int) (user.User, error) {
	if usr, ok := repo.db.get(id); ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, usr := range repo.db.query() {
		if usr.Username == username {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}
