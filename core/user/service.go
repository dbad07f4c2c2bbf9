package user

import (
	"time"

	"github.com/pkg/errors"

	"github.com/bouncebacklearning/backend/core"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrUsernameExists = errors.New("a user with this username already exists")

	NowFunc = time.Now // mockable
)

type (
	Repository interface {
		// CreateUser fails with ErrUsernameExists when the username is taken.
		CreateUser(user User) (User, error)
		GetUserByID(id int) (User, error)
		GetUserByUsername(username string) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a validated NewUser. A taken username is reported as a ValidationError.
func (svc *Service) Create(nu NewUser) (User, error) {
	usr, err := svc.repo.CreateUser(User{
		Username:  nu.Username,
		Password:  nu.Password,
		CreatedAt: NowFunc().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrUsernameExists) {
			return User{}, core.NewValidationError(err, core.FieldError{Field: "username", Error: err.Error()})
		}
		return User{}, err
	}
	return usr, nil
}

func (svc *Service) GetByID(id int) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByUsername(uname string) (User, error) {
	return svc.repo.GetUserByUsername(core.CleanString(uname, true /* lower */))
}
