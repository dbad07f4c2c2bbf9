package admin

import (
	"crypto/subtle"

	"github.com/pkg/errors"

	"github.com/bouncebacklearning/backend/core/user"
)

// Default admin credentials
const (
	DefaultUsername = "admin"
	DefaultPassword = "admin123"
)

// Authenticator checks admin credentials.
type Authenticator interface {
	Authenticate(username, password string) (bool, error)
}

var (
	_ Authenticator = StaticAuthenticator{}
	_ Authenticator = (*UserAuthenticator)(nil)
)

// StaticAuthenticator accepts exactly one username/password pair.
type StaticAuthenticator struct {
	Username string
	Password string
}

// NewStaticAuthenticator falls back to the default credentials for empty values.
func NewStaticAuthenticator(username, password string) StaticAuthenticator {
	if username == "" {
		username = DefaultUsername
	}
	if password == "" {
		password = DefaultPassword
	}
	return StaticAuthenticator{Username: username, Password: password}
}

func (a StaticAuthenticator) Authenticate(username, password string) (bool, error) {
	return equal(username, a.Username) && equal(password, a.Password), nil
}

// UserAuthenticator accepts any stored user whose username and password match exactly.
type UserAuthenticator struct {
	users *user.Service
}

func NewUserAuthenticator(users *user.Service) *UserAuthenticator {
	return &UserAuthenticator{users: users}
}

func (a *UserAuthenticator) Authenticate(username, password string) (bool, error) {
	usr, err := a.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return equal(username, usr.Username) && equal(password, usr.Password), nil
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
