package user

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bouncebacklearning/backend/core"
)

// User is an account able to sign in to the admin panel when the "users" authenticator is on.
// Passwords are stored as provided.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"` // UTC
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username string `json:"username" validate:"required,min=3,max=64,alphanum_"`
	Password string `json:"password" validate:"required,notblank"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	return validate.Struct(nu)
}
