package user_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bouncebacklearning/backend/core"
	"github.com/bouncebacklearning/backend/core/user"
	inmemdb "github.com/bouncebacklearning/backend/storage/database/inmem"
	testutil "github.com/bouncebacklearning/backend/tests"
)

func TestService(t *testing.T) {
	validate, _ := testutil.NewValidator()
	svc := user.NewService(inmemdb.NewUserRepository(inmemdb.Open()))

	nu := user.NewUser{Username: " Staff_1 ", Password: "secret"}
	require.NoError(t, nu.Validate(validate))
	assert.Equal(t, "staff_1", nu.Username)

	usr, err := svc.Create(nu)
	require.NoError(t, err)
	assert.Equal(t, 1, usr.ID)
	assert.Equal(t, "secret", usr.Password)

	got, err := svc.GetByUsername("STAFF_1")
	require.NoError(t, err)
	assert.Equal(t, usr, got)

	got, err = svc.GetByID(usr.ID)
	require.NoError(t, err)
	assert.Equal(t, usr, got)

	_, err = svc.GetByID(42)
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = svc.Create(nu)
	var verr *core.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "username", verr.Fields[0].Field)

	bad := user.NewUser{Username: "bad name!", Password: "x"}
	assert.Error(t, bad.Validate(validate))
}
