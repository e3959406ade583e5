package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"waste_tracker/internal/apperror"
)

func newUserService(store *fakeUserStore) *UserService {
	svc := NewUserService(store)
	svc.cost = bcrypt.MinCost
	return svc
}

func TestRegister_HashesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newUserService(store)

	user, err := svc.Register(context.Background(), "Alice", "s3cret", "s3cret")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
}

func TestRegister_Validation(t *testing.T) {
	svc := newUserService(newFakeUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "pw", "pw")
	assert.True(t, apperror.IsValidation(err))
	_, err = svc.Register(ctx, "alice", "", "")
	assert.True(t, apperror.IsValidation(err))
	_, err = svc.Register(ctx, "alice", "pw", "different")
	assert.True(t, apperror.IsValidation(err))
}

func TestRegister_DuplicateIsConflict(t *testing.T) {
	svc := newUserService(newFakeUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw", "pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other", "")
	assert.True(t, apperror.IsConflict(err))
}

func TestRegister_UsernameIsCaseSensitive(t *testing.T) {
	svc := newUserService(newFakeUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw", "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Alice", "pw", "")
	assert.NoError(t, err)
}

func TestRegister_UsernameLengthCountsCharacters(t *testing.T) {
	svc := newUserService(newFakeUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, strings.Repeat("ü", 80), "pw", "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, strings.Repeat("ü", 81), "pw", "")
	assert.True(t, apperror.IsValidation(err))
}

func TestRegister_RaceOnInsertIsConflict(t *testing.T) {
	store := newFakeUserStore()
	store.createErr = gorm.ErrDuplicatedKey
	svc := newUserService(store)

	_, err := svc.Register(context.Background(), "alice", "pw", "")
	assert.True(t, apperror.IsConflict(err))
}

func TestAuthenticate(t *testing.T) {
	svc := newUserService(newFakeUserStore())
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "pw", "")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	assert.True(t, apperror.IsAuth(err))

	_, err = svc.Authenticate(ctx, "nobody", "pw")
	assert.True(t, apperror.IsAuth(err))
}
