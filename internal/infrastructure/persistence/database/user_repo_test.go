package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func TestUserRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.createUser(t, "ivan", "Ivan", "Petrov")
	assert.NotZero(t, u.ID)

	t.Run("按用户名查找", func(t *testing.T) {
		got, err := f.users.FindByUsername(ctx, "ivan")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, "Petrov", got.LastName)
		assert.False(t, got.IsStaff)
	})

	t.Run("按ID查找", func(t *testing.T) {
		got, err := f.users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "ivan", got.Username)
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := f.users.FindByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("用户名重复", func(t *testing.T) {
		dup := user.NewUser("ivan", "other@example.com", "hashed", "", "")
		assert.ErrorIs(t, f.users.Create(ctx, dup), apperrors.ErrUsernameDuplicate)
	})

	t.Run("邮箱重复", func(t *testing.T) {
		dup := user.NewUser("ivan2", "ivan@example.com", "hashed", "", "")
		assert.ErrorIs(t, f.users.Create(ctx, dup), apperrors.ErrEmailDuplicate)
	})
}
