package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// mockRepository 图书仓储Mock
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, book *Book) error {
	args := m.Called(ctx, book)
	if args.Error(0) == nil {
		book.ID = 1
	}
	return args.Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*Book, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*Book); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, book *Book) error {
	return m.Called(ctx, book).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) ListViews(ctx context.Context, params ListParams) ([]*View, error) {
	args := m.Called(ctx, params)
	views, _ := args.Get(0).([]*View)
	return views, args.Error(1)
}

func (m *mockRepository) FindView(ctx context.Context, id uint) (*View, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*View)
	return v, args.Error(1)
}

func strPtr(s string) *string { return &s }

func ownedBook(ownerID uint) *Book {
	return &Book{ID: 7, Name: "Test book 1", Price: 2500, Author: "Author 1", OwnerID: &ownerID}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("所有者强制为当前用户", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("Create", ctx, mock.MatchedBy(func(b *Book) bool {
			return b.OwnerID != nil && *b.OwnerID == 5
		})).Return(nil)

		book, err := svc.Create(ctx, user.Actor{ID: 5, Username: "u5"}, CreateInput{Name: " Go ", Price: "22", Author: "Pike"})
		require.NoError(t, err)
		assert.Equal(t, "Go", book.Name)
		assert.Equal(t, int64(2200), book.Price)
		assert.True(t, book.IsOwnedBy(5))
		repo.AssertExpectations(t)
	})

	t.Run("匿名用户不能创建", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, user.Anonymous, CreateInput{Name: "Go", Price: "22", Author: "Pike"})
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("书名为空", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, user.Actor{ID: 5}, CreateInput{Name: "  ", Price: "22", Author: "Pike"})
		assert.ErrorIs(t, err, ErrInvalidName)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("所有者修改成功", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("FindByID", ctx, uint(7)).Return(ownedBook(1), nil)
		repo.On("Update", ctx, mock.AnythingOfType("*book.Book")).Return(nil)

		book, err := svc.Update(ctx, user.Actor{ID: 1}, 7, UpdateInput{Price: strPtr("9.20")})
		require.NoError(t, err)
		assert.Equal(t, int64(920), book.Price)
		assert.Equal(t, "Test book 1", book.Name)
		repo.AssertExpectations(t)
	})

	t.Run("非所有者被拒绝且不持久化", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("FindByID", ctx, uint(7)).Return(ownedBook(1), nil)

		_, err := svc.Update(ctx, user.Actor{ID: 2}, 7, UpdateInput{Name: strPtr("hacked")})
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("管理员可以修改", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("FindByID", ctx, uint(7)).Return(ownedBook(1), nil)
		repo.On("Update", ctx, mock.AnythingOfType("*book.Book")).Return(nil)

		book, err := svc.Update(ctx, user.Actor{ID: 9, IsStaff: true}, 7, UpdateInput{Author: strPtr("New")})
		require.NoError(t, err)
		assert.Equal(t, "New", book.Author)
		assert.True(t, book.IsOwnedBy(1), "修改不改变所有者")
	})

	t.Run("图书不存在先于权限判断", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("FindByID", ctx, uint(99)).Return(nil, ErrBookNotFound)

		_, err := svc.Update(ctx, user.Anonymous, 99, UpdateInput{})
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("权限判断先于字段校验", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("FindByID", ctx, uint(7)).Return(ownedBook(1), nil)

		_, err := svc.Update(ctx, user.Actor{ID: 2}, 7, UpdateInput{Price: strPtr("-1")})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("价格超出范围", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("FindByID", ctx, uint(7)).Return(ownedBook(1), nil)

		_, err := svc.Update(ctx, user.Actor{ID: 1}, 7, UpdateInput{Price: strPtr("100000.00")})
		assert.ErrorIs(t, err, ErrInvalidPrice)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("所有者删除", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("FindByID", ctx, uint(7)).Return(ownedBook(1), nil)
		repo.On("Delete", ctx, uint(7)).Return(nil)

		require.NoError(t, svc.Delete(ctx, user.Actor{ID: 1}, 7))
		repo.AssertExpectations(t)
	})

	t.Run("非所有者删除被拒绝", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("FindByID", ctx, uint(7)).Return(ownedBook(1), nil)

		assert.ErrorIs(t, svc.Delete(ctx, user.Actor{ID: 2}, 7), ErrForbidden)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
