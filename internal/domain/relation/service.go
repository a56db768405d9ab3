package relation

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Service 关系领域服务
type Service interface {
	// Patch 部分更新当前用户对某本书的关系
	// 业务规则:
	// 1. 必须登录
	// 2. 图书必须存在
	// 3. 先校验再持久化,校验失败时不创建也不修改任何记录
	// 4. 关系不存在时自动创建
	Patch(ctx context.Context, actor user.Actor, bookID uint, patch Patch) (*Relation, error)
}

type service struct {
	repo  Repository
	books book.Repository
}

// NewService 创建关系领域服务
func NewService(repo Repository, books book.Repository) Service {
	return &service{repo: repo, books: books}
}

func (s *service) Patch(ctx context.Context, actor user.Actor, bookID uint, patch Patch) (*Relation, error) {
	if actor.IsAnonymous() {
		return nil, apperrors.ErrForbidden
	}

	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	rel, err := s.repo.GetOrCreate(ctx, actor.ID, bookID)
	if err != nil {
		return nil, err
	}

	patch.Apply(rel)
	if err := s.repo.Update(ctx, rel); err != nil {
		return nil, err
	}
	return rel, nil
}
