package relation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/relation"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// PatchRelationUseCase 更新当前用户对图书的点赞、收藏、评分
type PatchRelationUseCase struct {
	relationService relation.Service
}

// NewPatchRelationUseCase 创建用例
func NewPatchRelationUseCase(relationService relation.Service) *PatchRelationUseCase {
	return &PatchRelationUseCase{relationService: relationService}
}

// RelationResponse 关系响应DTO
type RelationResponse struct {
	Book        uint `json:"book"`
	Like        bool `json:"like"`
	InBookmarks bool `json:"in_bookmarks"`
	Rate        *int `json:"rate"` // 未评分为null
}

// Execute 解析请求体并更新关系
// body为原始JSON,需要区分"rate": null和不传rate
func (uc *PatchRelationUseCase) Execute(ctx context.Context, actor user.Actor, bookID uint, body []byte) (resp *RelationResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "relation.Patch", attribute.Int64("book_id", int64(bookID)))
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveUseCase("relation.patch", start)
		metrics.RecordRelationUpdate(err)
	}()

	patch, err := relation.ParsePatch(body)
	if err != nil {
		return nil, err
	}

	rel, err := uc.relationService.Patch(ctx, actor, bookID, patch)
	if err != nil {
		return nil, err
	}

	return &RelationResponse{
		Book:        rel.BookID,
		Like:        rel.Like,
		InBookmarks: rel.InBookmarks,
		Rate:        rel.Rate,
	}, nil
}
