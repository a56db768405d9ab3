package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// UpdateBookUseCase 修改、删除图书用例
// 权限规则:管理员或图书所有者
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// UpdateBookRequest 修改图书请求
// nil字段不修改;PUT请求由HTTP层保证三个字段都有值
type UpdateBookRequest struct {
	Name   *string
	Price  *string
	Author *string
}

// Execute 修改图书
func (uc *UpdateBookUseCase) Execute(ctx context.Context, actor user.Actor, id uint, req UpdateBookRequest) (resp *BookResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "book.Update", attribute.Int64("book_id", int64(id)))
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveUseCase("book.update", start)
		metrics.RecordBookOperation("update", err)
	}()

	b, err := uc.bookService.Update(ctx, actor, id, book.UpdateInput{
		Name:   req.Name,
		Price:  req.Price,
		Author: req.Author,
	})
	if err != nil {
		return nil, err
	}
	return toBookResponse(b), nil
}

// Delete 删除图书
func (uc *UpdateBookUseCase) Delete(ctx context.Context, actor user.Actor, id uint) (err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "book.Delete", attribute.Int64("book_id", int64(id)))
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveUseCase("book.delete", start)
		metrics.RecordBookOperation("delete", err)
	}()

	return uc.bookService.Delete(ctx, actor, id)
}
