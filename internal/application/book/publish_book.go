package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// PublishBookUseCase 创建图书用例
// 设计说明:
// 1. 应用层负责用例编排(追踪、指标、DTO转换),业务规则由领域服务负责
// 2. 所有者取自认证中间件中的操作者,请求体中的owner不会被使用
type PublishBookUseCase struct {
	bookService book.Service
}

// NewPublishBookUseCase 创建用例
func NewPublishBookUseCase(bookService book.Service) *PublishBookUseCase {
	return &PublishBookUseCase{bookService: bookService}
}

// PublishBookRequest 创建图书请求
type PublishBookRequest struct {
	Name   string
	Price  string // 十进制字符串,如"25.00"
	Author string
}

// Execute 执行创建
func (uc *PublishBookUseCase) Execute(ctx context.Context, actor user.Actor, req PublishBookRequest) (resp *BookResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "book.Create")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveUseCase("book.create", start)
		metrics.RecordBookOperation("create", err)
	}()

	b, err := uc.bookService.Create(ctx, actor, book.CreateInput{
		Name:   req.Name,
		Price:  req.Price,
		Author: req.Author,
	})
	if err != nil {
		return nil, err
	}
	return toBookResponse(b), nil
}
