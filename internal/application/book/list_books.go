package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// ListBooksUseCase 图书列表与详情用例(公开接口)
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表查询参数(来自query string)
type ListBooksRequest struct {
	Price    string // 精确价格,如"22"或"22.00",空表示不过滤
	Search   string // 书名或作者包含
	Ordering string // 如"-price,author"
}

// Execute 查询图书列表
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (resp []*BookViewResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "book.List",
		attribute.String("search", req.Search),
		attribute.String("ordering", req.Ordering),
	)
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveUseCase("book.list", start)
	}()

	// 1. 构建查询参数
	params := book.ListParams{
		Search:   req.Search,
		Ordering: book.ParseOrdering(req.Ordering),
	}
	if req.Price != "" {
		price, err := book.ParsePrice(req.Price)
		if err != nil {
			return nil, err
		}
		params.Price = &price
	}

	// 2. 查询聚合视图
	views, err := uc.bookService.List(ctx, params)
	if err != nil {
		return nil, err
	}

	// 3. 转换为DTO
	resp = make([]*BookViewResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toViewResponse(v))
	}
	return resp, nil
}

// Get 查询单本图书
func (uc *ListBooksUseCase) Get(ctx context.Context, id uint) (resp *BookViewResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "book.Get", attribute.Int64("book_id", int64(id)))
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveUseCase("book.get", start)
	}()

	view, err := uc.bookService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toViewResponse(view), nil
}
