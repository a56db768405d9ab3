package book

import (
	"context"
	"strings"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	// 不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书信息(name/price/author,owner不可修改)
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除,同一事务中删除该书的全部关系记录)
	Delete(ctx context.Context, id uint) error

	// ListViews 查询聚合视图列表
	// 一次分组查询计算likes_count和评分,一次查询加载读者,共两条SQL
	ListViews(ctx context.Context, params ListParams) ([]*View, error)

	// FindView 查询单本图书的聚合视图
	// 不存在返回ErrBookNotFound
	FindView(ctx context.Context, id uint) (*View, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Price    *int64       // 精确匹配价格(分),nil表示不过滤
	Search   string       // 书名或作者包含该字符串(不区分大小写)
	Ordering []OrderField // 排序字段,按顺序生效,最后总是按id排序
}

// OrderField 排序字段
type OrderField struct {
	Field string // price | author
	Desc  bool
}

// 允许排序的字段
var orderableFields = map[string]bool{
	"price":  true,
	"author": true,
}

// ParseOrdering 解析ordering查询参数
// 例如: "-price,author" → [{price desc} {author asc}]
// 未知字段直接忽略
func ParseOrdering(raw string) []OrderField {
	var fields []OrderField
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		part = strings.TrimPrefix(part, "-")
		if !orderableFields[part] || seen[part] {
			continue
		}
		seen[part] = true
		fields = append(fields, OrderField{Field: part, Desc: desc})
	}
	return fields
}
