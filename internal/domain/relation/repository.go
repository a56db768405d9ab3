package relation

import (
	"context"
)

// Repository 关系仓储接口
type Repository interface {
	// GetOrCreate 查找(用户, 图书)的关系,不存在则创建
	// 依赖UNIQUE(user_id, book_id)索引,并发调用也只会有一条记录
	GetOrCreate(ctx context.Context, userID, bookID uint) (*Relation, error)

	// Update 保存like、in_bookmarks、rate
	Update(ctx context.Context, relation *Relation) error
}
