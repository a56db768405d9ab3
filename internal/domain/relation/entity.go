package relation

import (
	"time"
)

// Relation 用户与图书的关系(点赞、收藏、评分)
// 每个(用户, 图书)只有一条记录,首次交互时创建
type Relation struct {
	ID          uint
	UserID      uint
	BookID      uint
	Like        bool
	InBookmarks bool
	Rate        *int // nil表示未评分
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRelation 创建默认关系(未点赞、未收藏、未评分)
func NewRelation(userID, bookID uint) *Relation {
	now := time.Now()
	return &Relation{
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
