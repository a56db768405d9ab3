package database

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/relation"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// relationRepository 用户-图书关系仓储实现
type relationRepository struct {
	db *gorm.DB
}

// NewRelationRepository 创建关系仓储
func NewRelationRepository(db *gorm.DB) relation.Repository {
	return &relationRepository{db: db}
}

// GetOrCreate 查找或创建关系
// 1. INSERT ... ON CONFLICT DO NOTHING(MySQL为ON DUPLICATE KEY UPDATE),并发插入只会成功一条
// 2. 再按唯一键查询,返回库里实际存在的那一条
func (r *relationRepository) GetOrCreate(ctx context.Context, userID, bookID uint) (*relation.Relation, error) {
	db := getDB(ctx, r.db)

	insert := &RelationModel{UserID: userID, BookID: bookID}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoNothing: true,
	}).Create(insert).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "创建关系失败")
	}

	var model RelationModel
	if err := db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&model).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询关系失败")
	}
	return toRelationEntity(&model), nil
}

// Update 保存关系字段
// 使用map更新,false和NULL也会写入
func (r *relationRepository) Update(ctx context.Context, rel *relation.Relation) error {
	rel.UpdatedAt = time.Now()
	err := getDB(ctx, r.db).Model(&RelationModel{ID: rel.ID}).Updates(map[string]interface{}{
		"liked":        rel.Like,
		"in_bookmarks": rel.InBookmarks,
		"rate":         rel.Rate,
		"updated_at":   rel.UpdatedAt,
	}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新关系失败")
	}
	return nil
}

func toRelationEntity(model *RelationModel) *relation.Relation {
	return &relation.Relation{
		ID:          model.ID,
		UserID:      model.UserID,
		BookID:      model.BookID,
		Like:        model.Liked,
		InBookmarks: model.InBookmarks,
		Rate:        model.Rate,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
