package database

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager 事务管理器
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. 支持嵌套事务(GORM自动使用Savepoint)
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn内的所有Repository操作都通过getDB(ctx)拿到同一个事务DB
// fn返回error时自动ROLLBACK,返回nil时自动COMMIT
//
// 使用示例:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    if err := getDB(ctx, db).Where("book_id = ?", id).Delete(&RelationModel{}).Error; err != nil {
//	        return err // 自动回滚
//	    }
//	    return getDB(ctx, db).Delete(&BookModel{}, id).Error
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		// 已在事务中,直接复用
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
