package user

import (
	"context"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/database层
// 3. 便于单元测试（Mock此接口）
type Repository interface {
	// Create 创建用户
	// 注意：用户名或邮箱已存在时，返回ErrUsernameDuplicate / ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	// 如果不存在，返回errors.ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 根据用户名查找用户
	// 如果不存在，返回errors.ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)
}
