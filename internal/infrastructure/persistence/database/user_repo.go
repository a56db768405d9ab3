package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// userRepository 用户仓储实现
// 设计说明：
// 1. 实现domain/user/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误（如用户名重复），转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
// 用户名、邮箱唯一性由数据库UNIQUE索引保证（而非应用层SELECT再INSERT）
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsStaff:   u.IsStaff,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			// 根据冲突的索引名区分用户名和邮箱
			if strings.Contains(err.Error(), "username") {
				return apperrors.ErrUsernameDuplicate
			}
			return apperrors.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// FindByUsername 根据用户名查找用户
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).Where("username = ?", username).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:        model.ID,
		Username:  model.Username,
		Email:     model.Email,
		Password:  model.Password,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		IsStaff:   model.IsStaff,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
