package user

import (
	"context"
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Service 用户领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（如密码加密、验证）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
type Service interface {
	// Register 用户注册
	Register(ctx context.Context, input RegisterInput) (*User, error)

	// Login 用户登录（用户名 + 密码）
	Login(ctx context.Context, username, password string) (*User, error)
}

// RegisterInput 注册参数
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type service struct {
	repo Repository
	cost int
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo, cost: bcrypt.DefaultCost}
}

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.@+-]{3,150}$`)
	letterPattern   = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
)

// Register 用户注册
// 业务规则：
// 1. 用户名、邮箱格式校验
// 2. 密码强度校验（8-20位，包含字母和数字）
// 3. 用户名、邮箱唯一性由数据库UNIQUE索引保证
func (s *service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if !usernamePattern.MatchString(input.Username) {
		return nil, apperrors.InvalidParam("username", "用户名应为3-150位字母、数字或_.@+-")
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, apperrors.InvalidParam("email", "邮箱格式不正确")
	}
	if err := validatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	user := NewUser(input.Username, input.Email, string(hashedPassword), input.FirstName, input.LastName)
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return user, nil
}

// Login 用户登录
// 用户不存在与密码错误返回同一个错误，避免枚举用户名
func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, apperrors.Wrap(err, "密码验证失败")
	}

	return user, nil
}

// validatePasswordStrength 密码强度校验
// 规则：8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}
	if !letterPattern.MatchString(password) || !digitPattern.MatchString(password) {
		return apperrors.ErrWeakPassword
	}
	return nil
}
