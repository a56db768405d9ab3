package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// RegisterUseCase 用户注册用例
// 注册出来的都是普通用户，管理员标记只能在数据库中设置
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (resp *UserInfo, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "user.Register")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveUseCase("user.register", start)
	}()

	u, err := uc.userService.Register(ctx, user.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return nil, err
	}

	return toUserInfo(u), nil
}

// =========================================
// 应用层DTO
// =========================================

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserInfo 用户信息
// 说明：不返回密码字段
type UserInfo struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
}

func toUserInfo(u *user.User) *UserInfo {
	return &UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsStaff:   u.IsStaff,
	}
}
