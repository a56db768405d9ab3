package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// SessionStore 会话存储（由redis.SessionStore实现）
type SessionStore interface {
	SaveSession(ctx context.Context, sess redis.Session, ttl time.Duration) error
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

// LoginUseCase 用户登录用例
// 1. 验证用户名密码
// 2. 生成JWT Token对（Access Token携带用户名和管理员标记）
// 3. 保存会话到Redis
type LoginUseCase struct {
	userService  user.Service
	userRepo     user.Repository
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	userRepo user.Repository,
	jwtManager *jwt.Manager,
	sessionStore SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		userRepo:     userRepo,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (resp *LoginResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "user.Login")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveUseCase("user.login", start)
		metrics.RecordLogin(err)
	}()

	// 1. 验证用户名密码
	u, err := uc.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成Token对
	return uc.issue(ctx, u, req.ClientIP)
}

// Refresh 使用Refresh Token换取新的Token对
// 重新查询用户，管理员标记变更后刷新即可生效
func (uc *LoginUseCase) Refresh(ctx context.Context, refreshToken, clientIP string) (resp *LoginResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "user.Refresh")
	defer func() { tracing.EndSpan(span, err) }()

	claims, err := uc.jwtManager.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	u, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return uc.issue(ctx, u, clientIP)
}

func (uc *LoginUseCase) issue(ctx context.Context, u *user.User, clientIP string) (*LoginResponse, error) {
	tokenPair, err := uc.jwtManager.GenerateToken(jwt.Identity{
		UserID:   u.ID,
		Username: u.Username,
		IsStaff:  u.IsStaff,
	})
	if err != nil {
		return nil, err
	}

	// 会话保存失败不影响登录，只记录日志
	sess := redis.Session{UserID: u.ID, Username: u.Username, ClientIP: clientIP, LoginTime: time.Now()}
	if err := uc.sessionStore.SaveSession(ctx, sess, uc.jwtManager.RefreshTTL()); err != nil {
		zap.L().Warn("保存会话失败", zap.Uint("user_id", u.ID), zap.Error(err))
	}

	return &LoginResponse{
		User:         *toUserInfo(u),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore SessionStore
	jwtManager   *jwt.Manager
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore SessionStore, jwtManager *jwt.Manager) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore, jwtManager: jwtManager}
}

// Execute 执行登出
// Access Token加入黑名单，过期时间为Token剩余有效期
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) (err error) {
	ctx, span := tracing.StartSpan(ctx, "user.Logout")
	defer func() { tracing.EndSpan(span, err) }()

	// 1. 删除会话
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}

	// 2. Token加入黑名单
	claims, err := uc.jwtManager.ParseToken(accessToken)
	if err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, claims.RemainingTTL(time.Now()))
}

// =========================================
// 应用层DTO
// =========================================

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
	ClientIP string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token过期时间（秒）
}
