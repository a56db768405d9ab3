package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

const issuer = "bookcatalog"

// Token类型，防止Refresh Token被当作Access Token使用
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Manager JWT管理器
// 设计说明：
// 1. 使用双Token机制：Access Token（短期）+ Refresh Token（长期）
// 2. Access Token用于API鉴权，携带用户名和管理员标记，鉴权时不查库
// 3. Refresh Token只携带UserID，用于换取新的Access Token
type Manager struct {
	secret             []byte
	accessTokenExpire  time.Duration
	refreshTokenExpire time.Duration
	now                func() time.Time
}

// NewManager 创建JWT管理器
func NewManager(secret string, accessTokenExpire, refreshTokenExpire time.Duration) *Manager {
	return &Manager{
		secret:             []byte(secret),
		accessTokenExpire:  accessTokenExpire,
		refreshTokenExpire: refreshTokenExpire,
		now:                time.Now,
	}
}

// Claims 自定义JWT Claims
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username,omitempty"`
	IsStaff   bool   `json:"is_staff,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Identity Token中携带的身份信息
type Identity struct {
	UserID   uint
	Username string
	IsStaff  bool
}

// TokenPair Token对（Access + Refresh）
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Access Token过期时间（秒）
}

// GenerateToken 生成Token对
func (m *Manager) GenerateToken(id Identity) (*TokenPair, error) {
	access, err := m.sign(Claims{
		UserID:    id.UserID,
		Username:  id.Username,
		IsStaff:   id.IsStaff,
		TokenType: TokenTypeAccess,
	}, m.accessTokenExpire)
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Access Token失败")
	}

	refresh, err := m.sign(Claims{
		UserID:    id.UserID,
		TokenType: TokenTypeRefresh,
	}, m.refreshTokenExpire)
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Refresh Token失败")
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.accessTokenExpire.Seconds()),
	}, nil
}

// RefreshTTL Refresh Token有效期（会话过期时间与之一致）
func (m *Manager) RefreshTTL() time.Duration {
	return m.refreshTokenExpire
}

func (m *Manager) sign(claims Claims, ttl time.Duration) (string, error) {
	now := m.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    issuer,
		Subject:   fmt.Sprintf("%d", claims.UserID),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseToken 解析并验证Access Token
// 1. 验证签名算法和签名
// 2. 验证过期时间（exp）和生效时间（nbf）
// 3. 验证Token类型
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenTypeAccess)
}

// ParseRefreshToken 解析并验证Refresh Token
func (m *Manager) ParseRefreshToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenTypeRefresh)
}

func (m *Manager) parse(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != tokenType {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// Identity Claims → 身份信息
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Username: c.Username, IsStaff: c.IsStaff}
}

// RemainingTTL Token剩余有效期（登出时作为黑名单过期时间）
func (c *Claims) RemainingTTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}
