package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// SessionStore 会话存储
// Key设计：
// - session:{user_id}  登录会话（用户名、登录时间、IP）
// - blacklist:{token}  已登出的Access Token，过期时间与Token剩余有效期一致
//
// 所有Redis调用经过熔断器：Redis故障时写接口的黑名单检查快速失败，不逐个等待超时
type SessionStore struct {
	client  *redis.Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{
		client:  client,
		breaker: newBreaker(),
	}
}

func newBreaker() *circuitbreaker.CircuitBreaker {
	return circuitbreaker.NewCircuitBreaker("redis-session", circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		// 客户端断开导致的取消不算Redis故障
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			zap.L().Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// Session 登录会话
type Session struct {
	UserID    uint
	Username  string
	ClientIP  string
	LoginTime time.Time
}

func sessionKey(userID uint) string {
	return "session:" + strconv.FormatUint(uint64(userID), 10)
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

// do 在熔断器保护下执行Redis操作，错误统一转换为ErrCodeRedisError
func (s *SessionStore) do(message string, fn func() error) error {
	err := s.breaker.Execute(fn)
	if err == nil {
		return nil
	}
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		message = "缓存服务暂不可用"
	}
	return apperrors.New(apperrors.ErrCodeRedisError, message).WithCause(err)
}

// SaveSession 保存用户会话，过期时间与Refresh Token一致
func (s *SessionStore) SaveSession(ctx context.Context, sess Session, ttl time.Duration) error {
	key := sessionKey(sess.UserID)

	return s.do("保存会话失败", func() error {
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key,
				"username", sess.Username,
				"client_ip", sess.ClientIP,
				"login_time", sess.LoginTime.Unix(),
			)
			pipe.Expire(ctx, key, ttl)
			return nil
		})
		return err
	})
}

// DeleteSession 删除用户会话（用于登出）
func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	return s.do("删除会话失败", func() error {
		return s.client.Del(ctx, sessionKey(userID)).Err()
	})
}

// AddToBlacklist 将Token加入黑名单
// ttl<=0说明Token已经过期，不需要再记录
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.do("添加Token到黑名单失败", func() error {
		return s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err()
	})
}

// IsInBlacklist 检查Token是否在黑名单中
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	var exists int64
	err := s.do("检查黑名单失败", func() error {
		var err error
		exists, err = s.client.Exists(ctx, blacklistKey(token)).Result()
		return err
	})
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
