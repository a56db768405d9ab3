package main

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

// =========================================
// 自定义Provider
// 构造函数参数需要从Config中提取，或者需要返回清理函数时使用
// =========================================

// provideDB 创建数据库连接，清理函数关闭连接池
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := database.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideRedisClient 创建Redis客户端，清理函数关闭连接
func provideRedisClient(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideRouter 注册自定义校验规则并创建Gin引擎
func provideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	relationHandler *handler.RelationHandler,
	authMiddleware *middleware.AuthMiddleware,
) (*gin.Engine, error) {
	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}
	return router.New(cfg, logger, router.Handlers{
		User:     userHandler,
		Book:     bookHandler,
		Relation: relationHandler,
	}, authMiddleware), nil
}
