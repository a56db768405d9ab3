//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	apprelation "github.com/xiebiao/bookcatalog/internal/application/relation"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/relation"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
)

// infrastructureSet 基础设施层依赖：数据库、Redis、JWT
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedisClient,
	provideJWTManager,
	redis.NewSessionStore,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	database.NewTxManager,
	database.NewUserRepository,
	database.NewBookRepository,
	database.NewRelationRepository,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	relation.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewPublishBookUseCase,
	appbook.NewUpdateBookUseCase,
	apprelation.NewPatchRelationUseCase,
)

// interfaceSet 接口层依赖
var interfaceSet = wire.NewSet(
	middleware.NewAuthMiddleware,
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewRelationHandler,
	provideRouter,
)

// InitializeApp 初始化整个应用
// 返回Gin引擎和清理函数（关闭数据库、Redis连接）
func InitializeApp(cfg *config.Config, logger *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
