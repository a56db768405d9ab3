package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"

	_ "github.com/xiebiao/bookcatalog/docs" // swagger文档
)

// Handlers 路由依赖的处理器
type Handlers struct {
	User     *handler.UserHandler
	Book     *handler.BookHandler
	Relation *handler.RelationHandler
}

// New 创建并配置Gin引擎
// 中间件执行顺序：Recovery → Tracing → Logger → Metrics → 路由匹配 → Auth（如果有） → Handler
func New(cfg *config.Config, logger *zap.Logger, h Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Tracing())
	r.Use(middleware.Logger(logger))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// Swagger文档（生产环境不开放）
	// 访问 http://localhost:8080/swagger/index.html
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", h.User.Register)
			users.POST("/login", h.User.Login)
			users.POST("/refresh", h.User.Refresh)
			users.POST("/logout", auth.RequireAuth(), h.User.Logout)
		}

		// 图书模块：查询公开，写操作需要登录
		books := v1.Group("/books")
		{
			books.GET("", h.Book.ListBooks)
			books.GET("/:id", h.Book.GetBook)
			books.POST("", auth.RequireAuth(), h.Book.PublishBook)
			books.PUT("/:id", auth.RequireAuth(), h.Book.UpdateBook)
			books.PATCH("/:id", auth.RequireAuth(), h.Book.PatchBook)
			books.DELETE("/:id", auth.RequireAuth(), h.Book.DeleteBook)
		}

		// 图书关系模块（需要登录）
		relations := v1.Group("/book-relations")
		relations.Use(auth.RequireAuth())
		{
			relations.PATCH("/:book", h.Relation.PatchRelation)
		}
	}

	return r
}
