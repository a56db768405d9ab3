package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	apprelation "github.com/xiebiao/bookcatalog/internal/application/relation"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/relation"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

// memorySessionStore 内存会话存储,替代Redis
type memorySessionStore struct {
	mu        sync.Mutex
	sessions  map[uint]redis.Session
	blacklist map[string]time.Duration
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{
		sessions:  make(map[uint]redis.Session),
		blacklist: make(map[string]time.Duration),
	}
}

func (s *memorySessionStore) SaveSession(_ context.Context, sess redis.Session, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = sess
	return nil
}

func (s *memorySessionStore) DeleteSession(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *memorySessionStore) AddToBlacklist(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[token] = ttl
	return nil
}

func (s *memorySessionStore) IsInBlacklist(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blacklist[token]
	return ok, nil
}

// testServer 完整的HTTP栈:Gin路由 + 真实仓储(内存SQLite) + 内存会话
type testServer struct {
	engine    *gin.Engine
	db        *gorm.DB
	jwt       *jwt.Manager
	sessions  *memorySessionStore
	users     user.Repository
	books     book.Repository
	relations relation.Repository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			DSNOverride:  "file::memory:",
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			AutoMigrate:  true,
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}

	db, err := database.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	jwtManager := jwt.NewManager("test-secret", 15*time.Minute, time.Hour)
	sessions := newMemorySessionStore()

	userRepo := database.NewUserRepository(db)
	bookRepo := database.NewBookRepository(db, database.NewTxManager(db))
	relationRepo := database.NewRelationRepository(db)

	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	relationService := relation.NewService(relationRepo, bookRepo)

	require.NoError(t, dto.RegisterValidators())
	engine := New(cfg, zap.NewNop(), Handlers{
		User: handler.NewUserHandler(
			appuser.NewRegisterUseCase(userService),
			appuser.NewLoginUseCase(userService, userRepo, jwtManager, sessions),
			appuser.NewLogoutUseCase(sessions, jwtManager),
		),
		Book: handler.NewBookHandler(
			appbook.NewListBooksUseCase(bookService),
			appbook.NewPublishBookUseCase(bookService),
			appbook.NewUpdateBookUseCase(bookService),
		),
		Relation: handler.NewRelationHandler(apprelation.NewPatchRelationUseCase(relationService)),
	}, middleware.NewAuthMiddleware(jwtManager, sessions))

	return &testServer{
		engine:    engine,
		db:        db,
		jwt:       jwtManager,
		sessions:  sessions,
		users:     userRepo,
		books:     bookRepo,
		relations: relationRepo,
	}
}

func (s *testServer) createUser(t *testing.T, username, first, last string, staff bool) *user.User {
	t.Helper()
	u := user.NewUser(username, username+"@example.com", "hashed", first, last)
	u.IsStaff = staff
	require.NoError(t, s.users.Create(context.Background(), u))
	return u
}

func (s *testServer) token(t *testing.T, u *user.User) string {
	t.Helper()
	pair, err := s.jwt.GenerateToken(jwt.Identity{UserID: u.ID, Username: u.Username, IsStaff: u.IsStaff})
	require.NoError(t, err)
	return pair.AccessToken
}

func (s *testServer) createBook(t *testing.T, name string, price int64, author string, owner *user.User) *book.Book {
	t.Helper()
	b := &book.Book{Name: name, Price: price, Author: author}
	if owner != nil {
		b.OwnerID = &owner.ID
	}
	require.NoError(t, s.books.Create(context.Background(), b))
	return b
}

func (s *testServer) relate(t *testing.T, u *user.User, b *book.Book, like bool, rate *int) {
	t.Helper()
	ctx := context.Background()
	rel, err := s.relations.GetOrCreate(ctx, u.ID, b.ID)
	require.NoError(t, err)
	rel.Like = like
	rel.Rate = rate
	require.NoError(t, s.relations.Update(ctx, rel))
}

func (s *testServer) countRelations(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(&database.RelationModel{}).Count(&n).Error)
	return n
}

// do 发送请求,body为string时原样发送,否则编码为JSON
func (s *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, _ := json.Marshal(v)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decode 解析响应信封,data解析到out(可为nil)
func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func intPtr(v int) *int { return &v }
