package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// newTestDB 创建内存SQLite数据库
// 单连接,保证所有查询看到同一个内存库
func newTestDB(t *testing.T) *gorm.DB {
	return openTestDB(t, "file::memory:", 1)
}

// newFileTestDB 创建文件SQLite数据库,允许多个连接并发写
// busy_timeout让写锁冲突时等待而不是直接报错
func newFileTestDB(t *testing.T, conns int) *gorm.DB {
	dsn := "file:" + filepath.Join(t.TempDir(), "catalog.db") + "?_busy_timeout=5000&_txlock=immediate"
	return openTestDB(t, dsn, conns)
}

func openTestDB(t *testing.T, dsn string, conns int) *gorm.DB {
	t.Helper()

	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver:       "sqlite",
		DSNOverride:  dsn,
		MaxOpenConns: conns,
		MaxIdleConns: conns,
		AutoMigrate:  true,
	}}
	db, err := NewDB(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type fixture struct {
	db        *gorm.DB
	users     user.Repository
	books     book.Repository
	relations *relationRepository
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithDB(newTestDB(t))
}

func newFixtureWithDB(db *gorm.DB) *fixture {
	return &fixture{
		db:        db,
		users:     NewUserRepository(db),
		books:     NewBookRepository(db, NewTxManager(db)),
		relations: NewRelationRepository(db).(*relationRepository),
	}
}

func (f *fixture) createUser(t *testing.T, username, first, last string) *user.User {
	t.Helper()
	u := user.NewUser(username, username+"@example.com", "hashed", first, last)
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) createBook(t *testing.T, name string, price int64, author string, owner *user.User) *book.Book {
	t.Helper()
	b := &book.Book{Name: name, Price: price, Author: author}
	if owner != nil {
		b.OwnerID = &owner.ID
	}
	require.NoError(t, f.books.Create(context.Background(), b))
	return b
}

func (f *fixture) relate(t *testing.T, u *user.User, b *book.Book, like bool, rate *int) {
	t.Helper()
	ctx := context.Background()
	rel, err := f.relations.GetOrCreate(ctx, u.ID, b.ID)
	require.NoError(t, err)
	rel.Like = like
	rel.Rate = rate
	require.NoError(t, f.relations.Update(ctx, rel))
}

func intPtr(v int) *int { return &v }

func uintPtr(v uint) *uint { return &v }
