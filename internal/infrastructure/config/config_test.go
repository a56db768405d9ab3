package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("文件值覆盖默认值", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 9090
  mode: test
database:
  driver: sqlite
  dsn: "file::memory:"
jwt:
  access_token_expire: 30m
`)
		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "test", cfg.Server.Mode)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "file::memory:", cfg.Database.DSN())
		assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenExpire)
		// 未配置的字段使用默认值
		assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenExpire)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
	})

	t.Run("环境变量覆盖嵌套字段", func(t *testing.T) {
		path := writeConfig(t, `
database:
  driver: sqlite
  dsn: "file::memory:"
`)
		t.Setenv("BOOKSTORE_SERVER_PORT", "7070")
		t.Setenv("BOOKSTORE_LOG_LEVEL", "debug")

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("未知驱动报错", func(t *testing.T) {
		path := writeConfig(t, `
database:
  driver: oracle
`)
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("生产环境禁止默认JWT密钥", func(t *testing.T) {
		path := writeConfig(t, `
server:
  mode: release
`)
		_, err := LoadFile(path)
		assert.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		User:      "root",
		Password:  "secret",
		Host:      "127.0.0.1",
		Port:      3306,
		DBName:    "bookstore",
		Charset:   "utf8mb4",
		ParseTime: true,
		Loc:       "Asia/Shanghai",
	}

	assert.Equal(t,
		"root:secret@tcp(127.0.0.1:3306)/bookstore?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		d.DSN(),
	)
}
