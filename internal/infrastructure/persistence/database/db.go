package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，driver配置决定方言（mysql生产，sqlite嵌入式/测试）
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. log_sql开启时打印SQL
// 4. auto_migrate开启时自动迁移表结构
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 选择方言
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Database.LogSQL {
		logLevel = logger.Info
	}

	// 3. 连接数据库
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	zap.L().Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

	// 6. 自动迁移表结构
	// 注意：生产环境应使用版本化的迁移脚本
	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		return mysql.Open(cfg.DSN()), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// AutoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段和索引，不会删除或修改现有字段
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&RelationModel{},
	)
}
