package database

import (
	"time"
)

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex;size:150;not null;comment:用户名"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	FirstName string    `gorm:"size:150;not null;default:'';comment:名"`
	LastName  string    `gorm:"size:150;not null;default:'';comment:姓"`
	IsStaff   bool      `gorm:"not null;default:false;comment:管理员"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. OwnerID可为空(无主图书),创建者被删除时外键置空,图书保留
// 3. 物理删除,删除时同一事务中删除关系记录
type BookModel struct {
	ID        uint       `gorm:"primaryKey"`
	Name      string     `gorm:"index:idx_search;size:255;not null;comment:书名"`
	Price     int64      `gorm:"index;not null;comment:价格(分)"`
	Author    string     `gorm:"index:idx_search;size:255;not null;comment:作者"`
	OwnerID   *uint      `gorm:"index;comment:创建者用户ID"`
	Owner     *UserModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time  `gorm:"comment:创建时间"`
	UpdatedAt time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// RelationModel GORM用户-图书关系模型
// 设计说明:
// 1. (user_id, book_id)唯一索引,保证每对只有一条记录,并发创建由数据库兜底
// 2. like是SQL保留字,列名使用liked(JSON字段仍为like)
// 3. rate的CHECK约束作为应用层校验之外的最后一道防线
type RelationModel struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"uniqueIndex:idx_user_book;not null;comment:用户ID"`
	BookID      uint      `gorm:"uniqueIndex:idx_user_book;index;not null;comment:图书ID"`
	Liked       bool      `gorm:"column:liked;not null;default:false;comment:点赞"`
	InBookmarks bool      `gorm:"not null;default:false;comment:收藏"`
	Rate        *int      `gorm:"type:smallint;check:chk_relation_rate,rate IS NULL OR rate BETWEEN 1 AND 5;comment:评分(1-5)"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (RelationModel) TableName() string {
	return "user_book_relations"
}
