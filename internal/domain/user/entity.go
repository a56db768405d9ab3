package user

import (
	"time"
)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. User是身份协作方，图书目录只读取 ID、Username、FirstName、LastName、IsStaff
// 2. 密码已加密存储（bcrypt），不应该有GetPassword()等方法暴露明文
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID        uint
	Username  string
	Email     string
	Password  string // bcrypt哈希值
	FirstName string
	LastName  string
	IsStaff   bool // 管理员标记：可以修改、删除任何图书
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(username, email, hashedPassword, firstName, lastName string) *User {
	now := time.Now()
	return &User{
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Actor 当前请求的操作者
// ID为0表示匿名用户
type Actor struct {
	ID       uint
	Username string
	IsStaff  bool
}

// Anonymous 匿名操作者
var Anonymous = Actor{}

// IsAnonymous 是否匿名
func (a Actor) IsAnonymous() bool {
	return a.ID == 0
}

// AsActor 用户实体 → 操作者
func (u *User) AsActor() Actor {
	return Actor{ID: u.ID, Username: u.Username, IsStaff: u.IsStaff}
}
