package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题),对外统一渲染为两位小数
// 2. OwnerID为nil表示无主图书(只有管理员可以修改、删除)
type Book struct {
	ID        uint
	Name      string
	Price     int64 // 价格(单位:分,25.00 = 2500)
	Author    string
	OwnerID   *uint // 创建者用户ID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书(工厂方法)
// ownerID由服务层强制设置为当前操作者
func NewBook(name string, price int64, author string, ownerID uint) *Book {
	now := time.Now()
	return &Book{
		Name:      name,
		Price:     price,
		Author:    author,
		OwnerID:   &ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOwnedBy 检查图书是否由指定用户创建
func (b *Book) IsOwnedBy(userID uint) bool {
	return b.OwnerID != nil && *b.OwnerID == userID
}

// Apply 应用修改(只修改传入的字段)
func (b *Book) Apply(changes Changes) {
	if changes.Name != nil {
		b.Name = *changes.Name
	}
	if changes.Price != nil {
		b.Price = *changes.Price
	}
	if changes.Author != nil {
		b.Author = *changes.Author
	}
	b.UpdatedAt = time.Now()
}

// Changes 图书修改参数
// PUT请求三个字段都必填,PATCH请求只传需要修改的字段
type Changes struct {
	Name   *string
	Price  *int64
	Author *string
}

// Reader 读者(与图书存在关系记录的用户)
type Reader struct {
	FirstName string
	LastName  string
}

// View 聚合视图(不落库)
// 由仓储的分组查询计算得出
type View struct {
	Book
	OwnerName  string   // 创建者用户名,无主图书为空字符串
	LikesCount int64    // like=true的关系数
	RateSum    int64    // 非空评分之和
	RateCount  int64    // 非空评分个数
	Readers    []Reader // 按关系创建顺序
}

// Rating 平均评分(单位:百分之一),没有评分时ok=false
func (v *View) Rating() (hundredths int64, ok bool) {
	return AverageRating(v.RateSum, v.RateCount)
}
