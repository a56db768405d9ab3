package book

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则(权限、字段校验),不关心传输层
// 2. 写操作的判断顺序:图书是否存在 → 权限 → 字段校验
type Service interface {
	// List 查询聚合视图列表(公开接口)
	List(ctx context.Context, params ListParams) ([]*View, error)

	// Get 查询单本图书聚合视图(公开接口)
	Get(ctx context.Context, id uint) (*View, error)

	// Create 创建图书
	// 业务规则:必须登录;所有者强制设为当前用户
	Create(ctx context.Context, actor user.Actor, input CreateInput) (*Book, error)

	// Update 修改图书(PUT全部字段或PATCH部分字段)
	// 业务规则:只有管理员或所有者可以修改
	Update(ctx context.Context, actor user.Actor, id uint, input UpdateInput) (*Book, error)

	// Delete 删除图书
	// 业务规则:只有管理员或所有者可以删除
	Delete(ctx context.Context, actor user.Actor, id uint) error
}

// CreateInput 创建图书参数
// 价格为十进制字符串(如"25.00"),由服务解析为分
type CreateInput struct {
	Name   string
	Price  string
	Author string
}

// UpdateInput 修改图书参数,nil字段不修改
type UpdateInput struct {
	Name   *string
	Price  *string
	Author *string
}

const maxTextLen = 255

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, params ListParams) ([]*View, error) {
	return s.repo.ListViews(ctx, params)
}

func (s *service) Get(ctx context.Context, id uint) (*View, error) {
	return s.repo.FindView(ctx, id)
}

// Create 创建图书
func (s *service) Create(ctx context.Context, actor user.Actor, input CreateInput) (*Book, error) {
	// 1. 权限检查(匿名用户拒绝)
	if err := Authorize(actor, nil, OpCreate); err != nil {
		return nil, err
	}

	// 2. 字段校验
	changes, err := toChanges(UpdateInput{Name: &input.Name, Price: &input.Price, Author: &input.Author})
	if err != nil {
		return nil, err
	}

	// 3. 创建实体,所有者为当前用户(忽略请求中的owner)
	book := NewBook(*changes.Name, *changes.Price, *changes.Author, actor.ID)

	// 4. 持久化
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Update 修改图书
func (s *service) Update(ctx context.Context, actor user.Actor, id uint, input UpdateInput) (*Book, error) {
	// 1. 查询图书(不存在直接返回404)
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 权限检查
	if err := Authorize(actor, book, OpUpdate); err != nil {
		return nil, err
	}

	// 3. 字段校验
	changes, err := toChanges(input)
	if err != nil {
		return nil, err
	}

	// 4. 应用修改并持久化
	book.Apply(changes)
	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete 删除图书
func (s *service) Delete(ctx context.Context, actor user.Actor, id uint) error {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := Authorize(actor, book, OpDelete); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// toChanges 校验并转换修改参数(nil字段跳过)
// 书名、作者去掉首尾空格,价格解析为分
func toChanges(input UpdateInput) (Changes, error) {
	var c Changes
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if !validText(name) {
			return c, ErrInvalidName
		}
		c.Name = &name
	}
	if input.Price != nil {
		price, err := ParsePrice(*input.Price)
		if err != nil {
			return c, err
		}
		c.Price = &price
	}
	if input.Author != nil {
		author := strings.TrimSpace(*input.Author)
		if !validText(author) {
			return c, ErrInvalidAuthor
		}
		c.Author = &author
	}
	return c, nil
}

func validText(s string) bool {
	return s != "" && utf8.RuneCountInString(s) <= maxTextLen
}
