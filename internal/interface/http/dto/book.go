package dto

import "encoding/json"

// BookRequest HTTP创建/整体修改图书请求(POST、PUT)
// validator tag说明:
// - required: 必填字段
// - max: 字符长度上限
// - price: 自定义价格校验(非负、最多两位小数、不超过99999.99),在validator.go中注册
//
// price同时接受数字和字符串: 25、25.5、"25.00"
type BookRequest struct {
	Name   string      `json:"name" binding:"required,max=255" example:"Test book 1"`
	Price  json.Number `json:"price" binding:"required,price" swaggertype:"string" example:"25.00"`
	Author string      `json:"author" binding:"required,max=255" example:"Author 1"`
}

// PatchBookRequest HTTP部分修改请求(PATCH)
// 只修改传入的字段
type PatchBookRequest struct {
	Name   *string      `json:"name" binding:"omitempty,max=255" example:"Test book 1"`
	Price  *json.Number `json:"price" binding:"omitempty,price" swaggertype:"string" example:"25.00"`
	Author *string      `json:"author" binding:"omitempty,max=255" example:"Author 1"`
}

// ListBooksQuery 图书列表查询参数
type ListBooksQuery struct {
	Price    string `form:"price" example:"22"`
	Search   string `form:"search" binding:"max=255" example:"Author 1"`
	Ordering string `form:"ordering" example:"-price,author"`
}

// RelationRequest 关系修改请求(仅用于文档)
// 处理器直接读取原始请求体,以区分"rate": null与不传rate
type RelationRequest struct {
	Like        *bool `json:"like" example:"true"`
	InBookmarks *bool `json:"in_bookmarks" example:"false"`
	Rate        *int  `json:"rate" example:"5"`
}

// NumberString json.Number → *string
func NumberString(n *json.Number) *string {
	if n == nil {
		return nil
	}
	s := n.String()
	return &s
}
