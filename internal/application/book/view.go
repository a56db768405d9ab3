package book

import (
	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// BookViewResponse 图书聚合视图DTO(列表、详情)
type BookViewResponse struct {
	ID         uint             `json:"id"`
	Name       string           `json:"name"`
	Price      string           `json:"price" example:"25.00"`
	Author     string           `json:"author"`
	LikesCount int64            `json:"likes_count"`
	Rating     *string          `json:"rating" example:"4.67"` // 没有评分时为null
	OwnerName  string           `json:"owner_name"`
	Readers    []ReaderResponse `json:"readers"`
}

// ReaderResponse 读者
type ReaderResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// BookResponse 图书写操作(创建、修改)的响应DTO
type BookResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Price  string `json:"price" example:"25.00"`
	Author string `json:"author"`
	Owner  *uint  `json:"owner"` // 所有者用户ID,无主图书为null
}

func toViewResponse(v *book.View) *BookViewResponse {
	resp := &BookViewResponse{
		ID:         v.ID,
		Name:       v.Name,
		Price:      book.FormatCents(v.Price),
		Author:     v.Author,
		LikesCount: v.LikesCount,
		OwnerName:  v.OwnerName,
		Readers:    make([]ReaderResponse, 0, len(v.Readers)),
	}
	if hundredths, ok := v.Rating(); ok {
		rating := book.FormatCents(hundredths)
		resp.Rating = &rating
	}
	for _, r := range v.Readers {
		resp.Readers = append(resp.Readers, ReaderResponse{FirstName: r.FirstName, LastName: r.LastName})
	}
	return resp
}

func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:     b.ID,
		Name:   b.Name,
		Price:  book.FormatCents(b.Price),
		Author: b.Author,
		Owner:  b.OwnerID,
	}
}
