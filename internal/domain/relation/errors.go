package relation

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

const (
	MinRate = 1
	MaxRate = 5
)

var (
	// ErrInvalidRate 评分不在1-5之间
	ErrInvalidRate = apperrors.InvalidParam("rate", "评分必须是1到5之间的整数")

	// ErrInvalidLike like字段类型错误
	ErrInvalidLike = apperrors.InvalidParam("like", "必须是布尔值")

	// ErrInvalidBookmark in_bookmarks字段类型错误
	ErrInvalidBookmark = apperrors.InvalidParam("in_bookmarks", "必须是布尔值")

	// ErrInvalidBody 请求体不是JSON对象
	ErrInvalidBody = apperrors.New(apperrors.ErrCodeBindError, "请求体必须是JSON对象")
)
