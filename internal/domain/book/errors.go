package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.InvalidParam("price", "价格应为0.00-99999.99之间的数字,最多两位小数")

	// ErrInvalidName 书名为空或过长
	ErrInvalidName = apperrors.InvalidParam("name", "书名不能为空且不超过255个字符")

	// ErrInvalidAuthor 作者为空或过长
	ErrInvalidAuthor = apperrors.InvalidParam("author", "作者不能为空且不超过255个字符")

	// ErrForbidden 无权操作此图书
	// 不透露图书归属信息
	ErrForbidden = apperrors.ErrForbidden
)
