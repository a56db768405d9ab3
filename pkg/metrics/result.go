package metrics

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Result 错误 → 指标result标签
// 只返回有限的几个取值
func Result(err error) string {
	if err == nil {
		return "success"
	}
	if !apperrors.IsAppError(err) {
		return "error"
	}
	code := apperrors.GetAppError(err).Code
	switch {
	case code == apperrors.ErrCodeForbidden:
		return "forbidden"
	case code >= 40100 && code < 40200:
		return "unauthorized"
	case code >= 40400 && code < 40500:
		return "not_found"
	case code >= 40000 && code < 50000:
		return "invalid"
	default:
		return "error"
	}
}
