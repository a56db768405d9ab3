package book

import (
	"fmt"
	"strconv"
	"strings"
)

// 价格上限 99999.99,与原有定价字段的精度(7位数字,2位小数)一致
const (
	MinPrice int64 = 0
	MaxPrice int64 = 9999999
)

// ParsePrice 解析十进制价格字符串为"分"
// 支持: "25" "25.5" "25.00" "920"
// 小数位超过两位、非数字、负数都返回ErrInvalidPrice
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidPrice
	}

	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if intPart == "" || (hasDot && fracPart == "") || len(fracPart) > 2 {
		return 0, ErrInvalidPrice
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return 0, ErrInvalidPrice
	}
	// 7位有效数字以内,避免溢出
	intPart = strings.TrimLeft(intPart, "0")
	if len(intPart) > 5 {
		return 0, ErrInvalidPrice
	}

	var yuan int64
	if intPart != "" {
		v, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return 0, ErrInvalidPrice
		}
		yuan = v
	}

	for len(fracPart) < 2 {
		fracPart += "0"
	}
	fen, _ := strconv.ParseInt(fracPart, 10, 64)

	cents := yuan*100 + fen
	if err := ValidatePrice(cents); err != nil {
		return 0, err
	}
	return cents, nil
}

// ValidatePrice 价格范围校验
func ValidatePrice(cents int64) error {
	if cents < MinPrice || cents > MaxPrice {
		return ErrInvalidPrice
	}
	return nil
}

// FormatCents 格式化两位小数
// 例如: 2500 → "25.00", 466 → "4.66"
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
