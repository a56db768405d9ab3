package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParsePrice 测试价格解析
func TestParsePrice(t *testing.T) {
	valid := map[string]int64{
		"25":       2500,
		"25.5":     2550,
		"25.00":    2500,
		"0":        0,
		"0.01":     1,
		"920.00":   92000,
		"99999.99": 9999999,
		" 22 ":     2200,
		"007.10":   710,
	}
	for in, want := range valid {
		got, err := ParsePrice(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	invalid := []string{"", "-1", "+3", "abc", "1.234", "1.", ".5", "1e3", "100000", "12,50", "1.2.3"}
	for _, in := range invalid {
		_, err := ParsePrice(in)
		assert.ErrorIs(t, err, ErrInvalidPrice, in)
	}
}

// TestFormatCents 测试价格格式化(总是两位小数)
func TestFormatCents(t *testing.T) {
	assert.Equal(t, "25.00", FormatCents(2500))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "4.67", FormatCents(467))
	assert.Equal(t, "-1.50", FormatCents(-150))
}
