package relation

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Patch 关系的部分更新
// 字段为nil表示请求中未传,保持原值
type Patch struct {
	Like        *bool
	InBookmarks *bool
	Rate        *int // SetRate为true时生效,Rate为nil表示清除评分
	SetRate     bool
}

// ParsePatch 解析请求体
// 1. 只识别like、in_bookmarks、rate,其他字段忽略
// 2. "rate": null 表示清除评分,与不传rate区分
// 3. 类型错误(如"like": "yes")返回对应字段的参数错误
// 4. rate接受整数值的数字或字符串: 3、3.0、"3"、"3.0"
func ParsePatch(body []byte) (Patch, error) {
	var p Patch

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return p, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return p, ErrInvalidBody
	}

	if raw, ok := fields["like"]; ok {
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil || isNull(raw) {
			return p, ErrInvalidLike
		}
		p.Like = &v
	}

	if raw, ok := fields["in_bookmarks"]; ok {
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil || isNull(raw) {
			return p, ErrInvalidBookmark
		}
		p.InBookmarks = &v
	}

	if raw, ok := fields["rate"]; ok {
		p.SetRate = true
		if !isNull(raw) {
			v, err := parseRate(raw)
			if err != nil {
				return p, err
			}
			p.Rate = &v
		}
	}

	return p, nil
}

// Validate 校验所有字段,任何一个不合法整体拒绝
func (p Patch) Validate() error {
	if p.SetRate && p.Rate != nil && (*p.Rate < MinRate || *p.Rate > MaxRate) {
		return ErrInvalidRate
	}
	return nil
}

// Apply 把传入的字段写到关系上(调用前必须先Validate)
func (p Patch) Apply(r *Relation) {
	if p.Like != nil {
		r.Like = *p.Like
	}
	if p.InBookmarks != nil {
		r.InBookmarks = *p.InBookmarks
	}
	if p.SetRate {
		if p.Rate == nil {
			r.Rate = nil
		} else {
			rate := *p.Rate
			r.Rate = &rate
		}
	}
}

// 去掉末尾的".0"后按整数解析,"3.5"仍然非法
var trailingZeros = regexp.MustCompile(`\.0*\s*$`)

// parseRate 解析评分,数字和数字字符串都可以
func parseRate(raw json.RawMessage) (int, error) {
	var text string
	switch {
	case bytes.HasPrefix(raw, []byte(`"`)):
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, ErrInvalidRate
		}
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, ErrInvalidRate
		}
		text = n.String()
	}

	text = trailingZeros.ReplaceAllString(strings.TrimSpace(text), "")
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, ErrInvalidRate
	}
	return v, nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
