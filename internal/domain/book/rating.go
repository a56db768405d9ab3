package book

// AverageRating 计算平均评分,结果单位为百分之一(4.67 → 467)
// 规则:
// 1. count为0表示没有任何评分,返回ok=false(评分为null,不是0)
// 2. 四舍五入到两位小数,用整数运算避免浮点误差: round(sum*100/count)
func AverageRating(sum, count int64) (hundredths int64, ok bool) {
	if count <= 0 {
		return 0, false
	}
	return (sum*200 + count) / (2 * count), true
}
