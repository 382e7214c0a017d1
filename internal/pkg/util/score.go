package util

import "math"

// EstimateOneRepMax 根据重量和次数估算极限单次重量 (Epley 公式)
// 结果四舍五入为整数，作为榜单排序分值
func EstimateOneRepMax(weightKg float64, reps int) int {
	return int(math.Round(weightKg * (1 + float64(reps)/30)))
}
