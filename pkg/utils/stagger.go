package utils

import "github.com/decker502/gallery/pkg/types"

// ComputeStaggerDelays 计算径向错峰延迟
//
// 每个点的延迟与它到原点的欧氏距离成正比，按最大距离归一化后乘以 factor：
//
//	delay[i] = distance[i] / maxDistance * factor
//
// 离原点越近的网格项越早开始动画。所有点都与原点重合时（maxDistance = 0）全部返回 0。
func ComputeStaggerDelays(origin types.Point, centers []types.Point, factor float64) []float64 {
	distances := make([]float64, len(centers))
	maxDistance := 0.0
	for i, c := range centers {
		distances[i] = types.Distance(origin, c)
		if distances[i] > maxDistance {
			maxDistance = distances[i]
		}
	}
	return NormalizeStagger(distances, maxDistance, factor)
}

// NormalizeStagger 把距离换算为延迟（秒）
func NormalizeStagger(distances []float64, maxDistance, factor float64) []float64 {
	delays := make([]float64, len(distances))
	if maxDistance <= 0 {
		return delays
	}
	for i, d := range distances {
		delays[i] = d / maxDistance * factor
	}
	return delays
}
