package utils

import (
	"math"

	"github.com/decker502/gallery/pkg/types"
)

// PathParams 运动路径的样式参数
type PathParams struct {
	Motion          types.PathMotion
	SineAmplitude   float64 // 正弦/弹跳偏移幅度（像素）
	SineFrequency   float64 // 正弦频率（弧度，t 从 0 到 1 时的总相位）
	WobbleStrength  float64 // 抖动强度（像素），两轴各取 [-s/2, s/2)
	BounceIntensity float64 // 弹跳幅度倍率
	BounceCenter    float64 // 弹跳峰值所在进度 (0, 1)
}

// GenerateMotionPath 计算起止矩形之间的 steps 个中间矩形
//
// 算法：
//  1. 取 steps+2 个均匀分布的插值参数 t ∈ [0, 1]（含两端）
//  2. 对宽、高、中心点分别线性插值
//  3. 非直线样式在中心点上叠加偏移，抖动在两轴上叠加随机量
//  4. 由中心点和尺寸推出左上角，去掉首尾两个样本（即起止矩形本身）
//
// 参数：
//   - start, end: 起止矩形（视口坐标）
//   - steps: 中间矩形数量，<= 0 时返回空路径
//   - params: 路径样式
//   - rng: 抖动随机源，为 nil 时不抖动
//
// 返回：
//   - []types.Rect: 长度恰好为 steps 的路径
func GenerateMotionPath(start, end types.Rect, steps int, params PathParams, rng RandomSource) []types.Rect {
	if steps <= 0 {
		return []types.Rect{}
	}

	fullSteps := steps + 2
	startCenter := start.Center()
	endCenter := end.Center()

	path := make([]types.Rect, 0, steps)
	for i := 1; i < fullSteps-1; i++ {
		t := float64(i) / float64(fullSteps-1)

		width := Lerp(start.Width, end.Width, t)
		height := Lerp(start.Height, end.Height, t)
		center := types.Point{
			X: Lerp(startCenter.X, endCenter.X, t),
			Y: Lerp(startCenter.Y, endCenter.Y, t),
		}

		dx, dy := motionOffset(params, t)
		center.X += dx
		center.Y += dy

		if params.WobbleStrength > 0 && rng != nil {
			center.X += (rng.Float64() - 0.5) * params.WobbleStrength
			center.Y += (rng.Float64() - 0.5) * params.WobbleStrength
		}

		path = append(path, types.RectFromCenter(center, width, height))
	}

	return path
}

// motionOffset 计算非直线样式在进度 t 处的中心点偏移
func motionOffset(p PathParams, t float64) (dx, dy float64) {
	switch p.Motion {
	case types.MotionSine:
		return 0, p.SineAmplitude * math.Sin(t*p.SineFrequency)
	case types.MotionDiagonal:
		off := p.SineAmplitude * math.Sin(t*p.SineFrequency)
		return off, off
	case types.MotionBounce:
		return 0, -bounceLift(t, p.BounceCenter) * p.SineAmplitude * p.BounceIntensity
	default:
		return 0, 0
	}
}

// bounceLift 抛物线抬升系数：t = center 时为 1，t = 0 或 1 时为 0
func bounceLift(t, center float64) float64 {
	if center <= 0 || center >= 1 {
		center = 0.5
	}
	var u float64
	if t <= center {
		u = (t - center) / center
	} else {
		u = (t - center) / (1 - center)
	}
	return 1 - u*u
}
