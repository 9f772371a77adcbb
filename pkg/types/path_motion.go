package types

// PathMotion 运动路径样式
type PathMotion string

const (
	// MotionLinear 直线
	MotionLinear PathMotion = "linear"
	// MotionSine 垂直方向正弦偏移
	MotionSine PathMotion = "sine"
	// MotionDiagonal 水平和垂直方向同时施加正弦偏移
	MotionDiagonal PathMotion = "diagonal"
	// MotionBounce 抛物线式上抬，峰值位于 BounceCenter
	MotionBounce PathMotion = "bounce"
)

// ParsePathMotion 解析路径样式字符串，无法识别时返回 false
func ParsePathMotion(s string) (PathMotion, bool) {
	switch m := PathMotion(s); m {
	case MotionLinear, MotionSine, MotionDiagonal, MotionBounce:
		return m, true
	default:
		return "", false
	}
}
