package components

// MoverComponent 过渡动画中的 mover（沿路径排列的临时图片）
type MoverComponent struct {
	// TransitionID 所属过渡，同一过渡的 mover 一起创建、一起清理
	TransitionID string
	// Index 在路径中的序号，0 最先启动
	Index int
}
