package components

// DelayedCallComponent 延迟调用
// 用于一次性的定时回调（如 mover 的统一清理、面板揭示阶段切换）
type DelayedCallComponent struct {
	Delay   float64 // 延迟时长(秒)
	Elapsed float64 // 已经过时间(秒)
	// Owner 所属过渡 ID，便于整体取消
	Owner    string
	Callback func()
}
