package types

// PanelSide 详情面板所在的一侧
type PanelSide int

const (
	// PanelLeft 面板位于视口左侧（默认）
	PanelLeft PanelSide = iota
	// PanelRight 面板位于视口右侧
	PanelRight
)

// PanelInitialSide 面板创建时以及每次关闭后复位的位置
const PanelInitialSide = PanelRight

// String 返回面板位置的字符串表示
func (s PanelSide) String() string {
	if s == PanelRight {
		return "right"
	}
	return "left"
}

// SideForClick 根据点击元素中心的横坐标决定面板位置：
// 元素位于视口左半边时面板在右侧打开，反之在左侧打开
func SideForClick(centerX, viewportWidth float64) PanelSide {
	if centerX < viewportWidth/2 {
		return PanelRight
	}
	return PanelLeft
}
