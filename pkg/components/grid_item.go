package components

import "github.com/decker502/gallery/pkg/types"

// GridItemComponent 网格项
type GridItemComponent struct {
	// ItemID 画廊数据中的唯一 id
	ItemID string
	// Section 所属效果分组
	Section string
	// Index 在整个画廊中的顺序
	Index int

	Title       string
	Description string

	// Overrides 网格项自带的效果覆盖值（字符串键值对）
	Overrides map[string]string

	// LayoutRect 未滚动时的布局位置，BoundsComponent = LayoutRect 上移滚动距离
	LayoutRect types.Rect
}
