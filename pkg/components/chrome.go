package components

import "github.com/decker502/gallery/pkg/types"

// ChromeComponent 分组标题等覆盖层
// 面板打开时淡出，关闭时淡入
type ChromeComponent struct {
	Title string
	Meta  string

	LayoutRect types.Rect
}
