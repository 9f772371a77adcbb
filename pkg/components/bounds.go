package components

import "github.com/decker502/gallery/pkg/types"

// BoundsComponent 实体在视口中的当前包围盒（像素）
// 过渡动画查询几何信息时总是读取这里的值
type BoundsComponent struct {
	Rect types.Rect
}
