package components

import (
	"github.com/decker502/gallery/pkg/ecs"
	"github.com/decker502/gallery/pkg/types"
)

// PanelComponent 详情面板（挂在面板根实体上）
//
// 面板由三个实体组成：根实体（整体不透明度）、图片实体、文字实体。
// 根实体在创建时持有另外两个实体的引用，过渡系统不需要再按名称查找。
type PanelComponent struct {
	Side types.PanelSide

	ItemID      string
	Title       string
	Description string

	ImageEntity   ecs.EntityID
	ContentEntity ecs.EntityID

	// CloseRect 关闭按钮区域（视口坐标）
	CloseRect types.Rect
}

// PanelPartComponent 标记面板的子实体
type PanelPartComponent struct {
	Root ecs.EntityID
}
