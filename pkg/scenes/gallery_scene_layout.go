package scenes

import (
	"math"

	"github.com/decker502/gallery/pkg/components"
	"github.com/decker502/gallery/pkg/ecs"
	"github.com/decker502/gallery/pkg/systems"
	"github.com/decker502/gallery/pkg/types"
)

// columns 视口能容纳的列数，不超过配置的列数，至少 1 列
func (s *GalleryScene) columns() int {
	grid := s.cfg.Grid
	fit := int((s.viewport.Width - 2*grid.MarginX + grid.Gap) / (grid.CellWidth + grid.Gap))
	if fit > grid.Columns {
		fit = grid.Columns
	}
	if fit < 1 {
		fit = 1
	}
	return fit
}

func (s *GalleryScene) gridWidth(cols int) float64 {
	grid := s.cfg.Grid
	return float64(cols)*grid.CellWidth + float64(cols-1)*grid.Gap
}

// gridLeft 网格水平居中，左边距不小于 MarginX
func (s *GalleryScene) gridLeft(cols int) float64 {
	return math.Max(s.cfg.Grid.MarginX, (s.viewport.Width-s.gridWidth(cols))/2)
}

// panelGeometry 面板占据视口的一半：图片在上，文字在下，关闭按钮在文字区右上角
func (s *GalleryScene) panelGeometry(side types.PanelSide) systems.PanelGeometry {
	p := s.cfg.Panel
	half := s.viewport.Width / 2

	area := types.Rect{Width: half, Height: s.viewport.Height}
	if side == types.PanelRight {
		area.Left = half
	}

	inner := math.Max(0, area.Width-2*p.Padding)
	image := types.Rect{
		Left:   area.Left + p.Padding,
		Top:    p.Padding,
		Width:  inner,
		Height: math.Max(0, s.viewport.Height*p.ImageRatio-p.Padding),
	}
	content := types.Rect{
		Left:   image.Left,
		Top:    image.Bottom() + p.Padding/2,
		Width:  math.Max(0, inner-p.CloseSize-p.Padding/2),
		Height: p.ContentHeight,
	}
	if maxHeight := s.viewport.Height - content.Top - p.Padding/2; content.Height > maxHeight {
		content.Height = math.Max(0, maxHeight)
	}
	closeRect := types.Rect{
		Left:   area.Right() - p.Padding - p.CloseSize,
		Top:    content.Top,
		Width:  p.CloseSize,
		Height: p.CloseSize,
	}

	return systems.PanelGeometry{Area: area, Image: image, Content: content, Close: closeRect}
}

// maxScroll 内容超出视口的高度
func (s *GalleryScene) maxScroll() float64 {
	return math.Max(0, s.contentHeight-s.viewport.Height)
}

// scroll 滚轮回调；输入系统只在 Idle 阶段调用
func (s *GalleryScene) scroll(wheelY float64) {
	speed := s.cfg.Grid.ScrollSpeed * s.settings.GetSettings().ScrollSpeed
	target := math.Max(0, math.Min(s.maxScroll(), s.scrollY-wheelY*speed))
	if target == s.scrollY {
		return
	}
	s.scrollY = target
	s.applyScroll()
}

// applyScroll 按滚动距离重新计算网格项与分组标题的包围盒
// 过渡系统读取的几何信息因此总是当前屏幕坐标
func (s *GalleryScene) applyScroll() {
	em := s.entityManager
	for _, id := range ecs.GetEntitiesWith2[*components.GridItemComponent, *components.BoundsComponent](em) {
		item, _ := ecs.GetComponent[*components.GridItemComponent](em, id)
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](em, id)
		bounds.Rect = item.LayoutRect.Translate(0, -s.scrollY)
	}
	for _, id := range ecs.GetEntitiesWith2[*components.ChromeComponent, *components.BoundsComponent](em) {
		chrome, _ := ecs.GetComponent[*components.ChromeComponent](em, id)
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](em, id)
		bounds.Rect = chrome.LayoutRect.Translate(0, -s.scrollY)
	}
}

// ScrollY 当前滚动距离（像素）
func (s *GalleryScene) ScrollY() float64 {
	return s.scrollY
}
