package scenes

import (
	"github.com/decker502/gallery/pkg/config"
	"github.com/decker502/gallery/pkg/ecs"
	"github.com/decker502/gallery/pkg/entities"
	"github.com/decker502/gallery/pkg/types"
)

// buildGrid 按分组顺序创建分组标题与网格项，并记录内容总高度
func (s *GalleryScene) buildGrid() {
	grid := s.cfg.Grid
	cols := s.columns()
	left := s.gridLeft(cols)
	width := s.gridWidth(cols)
	rowHeight := grid.CellHeight + grid.CaptionHeight + grid.Gap

	y := grid.MarginTop
	index := 0

	placeItems := func(items []config.GalleryItem) {
		for i, item := range items {
			col, row := i%cols, i/cols
			rect := types.Rect{
				Left:   left + float64(col)*(grid.CellWidth+grid.Gap),
				Top:    y + float64(row)*rowHeight,
				Width:  grid.CellWidth,
				Height: grid.CellHeight,
			}
			entities.NewGridItemEntity(s.entityManager, s.resources, item, index, rect)
			index++
		}
		rows := (len(items) + cols - 1) / cols
		y += float64(rows) * rowHeight
	}

	for _, section := range s.cfg.Sections {
		entities.NewChromeEntity(s.entityManager, section, types.Rect{Left: left, Top: y, Width: width, Height: grid.HeadingHeight})
		y += grid.HeadingHeight
		placeItems(s.cfg.ItemsInSection(section.ID))
		y += grid.Gap
	}

	// 不属于任何分组的网格项排在最后，没有标题
	var ungrouped []config.GalleryItem
	for _, item := range s.cfg.Items {
		if s.cfg.Section(item.Effect) == nil {
			ungrouped = append(ungrouped, item)
		}
	}
	placeItems(ungrouped)

	s.contentHeight = y + grid.MarginTop
}

// buildPanel 创建面板实体，初始位于 PanelInitialSide
func (s *GalleryScene) buildPanel() ecs.EntityID {
	return entities.NewPanelEntity(s.entityManager, types.PanelInitialSide, s.panelGeometry(types.PanelInitialSide))
}

// sectionOverrides 分组 id → 覆盖值
func sectionOverrides(cfg *config.GalleryConfig) map[string]map[string]string {
	overrides := make(map[string]map[string]string, len(cfg.Sections))
	for _, section := range cfg.Sections {
		if len(section.Overrides) > 0 {
			overrides[section.ID] = section.Overrides
		}
	}
	return overrides
}
