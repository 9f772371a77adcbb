package entities

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/gallery/pkg/components"
	"github.com/decker502/gallery/pkg/config"
	"github.com/decker502/gallery/pkg/ecs"
	"github.com/decker502/gallery/pkg/game"
	"github.com/decker502/gallery/pkg/systems"
	"github.com/decker502/gallery/pkg/types"
)

// ImageLoader 工厂需要的资源加载能力
// *game.ResourceManager 实现了该接口，测试中可替换为 mock
type ImageLoader interface {
	LoadImage(path string) (*ebiten.Image, error)
}

// NewGridItemEntity 创建一个网格项实体
// 参数:
//   - em: EntityManager 实例
//   - rl: 图片加载器
//   - item: 画廊数据中的网格项
//   - index: 在整个画廊中的顺序
//   - rect: 未滚动时的布局位置
//
// 返回: 创建的实体ID
//
// 图片加载失败时 SpriteComponent.Image 保持 nil，渲染时以占位色绘制。
func NewGridItemEntity(em *ecs.EntityManager, rl ImageLoader, item config.GalleryItem, index int, rect types.Rect) ecs.EntityID {
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.GridItemComponent{
		ItemID:      item.ID,
		Section:     item.Effect,
		Index:       index,
		Title:       item.Title,
		Description: item.Description,
		Overrides:   item.Overrides,
		LayoutRect:  rect,
	})
	ecs.AddComponent(em, id, &components.BoundsComponent{Rect: rect})
	ecs.AddComponent(em, id, components.NewAppearance(components.ZGrid))

	sprite := &components.SpriteComponent{
		ImagePath:   item.Image,
		Placeholder: game.PlaceholderColor(item.Image),
	}
	if item.Image != "" && rl != nil {
		// 失败已由加载器记录；Image 为 nil 时渲染走 Placeholder 分支
		sprite.Image, _ = rl.LoadImage(item.Image)
	}
	ecs.AddComponent(em, id, sprite)
	return id
}

// NewChromeEntity 创建分组标题实体（标题 + 说明）
func NewChromeEntity(em *ecs.EntityManager, section config.SectionConfig, rect types.Rect) ecs.EntityID {
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.ChromeComponent{
		Title:      section.Title,
		Meta:       section.Meta,
		LayoutRect: rect,
	})
	ecs.AddComponent(em, id, &components.BoundsComponent{Rect: rect})
	ecs.AddComponent(em, id, components.NewAppearance(components.ZChrome))
	return id
}

// NewPanelEntity 创建详情面板：根实体、图片实体和文字实体
//
// 根实体和文字初始透明；打开时由过渡系统写入内容、侧边和位置。
// 返回根实体ID，子实体通过 PanelComponent 引用。
func NewPanelEntity(em *ecs.EntityManager, side types.PanelSide, geometry systems.PanelGeometry) ecs.EntityID {
	root := em.CreateEntity()
	image := em.CreateEntity()
	content := em.CreateEntity()

	rootAppearance := components.NewAppearance(components.ZPanel)
	rootAppearance.Opacity = 0
	ecs.AddComponent(em, root, rootAppearance)
	ecs.AddComponent(em, root, &components.BoundsComponent{Rect: geometry.Area})
	ecs.AddComponent(em, root, &components.PanelComponent{
		Side:          side,
		ImageEntity:   image,
		ContentEntity: content,
		CloseRect:     geometry.Close,
	})

	ecs.AddComponent(em, image, &components.PanelPartComponent{Root: root})
	ecs.AddComponent(em, image, &components.BoundsComponent{Rect: geometry.Image})
	ecs.AddComponent(em, image, components.NewAppearance(components.ZPanel+1))

	contentAppearance := components.NewAppearance(components.ZPanel + 2)
	contentAppearance.Opacity = 0
	ecs.AddComponent(em, content, &components.PanelPartComponent{Root: root})
	ecs.AddComponent(em, content, &components.BoundsComponent{Rect: geometry.Content})
	ecs.AddComponent(em, content, contentAppearance)

	return root
}
