package systems

import (
	"image/color"
	"testing"

	"github.com/decker502/gallery/pkg/components"
	"github.com/decker502/gallery/pkg/config"
	"github.com/decker502/gallery/pkg/ecs"
	"github.com/decker502/gallery/pkg/game"
	"github.com/decker502/gallery/pkg/types"
	"github.com/decker502/gallery/pkg/utils"
)

const testFrame = 1.0 / 60.0

var testViewport = types.Size{Width: 1000, Height: 600}

// galleryFixture 一个最小画廊：一行网格项 + 面板
type galleryFixture struct {
	em          *ecs.EntityManager
	state       *game.GalleryState
	timers      *DelayedCallSystem
	tweens      *TweenSystem
	movers      *MoverSystem
	transitions *TransitionSystem

	panel ecs.EntityID
	items []ecs.EntityID
}

type fixtureItem struct {
	id        string
	section   string
	rect      types.Rect
	image     string
	overrides map[string]string
}

func defaultFixtureItems() []fixtureItem {
	return []fixtureItem{
		{id: "a", section: "effect01", rect: types.Rect{Left: 40, Top: 40, Width: 100, Height: 100}, image: "images/a.png"},
		{id: "b", section: "effect01", rect: types.Rect{Left: 160, Top: 40, Width: 100, Height: 100}, image: "images/b.png"},
		{id: "c", section: "effect01", rect: types.Rect{Left: 760, Top: 40, Width: 100, Height: 100}, image: "images/c.png"},
	}
}

func testPanelLayout(side types.PanelSide) PanelGeometry {
	left := 0.0
	if side == types.PanelRight {
		left = testViewport.Width / 2
	}
	return PanelGeometry{
		Area:    types.Rect{Left: left, Top: 0, Width: testViewport.Width / 2, Height: testViewport.Height},
		Image:   types.Rect{Left: left + 40, Top: 40, Width: 420, Height: 380},
		Content: types.Rect{Left: left + 40, Top: 440, Width: 420, Height: 120},
		Close:   types.Rect{Left: left + 440, Top: 440, Width: 20, Height: 20},
	}
}

func newGalleryFixture(t *testing.T, base config.EffectConfig, items []fixtureItem, sections map[string]map[string]string) *galleryFixture {
	t.Helper()

	em := ecs.NewEntityManager()
	f := &galleryFixture{
		em:     em,
		state:  game.NewGalleryState(),
		timers: NewDelayedCallSystem(em),
		tweens: NewTweenSystem(em),
	}
	rng := utils.NewRandomSource(42)
	f.movers = NewMoverSystem(em, f.timers, rng)

	for i, it := range items {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.GridItemComponent{
			ItemID:    it.id,
			Section:   it.section,
			Index:     i,
			Title:     "Title " + it.id,
			Overrides: it.overrides,
		})
		ecs.AddComponent(em, id, &components.BoundsComponent{Rect: it.rect})
		ecs.AddComponent(em, id, components.NewAppearance(components.ZGrid))
		ecs.AddComponent(em, id, &components.SpriteComponent{
			ImagePath:   it.image,
			Placeholder: color.RGBA{R: 80, G: 80, B: 80, A: 255},
		})
		f.items = append(f.items, id)
	}

	chrome := em.CreateEntity()
	ecs.AddComponent(em, chrome, &components.ChromeComponent{Title: "Effect 01"})
	ecs.AddComponent(em, chrome, &components.BoundsComponent{Rect: types.Rect{Left: 40, Top: 0, Width: 400, Height: 30}})
	ecs.AddComponent(em, chrome, components.NewAppearance(components.ZChrome))

	f.panel = newTestPanel(em, true)

	f.transitions = NewTransitionSystem(em, f.state, f.timers, f.movers, TransitionOptions{
		Base:     base,
		Sections: sections,
		Viewport: testViewport,
		Panel:    f.panel,
		Layout:   testPanelLayout,
		RNG:      rng,
	})
	return f
}

// newTestPanel 创建面板实体；mounted 为 false 时文字实体缺少外观组件，模拟尚未挂载
func newTestPanel(em *ecs.EntityManager, mounted bool) ecs.EntityID {
	root := em.CreateEntity()
	image := em.CreateEntity()
	content := em.CreateEntity()

	rootAppearance := components.NewAppearance(components.ZPanel)
	rootAppearance.Opacity = 0
	ecs.AddComponent(em, root, rootAppearance)
	ecs.AddComponent(em, root, &components.PanelComponent{ImageEntity: image, ContentEntity: content})

	ecs.AddComponent(em, image, &components.PanelPartComponent{Root: root})
	ecs.AddComponent(em, image, components.NewAppearance(components.ZPanel+1))

	ecs.AddComponent(em, content, &components.PanelPartComponent{Root: root})
	if mounted {
		ecs.AddComponent(em, content, components.NewAppearance(components.ZPanel+2))
	}
	return root
}

// advance 以固定帧长推进时间
func (f *galleryFixture) advance(seconds float64) {
	frames := int(seconds/testFrame + 0.5)
	for i := 0; i < frames; i++ {
		f.tweens.Update(testFrame)
		f.timers.Update(testFrame)
		f.transitions.Update(testFrame)
		f.em.RemoveMarkedEntities()
	}
}

func (f *galleryFixture) appearance(id ecs.EntityID) *components.AppearanceComponent {
	a, _ := ecs.GetComponent[*components.AppearanceComponent](f.em, id)
	return a
}

func countMovers(em *ecs.EntityManager) int {
	return len(ecs.GetEntitiesWith1[*components.MoverComponent](em))
}

func getComponent[T any](f *galleryFixture, id ecs.EntityID) (T, bool) {
	return ecs.GetComponent[T](f.em, id)
}

func getSprite(f *galleryFixture, id ecs.EntityID) (*components.SpriteComponent, bool) {
	return getComponent[*components.SpriteComponent](f, id)
}

func ecsTimelines(f *galleryFixture) []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.TweenComponent](f.em)
}
