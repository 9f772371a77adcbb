package scenes

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/gallery/pkg/config"
	"github.com/decker502/gallery/pkg/ecs"
	"github.com/decker502/gallery/pkg/game"
	"github.com/decker502/gallery/pkg/systems"
	"github.com/decker502/gallery/pkg/types"
	"github.com/decker502/gallery/pkg/utils"
)

// 字体大小（像素）
const (
	headingFontSize = 26.0
	metaFontSize    = 14.0
	captionFontSize = 15.0
	titleFontSize   = 30.0
	bodyFontSize    = 16.0
)

var errNilConfig = errors.New("gallery config is nil")

// GallerySceneOptions 画廊场景的构造参数
type GallerySceneOptions struct {
	Config    *config.GalleryConfig
	Resources *game.ResourceManager
	// Settings 可为 nil，此时使用默认设置
	Settings *game.SettingsManager
	// ReducedMotion 本次运行强制减少动画，不写入设置
	ReducedMotion bool
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
}

// GalleryScene 图片画廊：分组网格 + 点击后的 mover 过渡与详情面板
//
// 每帧的系统顺序：输入 → 补间 → 定时回调 → 过渡 → 清理已删除实体。
type GalleryScene struct {
	cfg       *config.GalleryConfig
	resources *game.ResourceManager
	settings  *game.SettingsManager

	entityManager *ecs.EntityManager
	state         *game.GalleryState
	viewport      types.Size

	tweenSystem       *systems.TweenSystem
	delayedCallSystem *systems.DelayedCallSystem
	moverSystem       *systems.MoverSystem
	transitionSystem  *systems.TransitionSystem
	inputSystem       *systems.InputSystem
	renderSystem      *systems.RenderSystem

	panel         ecs.EntityID
	reducedMotion bool

	// 滚动
	scrollY       float64
	contentHeight float64
}

// NewGalleryScene 根据画廊配置创建场景
func NewGalleryScene(opts GallerySceneOptions) (*GalleryScene, error) {
	if opts.Config == nil {
		return nil, errNilConfig
	}
	resources := opts.Resources
	if resources == nil {
		resources = game.NewResourceManager(opts.Config.BaseDir)
	}
	settings := opts.Settings
	if settings == nil {
		settings = game.NewSettingsManager(nil)
	}

	em := ecs.NewEntityManager()
	s := &GalleryScene{
		cfg:           opts.Config,
		resources:     resources,
		settings:      settings,
		entityManager: em,
		state:         game.NewGalleryState(),
		viewport: types.Size{
			Width:  float64(opts.Config.Window.Width),
			Height: float64(opts.Config.Window.Height),
		},
		reducedMotion: opts.ReducedMotion || settings.GetSettings().ReducedMotion,
	}

	fonts, err := s.loadFonts()
	if err != nil {
		return nil, err
	}

	s.buildGrid()
	s.panel = s.buildPanel()

	rng := utils.NewRandomSource(opts.Seed)
	s.tweenSystem = systems.NewTweenSystem(em)
	s.delayedCallSystem = systems.NewDelayedCallSystem(em)
	s.moverSystem = systems.NewMoverSystem(em, s.delayedCallSystem, rng)
	s.transitionSystem = systems.NewTransitionSystem(em, s.state, s.delayedCallSystem, s.moverSystem, systems.TransitionOptions{
		Base:          *opts.Config.Base,
		Sections:      sectionOverrides(opts.Config),
		Viewport:      s.viewport,
		Panel:         s.panel,
		Layout:        s.panelGeometry,
		RNG:           rng,
		ReducedMotion: s.reducedMotion,
	})
	s.inputSystem = systems.NewInputSystem(em, s.state, s.transitionSystem, s.panel)
	s.inputSystem.OnScroll = s.scroll
	s.renderSystem = systems.NewRenderSystem(em, fonts, s.panel, s.viewport)

	s.state.OnPhaseChange(func(from, to game.GalleryPhase) {
		log.Debugf("[GalleryScene] Phase: %s → %s", from, to)
	})

	log.Info("[GalleryScene] Gallery ready",
		"sections", len(opts.Config.Sections), "items", len(opts.Config.Items),
		"viewport", s.viewport)
	return s, nil
}

func (s *GalleryScene) loadFonts() (systems.Fonts, error) {
	var fonts systems.Fonts
	faces := []struct {
		dst  **text.GoTextFace
		size float64
	}{
		{&fonts.Heading, headingFontSize},
		{&fonts.Meta, metaFontSize},
		{&fonts.Caption, captionFontSize},
		{&fonts.Title, titleFontSize},
		{&fonts.Body, bodyFontSize},
	}
	for _, f := range faces {
		face, err := s.resources.LoadFont(f.size)
		if err != nil {
			return fonts, fmt.Errorf("failed to load font: %w", err)
		}
		*f.dst = face
	}
	return fonts, nil
}

// Update 推进一帧
func (s *GalleryScene) Update(deltaTime float64) {
	s.inputSystem.Update(deltaTime)
	s.tweenSystem.Update(deltaTime)
	s.delayedCallSystem.Update(deltaTime)
	s.transitionSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制背景与所有实体
func (s *GalleryScene) Draw(screen *ebiten.Image) {
	screen.Fill(systems.ColorBackground)
	s.renderSystem.Draw(screen)
}

// Dispose 停止所有动画与定时回调，场景被替换或程序退出时调用
func (s *GalleryScene) Dispose() {
	s.transitionSystem.Teardown()
	s.entityManager.RemoveMarkedEntities()
}

// SetReducedMotion 切换减少动画并持久化，从下一次过渡开始生效
func (s *GalleryScene) SetReducedMotion(enabled bool) {
	s.reducedMotion = enabled
	s.settings.SetReducedMotion(enabled)
	s.transitionSystem.SetReducedMotion(enabled)
	if err := s.settings.Save(); err != nil {
		log.Warnf("[GalleryScene] Failed to save settings: %v", err)
	}
}

// ReducedMotion 当前是否减少动画
func (s *GalleryScene) ReducedMotion() bool {
	return s.reducedMotion
}

// State 画廊状态机
func (s *GalleryScene) State() *game.GalleryState {
	return s.state
}
