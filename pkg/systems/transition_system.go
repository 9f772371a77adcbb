package systems

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/decker502/gallery/pkg/components"
	"github.com/decker502/gallery/pkg/config"
	"github.com/decker502/gallery/pkg/ecs"
	"github.com/decker502/gallery/pkg/game"
	"github.com/decker502/gallery/pkg/types"
	"github.com/decker502/gallery/pkg/utils"
)

// 过渡中与配置无关的固定参数
const (
	gridItemExitDuration = 0.3 // 非点击网格项退场时长（秒）
	gridItemHiddenScale  = 0.8

	chromeFadeDuration = 0.5
	chromeFadeEase     = "sine.inOut"

	contentSlideDistance  = 25.0 // 面板文字上滑距离（像素）
	contentRevealDuration = 1.0
	contentRevealEase     = "expo"
	contentRevealOverlap  = 0.2 // 文字比图片提前开始的时长

	closeEase = "expo"
)

// PanelGeometry 面板在某一侧打开时各部分的位置（视口坐标）
type PanelGeometry struct {
	Area    types.Rect // 面板整体区域，区域外的点击会关闭面板
	Image   types.Rect
	Content types.Rect
	Close   types.Rect
}

// TransitionOptions 过渡系统的构造参数
type TransitionOptions struct {
	// Base 基础效果配置，过渡系统只读取不修改
	Base config.EffectConfig
	// Sections 分组 id → 分组覆盖值
	Sections map[string]map[string]string
	// Viewport 视口尺寸，用于决定面板打开的一侧
	Viewport types.Size
	// Panel 面板根实体（挂有 PanelComponent）
	Panel ecs.EntityID
	// Layout 计算面板在指定一侧打开时的几何位置
	Layout func(side types.PanelSide) PanelGeometry
	// RNG 路径抖动与 mover 旋转的随机源
	RNG utils.RandomSource
	// ReducedMotion 为 true 时每次过渡都不生成 mover
	ReducedMotion bool
}

// Transition 一次打开/关闭周期的上下文
//
// Config 是基础配置与覆盖值合并后的副本，只在本周期内有效。
type Transition struct {
	ID         string
	ItemID     string
	ItemEntity ecs.EntityID
	Config     config.EffectConfig
	Side       types.PanelSide
	Path       []types.Rect
	Movers     []ecs.EntityID
}

// TransitionSystem 协调网格退场、mover 序列和面板揭示，以及反向的关闭过渡
//
// 状态推进：
//
//	Select:           Idle → OpeningMovers
//	面板图片开始揭示:  OpeningMovers → OpeningPanel
//	面板文字揭示完成:  OpeningPanel → Open
//	Close:            Open → Closing
//	网格全部恢复:      Closing → Idle
type TransitionSystem struct {
	entityManager *ecs.EntityManager
	state         *game.GalleryState
	timers        *DelayedCallSystem
	movers        *MoverSystem

	base          config.EffectConfig
	sections      map[string]map[string]string
	viewport      types.Size
	panel         ecs.EntityID
	layout        func(side types.PanelSide) PanelGeometry
	rng           utils.RandomSource
	reducedMotion bool

	current *Transition
}

// NewTransitionSystem 创建过渡系统
func NewTransitionSystem(em *ecs.EntityManager, state *game.GalleryState, timers *DelayedCallSystem, movers *MoverSystem, opts TransitionOptions) *TransitionSystem {
	return &TransitionSystem{
		entityManager: em,
		state:         state,
		timers:        timers,
		movers:        movers,
		base:          opts.Base,
		sections:      opts.Sections,
		viewport:      opts.Viewport,
		panel:         opts.Panel,
		layout:        opts.Layout,
		rng:           opts.RNG,
		reducedMotion: opts.ReducedMotion,
	}
}

// SetReducedMotion 切换减少动态效果，从下一次过渡开始生效
func (ts *TransitionSystem) SetReducedMotion(enabled bool) {
	ts.reducedMotion = enabled
}

// ActiveConfig 当前生效的效果配置：过渡进行中返回合并后的配置，否则返回基础配置
func (ts *TransitionSystem) ActiveConfig() config.EffectConfig {
	if ts.current != nil {
		return ts.current.Config
	}
	return ts.base
}

// Current 当前过渡，没有时返回 nil
func (ts *TransitionSystem) Current() *Transition {
	return ts.current
}

// Update 过渡完全由补间与延迟回调驱动，这里不需要逐帧处理
func (ts *TransitionSystem) Update(deltaTime float64) {}

// Select 点击网格项，开始打开过渡
//
// 返回 false 表示请求被忽略：已有过渡或面板已打开、实体不是网格项、面板尚未挂载。
func (ts *TransitionSystem) Select(itemEntity ecs.EntityID) bool {
	if ts.state.Phase() != game.PhaseIdle {
		log.Debugf("[TransitionSystem] Ignoring select of entity %d in phase %s", itemEntity, ts.state.Phase())
		return false
	}

	item, ok := ecs.GetComponent[*components.GridItemComponent](ts.entityManager, itemEntity)
	if !ok {
		return false
	}
	itemBounds, ok := ecs.GetComponent[*components.BoundsComponent](ts.entityManager, itemEntity)
	if !ok {
		return false
	}
	panel, ok := ts.panelParts()
	if !ok {
		log.Warn("[TransitionSystem] Panel not mounted, ignoring select", "item", item.ItemID)
		return false
	}

	cfg := ts.mergeConfig(item)
	side := types.SideForClick(itemBounds.Rect.Center().X, ts.viewport.Width)
	if cfg.AutoAdjustHorizontalClipPath {
		cfg.ClipPathDirection = cfg.ClipPathDirection.AdjustForSide(side)
	}

	if err := ts.state.BeginOpen(item.ItemID); err != nil {
		log.Debugf("[TransitionSystem] %v", err)
		return false
	}

	tr := &Transition{
		ID:         uuid.NewString(),
		ItemID:     item.ItemID,
		ItemEntity: itemEntity,
		Config:     cfg,
		Side:       side,
	}
	ts.current = tr

	log.Info("[TransitionSystem] Opening", "item", item.ItemID, "transition", tr.ID,
		"side", side, "clip", cfg.ClipPathDirection, "steps", cfg.Steps)

	geometry := ts.layout(side)
	sprite := ts.populatePanel(panel, item, itemEntity, side, geometry)

	ts.hideGrid(tr, itemBounds.Rect.Center())
	ts.fadeChrome(0)

	if sprite.ImagePath != "" {
		tr.Path = utils.GenerateMotionPath(itemBounds.Rect, geometry.Image, cfg.Steps, cfg.PathParams(), ts.rng)
	}
	tr.Movers = ts.movers.Spawn(tr.ID, tr.Path, cfg, sprite, func() {
		log.Debugf("[TransitionSystem] Mover sequence finished for transition %s", tr.ID)
	})

	ts.revealPanel(tr, panel)
	return true
}

// Close 关闭面板，开始反向过渡
// 只在面板已打开且没有过渡进行时生效
func (ts *TransitionSystem) Close() bool {
	tr := ts.current
	if tr == nil || ts.state.Phase() != game.PhaseOpen {
		return false
	}
	panel, ok := ts.panelParts()
	if !ok {
		return false
	}
	if err := ts.state.BeginClose(); err != nil {
		log.Debugf("[TransitionSystem] %v", err)
		return false
	}

	cfg := tr.Config
	paths := cfg.ClipPathDirection.Paths()
	ease := utils.EasingOrDefault(closeEase)

	items := ecs.GetEntitiesWith3[*components.GridItemComponent, *components.BoundsComponent, *components.AppearanceComponent](ts.entityManager)
	origin, found := ts.itemCenter(tr.ItemID)
	if !found {
		// 原网格项已不存在：以面板图片中心为原点
		origin = ts.layout(tr.Side).Image.Center()
	}
	delays := ts.staggerDelays(items, origin, cfg.GridItemStaggerFactor)

	barrier := newCompletionBarrier(len(items)+1, func() { ts.completeClose(tr) })

	Animate(ts.entityManager, ts.panel, &components.Tween{
		Duration:   cfg.StepDuration,
		Easing:     ease,
		Opacity:    &components.FloatTrack{FromCurrent: true, To: 0},
		OnComplete: barrier.done,
	})
	Animate(ts.entityManager, panel.ImageEntity, &components.Tween{
		Delay: cfg.StepDuration,
		Clip:  &components.InsetTrack{From: paths.Hide, To: paths.Hide},
	})
	ts.fadeChrome(1)

	for i, id := range items {
		Animate(ts.entityManager, id,
			&components.Tween{
				Opacity:         &components.FloatTrack{From: 0, To: 0},
				Scale:           &components.FloatTrack{From: gridItemHiddenScale, To: gridItemHiddenScale},
				Clip:            &components.InsetTrack{From: types.InsetNone, To: types.InsetNone},
				ImmediateRender: true,
			},
			&components.Tween{
				Delay:      delays[i],
				Duration:   cfg.StepDuration,
				Easing:     ease,
				Opacity:    &components.FloatTrack{From: 0, To: 1},
				Scale:      &components.FloatTrack{From: gridItemHiddenScale, To: 1},
				OnComplete: barrier.done,
			},
		)
	}

	log.Info("[TransitionSystem] Closing", "item", tr.ItemID, "transition", tr.ID)
	return true
}

// Teardown 强制停止所有时间轴和延迟回调，移除 mover，状态回到初始值
func (ts *TransitionSystem) Teardown() {
	for _, id := range ecs.GetEntitiesWith1[*components.TweenComponent](ts.entityManager) {
		KillTweens(ts.entityManager, id)
	}
	ts.movers.CleanupAll()
	ts.timers.CancelAll()
	ts.current = nil
	ts.state.Reset()
	log.Debug("[TransitionSystem] Teardown complete")
}

// mergeConfig 基础配置 ← 分组覆盖值 ← 网格项覆盖值
func (ts *TransitionSystem) mergeConfig(item *components.GridItemComponent) config.EffectConfig {
	cfg := ts.base
	var ignored []string
	if overrides, ok := ts.sections[item.Section]; ok {
		var skipped []string
		cfg, skipped = cfg.WithOverrides(overrides)
		ignored = append(ignored, skipped...)
	}
	var skipped []string
	cfg, skipped = cfg.WithOverrides(item.Overrides)
	ignored = append(ignored, skipped...)
	if len(ignored) > 0 {
		log.Warn("[TransitionSystem] Ignored effect overrides", "item", item.ItemID, "keys", ignored)
	}
	if ts.reducedMotion {
		cfg.Steps = 0
	}
	return cfg
}

// populatePanel 在任何可见动画开始前写入面板内容与位置，返回 mover 使用的图片
func (ts *TransitionSystem) populatePanel(panel *components.PanelComponent, item *components.GridItemComponent, itemEntity ecs.EntityID, side types.PanelSide, geometry PanelGeometry) components.SpriteComponent {
	panel.Side = side
	panel.ItemID = item.ItemID
	panel.Title = item.Title
	panel.Description = item.Description
	panel.CloseRect = geometry.Close

	var sprite components.SpriteComponent
	if s, ok := ecs.GetComponent[*components.SpriteComponent](ts.entityManager, itemEntity); ok {
		sprite = *s
	}

	setBounds(ts.entityManager, ts.panel, geometry.Area)
	setBounds(ts.entityManager, panel.ImageEntity, geometry.Image)
	setBounds(ts.entityManager, panel.ContentEntity, geometry.Content)

	imageSprite := sprite
	ecs.AddComponent(ts.entityManager, panel.ImageEntity, &imageSprite)

	if root, ok := ecs.GetComponent[*components.AppearanceComponent](ts.entityManager, ts.panel); ok {
		root.Opacity = 1
	}
	return sprite
}

// hideGrid 网格项按与点击项的距离错峰退场
func (ts *TransitionSystem) hideGrid(tr *Transition, origin types.Point) {
	cfg := tr.Config
	paths := cfg.ClipPathDirection.Paths()
	ease := utils.EasingOrDefault(cfg.GridItemEase)

	items := ecs.GetEntitiesWith3[*components.GridItemComponent, *components.BoundsComponent, *components.AppearanceComponent](ts.entityManager)
	delays := ts.staggerDelays(items, origin, cfg.GridItemStaggerFactor)

	for i, id := range items {
		if id == tr.ItemEntity {
			Animate(ts.entityManager, id, &components.Tween{
				Delay:    delays[i],
				Duration: cfg.StepDuration * cfg.ClickedItemDurationFactor,
				Easing:   ease,
				Opacity:  &components.FloatTrack{FromCurrent: true, To: 0},
				Scale:    &components.FloatTrack{FromCurrent: true, To: 1},
				Clip:     &components.InsetTrack{FromCurrent: true, To: paths.From},
			})
			continue
		}
		Animate(ts.entityManager, id, &components.Tween{
			Delay:    delays[i],
			Duration: gridItemExitDuration,
			Easing:   ease,
			Opacity:  &components.FloatTrack{FromCurrent: true, To: 0},
			Scale:    &components.FloatTrack{FromCurrent: true, To: gridItemHiddenScale},
			Clip:     &components.InsetTrack{FromCurrent: true, To: types.InsetNone},
		})
	}
}

// fadeChrome 分组标题淡入/淡出
func (ts *TransitionSystem) fadeChrome(target float64) {
	ease := utils.EasingOrDefault(chromeFadeEase)
	for _, id := range ecs.GetEntitiesWith2[*components.ChromeComponent, *components.AppearanceComponent](ts.entityManager) {
		Animate(ts.entityManager, id, &components.Tween{
			Duration: chromeFadeDuration,
			Easing:   ease,
			Opacity:  &components.FloatTrack{FromCurrent: true, To: target},
		})
	}
}

// revealPanel 在 mover 级联结束时揭示面板图片，随后文字上滑淡入
func (ts *TransitionSystem) revealPanel(tr *Transition, panel *components.PanelComponent) {
	cfg := tr.Config
	paths := cfg.ClipPathDirection.Paths()
	cascade := cfg.CascadeDuration()
	textDelay := math.Max(cascade, 2*cascade-contentRevealOverlap)

	Animate(ts.entityManager, panel.ImageEntity, &components.Tween{
		Delay:           cascade,
		Duration:        cfg.StepDuration * cfg.PanelRevealDurationFactor,
		Easing:          utils.EasingOrDefault(cfg.PanelRevealEase),
		Opacity:         &components.FloatTrack{From: 1, To: 1},
		Clip:            &components.InsetTrack{From: paths.Hide, To: paths.Reveal},
		ImmediateRender: true,
		OnStart:         func() { ts.panelRevealStarted(tr) },
	})

	Animate(ts.entityManager, panel.ContentEntity, &components.Tween{
		Delay:           textDelay,
		Duration:        contentRevealDuration,
		Easing:          utils.EasingOrDefault(contentRevealEase),
		Opacity:         &components.FloatTrack{From: 0, To: 1},
		OffsetY:         &components.FloatTrack{From: contentSlideDistance, To: 0},
		ImmediateRender: true,
		OnComplete:      func() { ts.completeOpen(tr) },
	})
}

func (ts *TransitionSystem) panelRevealStarted(tr *Transition) {
	if ts.current != tr || ts.state.Phase() != game.PhaseOpeningMovers {
		return
	}
	if err := ts.state.PanelRevealStarted(); err != nil {
		log.Debugf("[TransitionSystem] %v", err)
	}
}

func (ts *TransitionSystem) completeOpen(tr *Transition) {
	if ts.current != tr {
		return
	}
	if err := ts.state.CompleteOpen(); err != nil {
		log.Debugf("[TransitionSystem] %v", err)
		return
	}
	log.Info("[TransitionSystem] Panel open", "item", tr.ItemID, "transition", tr.ID)
}

func (ts *TransitionSystem) completeClose(tr *Transition) {
	if ts.current != tr {
		return
	}
	if panel, ok := ecs.GetComponent[*components.PanelComponent](ts.entityManager, ts.panel); ok {
		panel.Side = types.PanelInitialSide
		panel.ItemID = ""
	}
	ts.movers.Cleanup(tr.ID)
	ts.current = nil
	if err := ts.state.CompleteClose(); err != nil {
		log.Debugf("[TransitionSystem] %v", err)
		return
	}
	log.Info("[TransitionSystem] Panel closed", "item", tr.ItemID, "transition", tr.ID)
}

// panelParts 面板根实体及其子实体都存在时返回面板组件
func (ts *TransitionSystem) panelParts() (*components.PanelComponent, bool) {
	panel, ok := ecs.GetComponent[*components.PanelComponent](ts.entityManager, ts.panel)
	if !ok {
		return nil, false
	}
	for _, id := range []ecs.EntityID{ts.panel, panel.ImageEntity, panel.ContentEntity} {
		if !ecs.HasComponent[*components.AppearanceComponent](ts.entityManager, id) {
			return nil, false
		}
	}
	return panel, true
}

func (ts *TransitionSystem) itemCenter(itemID string) (types.Point, bool) {
	for _, id := range ecs.GetEntitiesWith2[*components.GridItemComponent, *components.BoundsComponent](ts.entityManager) {
		item, _ := ecs.GetComponent[*components.GridItemComponent](ts.entityManager, id)
		if item.ItemID != itemID {
			continue
		}
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](ts.entityManager, id)
		return bounds.Rect.Center(), true
	}
	return types.Point{}, false
}

func (ts *TransitionSystem) staggerDelays(items []ecs.EntityID, origin types.Point, factor float64) []float64 {
	centers := make([]types.Point, len(items))
	for i, id := range items {
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](ts.entityManager, id)
		centers[i] = bounds.Rect.Center()
	}
	return utils.ComputeStaggerDelays(origin, centers, factor)
}

func setBounds(em *ecs.EntityManager, id ecs.EntityID, rect types.Rect) {
	if bounds, ok := ecs.GetComponent[*components.BoundsComponent](em, id); ok {
		bounds.Rect = rect
		return
	}
	ecs.AddComponent(em, id, &components.BoundsComponent{Rect: rect})
}

// completionBarrier 计数屏障：done 被调用 n 次后执行一次 fn
type completionBarrier struct {
	remaining int
	fn        func()
}

func newCompletionBarrier(n int, fn func()) *completionBarrier {
	return &completionBarrier{remaining: n, fn: fn}
}

func (b *completionBarrier) done() {
	if b.remaining <= 0 {
		return
	}
	b.remaining--
	if b.remaining == 0 {
		b.fn()
	}
}
