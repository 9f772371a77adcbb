package systems

import (
	"github.com/charmbracelet/log"

	"github.com/decker502/gallery/pkg/components"
	"github.com/decker502/gallery/pkg/ecs"
	"github.com/decker502/gallery/pkg/game"
	"github.com/decker502/gallery/pkg/utils"
)

// InputSystem 把鼠标、触摸、键盘输入翻译为画廊事件
//
//   - Idle：点击网格项触发选择，滚轮滚动网格
//   - Open：Escape、关闭按钮或面板外点击触发关闭
//   - 过渡进行中：忽略所有输入
type InputSystem struct {
	entityManager *ecs.EntityManager
	state         *game.GalleryState
	transitions   *TransitionSystem
	panel         ecs.EntityID

	// readInput 读取本帧输入，测试时可替换
	readInput func() utils.InputState

	// OnScroll 滚轮滚动回调（仅 Idle 阶段触发），参数为滚轮增量
	OnScroll func(dy float64)
}

// NewInputSystem 创建输入系统
func NewInputSystem(em *ecs.EntityManager, state *game.GalleryState, transitions *TransitionSystem, panel ecs.EntityID) *InputSystem {
	return &InputSystem{
		entityManager: em,
		state:         state,
		transitions:   transitions,
		panel:         panel,
		readInput:     utils.GetInputState,
	}
}

// Update 处理本帧输入
func (s *InputSystem) Update(deltaTime float64) {
	s.handle(s.readInput())
}

func (s *InputSystem) handle(in utils.InputState) {
	if s.state.IsAnimating() {
		return
	}

	switch s.state.Phase() {
	case game.PhaseOpen:
		if in.EscapePressed {
			log.Debug("[InputSystem] Escape pressed, closing panel")
			s.transitions.Close()
			return
		}
		if in.JustPressed && s.shouldClose(float64(in.X), float64(in.Y)) {
			s.transitions.Close()
		}

	case game.PhaseIdle:
		if in.WheelY != 0 && s.OnScroll != nil {
			s.OnScroll(in.WheelY)
		}
		if !in.JustPressed {
			return
		}
		if id, ok := HitTestGridItem(s.entityManager, float64(in.X), float64(in.Y)); ok {
			s.transitions.Select(id)
		}
	}
}

// shouldClose 点击关闭按钮或面板区域之外时关闭面板
func (s *InputSystem) shouldClose(x, y float64) bool {
	panel, ok := ecs.GetComponent[*components.PanelComponent](s.entityManager, s.panel)
	if !ok {
		return false
	}
	if panel.CloseRect.Contains(x, y) {
		return true
	}
	bounds, ok := ecs.GetComponent[*components.BoundsComponent](s.entityManager, s.panel)
	if !ok {
		return false
	}
	return !bounds.Rect.Contains(x, y)
}

// HitTestGridItem 返回点击位置下可见的网格项
// 多个网格项重叠时返回层级最高、其次 ID 最大的那个
func HitTestGridItem(em *ecs.EntityManager, x, y float64) (ecs.EntityID, bool) {
	var (
		hit   ecs.EntityID
		found bool
		bestZ int
	)
	for _, id := range ecs.GetEntitiesWith3[*components.GridItemComponent, *components.BoundsComponent, *components.AppearanceComponent](em) {
		appearance, _ := ecs.GetComponent[*components.AppearanceComponent](em, id)
		if appearance.Opacity <= 0 {
			continue
		}
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](em, id)
		if !bounds.Rect.Contains(x, y) {
			continue
		}
		if !found || appearance.ZIndex >= bestZ {
			hit, bestZ, found = id, appearance.ZIndex, true
		}
	}
	return hit, found
}
