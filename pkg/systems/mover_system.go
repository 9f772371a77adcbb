package systems

import (
	"github.com/charmbracelet/log"

	"github.com/decker502/gallery/pkg/components"
	"github.com/decker502/gallery/pkg/config"
	"github.com/decker502/gallery/pkg/ecs"
	"github.com/decker502/gallery/pkg/types"
	"github.com/decker502/gallery/pkg/utils"
)

// MoverSystem 创建、驱动并回收过渡中的 mover
//
// 同一过渡的 mover 记录在一起，由一个统一的延迟回调在生命周期结束后整体清理；
// 过渡被打断时也可以随时调用 Cleanup。
type MoverSystem struct {
	entityManager *ecs.EntityManager
	timers        *DelayedCallSystem
	rng           utils.RandomSource

	movers  map[string][]ecs.EntityID
	cleanup map[string]ecs.EntityID
}

// NewMoverSystem 创建 mover 系统；rng 为 nil 时 mover 不旋转
func NewMoverSystem(em *ecs.EntityManager, timers *DelayedCallSystem, rng utils.RandomSource) *MoverSystem {
	return &MoverSystem{
		entityManager: em,
		timers:        timers,
		rng:           rng,
		movers:        make(map[string][]ecs.EntityID),
		cleanup:       make(map[string]ecs.EntityID),
	}
}

// Spawn 沿路径为一次过渡创建 mover 序列
//
// 第 i 个 mover 在 i*stepInterval 后启动：
//  1. 进入：opacity 0.4 → 1，遮罩 hide → reveal，时长 stepDuration
//  2. 停顿 moverPauseBeforeExit
//  3. 退出：遮罩 → from，时长 stepDuration
//
// 最后一个 mover 退出完成时调用 onLastExit（可为 nil）。
// 路径为空时不创建任何实体，也不安排清理。
func (s *MoverSystem) Spawn(transitionID string, path []types.Rect, cfg config.EffectConfig, sprite components.SpriteComponent, onLastExit func()) []ecs.EntityID {
	if len(path) == 0 {
		return nil
	}

	paths := cfg.ClipPathDirection.Paths()
	enterEase := utils.EasingOrDefault(cfg.MoverEnterEase)
	exitEase := utils.EasingOrDefault(cfg.MoverExitEase)

	ids := make([]ecs.EntityID, 0, len(path))
	for i, rect := range path {
		id := s.entityManager.CreateEntity()

		appearance := components.NewAppearance(components.ZMoverBase + i)
		appearance.Clip = paths.From
		appearance.Rotation = utils.RandomRange(s.rng, cfg.RotationRange)
		appearance.BlendMode = cfg.MoverBlendMode

		spriteCopy := sprite
		ecs.AddComponent(s.entityManager, id, &components.MoverComponent{TransitionID: transitionID, Index: i})
		ecs.AddComponent(s.entityManager, id, &components.BoundsComponent{Rect: rect})
		ecs.AddComponent(s.entityManager, id, appearance)
		ecs.AddComponent(s.entityManager, id, &spriteCopy)

		start := float64(i) * cfg.StepInterval
		exit := &components.Tween{
			Delay:    start + cfg.StepDuration + cfg.MoverPauseBeforeExit,
			Duration: cfg.StepDuration,
			Easing:   exitEase,
			Clip:     &components.InsetTrack{FromCurrent: true, To: paths.From},
		}
		if i == len(path)-1 && onLastExit != nil {
			exit.OnComplete = onLastExit
		}

		Animate(s.entityManager, id,
			&components.Tween{
				Delay:           start,
				Duration:        cfg.StepDuration,
				Easing:          enterEase,
				Opacity:         &components.FloatTrack{From: 0.4, To: 1},
				Clip:            &components.InsetTrack{From: paths.Hide, To: paths.Reveal},
				ImmediateRender: true,
			},
			exit,
		)
		ids = append(ids, id)
	}

	s.movers[transitionID] = ids
	s.cleanup[transitionID] = s.timers.Schedule(cfg.MoverLifetime(), transitionID, func() {
		s.Cleanup(transitionID)
	})

	log.Debugf("[MoverSystem] Spawned %d movers for transition %s (lifetime %.2fs)", len(ids), transitionID, cfg.MoverLifetime())
	return ids
}

// Cleanup 移除一次过渡的所有 mover
// 可以重复调用；mover 已被移除时无操作
func (s *MoverSystem) Cleanup(transitionID string) {
	if timer, ok := s.cleanup[transitionID]; ok {
		s.timers.Cancel(timer)
		delete(s.cleanup, transitionID)
	}

	ids, ok := s.movers[transitionID]
	if !ok {
		return
	}
	for _, id := range ids {
		KillTweens(s.entityManager, id)
		s.entityManager.DestroyEntity(id)
	}
	delete(s.movers, transitionID)

	log.Debugf("[MoverSystem] Cleaned up %d movers for transition %s", len(ids), transitionID)
}

// CleanupAll 移除所有过渡的 mover（组件销毁时使用）
func (s *MoverSystem) CleanupAll() {
	for transitionID := range s.movers {
		s.Cleanup(transitionID)
	}
	for transitionID, timer := range s.cleanup {
		s.timers.Cancel(timer)
		delete(s.cleanup, transitionID)
	}
}

// Count 返回指定过渡仍在跟踪的 mover 数量
func (s *MoverSystem) Count(transitionID string) int {
	return len(s.movers[transitionID])
}

// ActiveTransitions 返回仍持有 mover 的过渡数量
func (s *MoverSystem) ActiveTransitions() int {
	return len(s.movers)
}
