package systems

import (
	"github.com/decker502/gallery/pkg/components"
	"github.com/decker502/gallery/pkg/ecs"
	"github.com/decker502/gallery/pkg/utils"
)

// TweenSystem 推进所有实体的补间时间轴，把插值结果写入 AppearanceComponent
//
// 回调（OnStart / OnComplete）在本帧所有实体更新完成后统一执行，
// 回调中可以安全地为其他实体创建新的时间轴。
type TweenSystem struct {
	entityManager *ecs.EntityManager
}

// NewTweenSystem 创建补间系统
func NewTweenSystem(em *ecs.EntityManager) *TweenSystem {
	return &TweenSystem{entityManager: em}
}

// Animate 为实体设置新的时间轴，替换尚未完成的旧时间轴
// ImmediateRender 的补间会立即应用起点值，保证下一次绘制就是正确的初始外观
func Animate(em *ecs.EntityManager, id ecs.EntityID, tweens ...*components.Tween) {
	appearance, ok := ecs.GetComponent[*components.AppearanceComponent](em, id)
	if !ok {
		return
	}
	for _, tw := range tweens {
		if tw.ImmediateRender {
			applyFrom(appearance, tw)
		}
	}
	ecs.AddComponent(em, id, &components.TweenComponent{Tweens: tweens})
}

// KillTweens 立即停止实体的时间轴，不触发任何回调
func KillTweens(em *ecs.EntityManager, id ecs.EntityID) {
	ecs.RemoveComponent[*components.TweenComponent](em, id)
}

// Update 推进时间轴
func (s *TweenSystem) Update(deltaTime float64) {
	var callbacks []func()

	entities := ecs.GetEntitiesWith2[*components.TweenComponent, *components.AppearanceComponent](s.entityManager)
	for _, id := range entities {
		timeline, _ := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
		appearance, _ := ecs.GetComponent[*components.AppearanceComponent](s.entityManager, id)

		timeline.Elapsed += deltaTime
		done := true

		for _, tw := range timeline.Tweens {
			if tw.Completed {
				continue
			}
			if timeline.Elapsed < tw.Delay {
				done = false
				continue
			}

			if !tw.Started {
				tw.Started = true
				captureCurrent(appearance, tw)
				if tw.OnStart != nil {
					callbacks = append(callbacks, tw.OnStart)
				}
			}

			progress := 1.0
			if tw.Duration > 0 {
				progress = (timeline.Elapsed - tw.Delay) / tw.Duration
				if progress > 1 {
					progress = 1
				}
			}

			if progress >= 1 {
				applyTo(appearance, tw)
				tw.Completed = true
				if tw.OnComplete != nil {
					callbacks = append(callbacks, tw.OnComplete)
				}
			} else {
				ease := tw.Easing
				if ease == nil {
					ease = utils.EaseLinear
				}
				applyProgress(appearance, tw, ease(progress))
				done = false
			}
		}

		if done {
			ecs.RemoveComponent[*components.TweenComponent](s.entityManager, id)
		}
	}

	for _, fn := range callbacks {
		fn()
	}
}

// captureCurrent 开始时读取 FromCurrent 轨道的起点
func captureCurrent(a *components.AppearanceComponent, tw *components.Tween) {
	if tw.Opacity != nil && tw.Opacity.FromCurrent {
		tw.Opacity.From = a.Opacity
	}
	if tw.Scale != nil && tw.Scale.FromCurrent {
		tw.Scale.From = a.Scale
	}
	if tw.OffsetY != nil && tw.OffsetY.FromCurrent {
		tw.OffsetY.From = a.OffsetY
	}
	if tw.Clip != nil && tw.Clip.FromCurrent {
		tw.Clip.From = a.Clip
	}
}

func applyFrom(a *components.AppearanceComponent, tw *components.Tween) {
	if tw.Opacity != nil && !tw.Opacity.FromCurrent {
		a.Opacity = tw.Opacity.From
	}
	if tw.Scale != nil && !tw.Scale.FromCurrent {
		a.Scale = tw.Scale.From
	}
	if tw.OffsetY != nil && !tw.OffsetY.FromCurrent {
		a.OffsetY = tw.OffsetY.From
	}
	if tw.Clip != nil && !tw.Clip.FromCurrent {
		a.Clip = tw.Clip.From
	}
}

// applyTo 补间结束时精确写入终点值
func applyTo(a *components.AppearanceComponent, tw *components.Tween) {
	if tw.Opacity != nil {
		a.Opacity = tw.Opacity.To
	}
	if tw.Scale != nil {
		a.Scale = tw.Scale.To
	}
	if tw.OffsetY != nil {
		a.OffsetY = tw.OffsetY.To
	}
	if tw.Clip != nil {
		a.Clip = tw.Clip.To
	}
}

func applyProgress(a *components.AppearanceComponent, tw *components.Tween, t float64) {
	if tw.Opacity != nil {
		a.Opacity = utils.Lerp(tw.Opacity.From, tw.Opacity.To, t)
	}
	if tw.Scale != nil {
		a.Scale = utils.Lerp(tw.Scale.From, tw.Scale.To, t)
	}
	if tw.OffsetY != nil {
		a.OffsetY = utils.Lerp(tw.OffsetY.From, tw.OffsetY.To, t)
	}
	if tw.Clip != nil {
		a.Clip = tw.Clip.From.Lerp(tw.Clip.To, t)
	}
}
