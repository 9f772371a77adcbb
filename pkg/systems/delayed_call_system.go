package systems

import (
	"github.com/decker502/gallery/pkg/components"
	"github.com/decker502/gallery/pkg/ecs"
)

// DelayedCallSystem 管理一次性的延迟回调
//
// 每个回调是一个只挂着 DelayedCallComponent 的实体，到期后执行并销毁。
// 同一帧到期的回调按创建顺序执行。
type DelayedCallSystem struct {
	entityManager *ecs.EntityManager
}

// NewDelayedCallSystem 创建延迟调用系统
func NewDelayedCallSystem(em *ecs.EntityManager) *DelayedCallSystem {
	return &DelayedCallSystem{entityManager: em}
}

// Schedule 在 delay 秒后执行 fn；owner 用于按过渡整体取消
func (s *DelayedCallSystem) Schedule(delay float64, owner string, fn func()) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.DelayedCallComponent{
		Delay:    delay,
		Owner:    owner,
		Callback: fn,
	})
	return id
}

// Cancel 取消尚未执行的回调；重复取消或回调已执行时无操作
func (s *DelayedCallSystem) Cancel(id ecs.EntityID) {
	if !ecs.HasComponent[*components.DelayedCallComponent](s.entityManager, id) {
		return
	}
	ecs.RemoveComponent[*components.DelayedCallComponent](s.entityManager, id)
	s.entityManager.DestroyEntity(id)
}

// CancelOwner 取消指定 owner 的所有回调
func (s *DelayedCallSystem) CancelOwner(owner string) {
	for _, id := range ecs.GetEntitiesWith1[*components.DelayedCallComponent](s.entityManager) {
		call, _ := ecs.GetComponent[*components.DelayedCallComponent](s.entityManager, id)
		if call.Owner == owner {
			s.Cancel(id)
		}
	}
}

// CancelAll 取消所有回调
func (s *DelayedCallSystem) CancelAll() {
	for _, id := range ecs.GetEntitiesWith1[*components.DelayedCallComponent](s.entityManager) {
		s.Cancel(id)
	}
}

// Pending 返回指定 owner 尚未执行的回调数量
func (s *DelayedCallSystem) Pending(owner string) int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.DelayedCallComponent](s.entityManager) {
		call, _ := ecs.GetComponent[*components.DelayedCallComponent](s.entityManager, id)
		if call.Owner == owner {
			count++
		}
	}
	return count
}

// Update 推进计时，执行到期的回调
func (s *DelayedCallSystem) Update(deltaTime float64) {
	var due []func()

	for _, id := range ecs.GetEntitiesWith1[*components.DelayedCallComponent](s.entityManager) {
		call, ok := ecs.GetComponent[*components.DelayedCallComponent](s.entityManager, id)
		if !ok {
			continue
		}

		call.Elapsed += deltaTime
		if call.Elapsed < call.Delay {
			continue
		}

		// 先移除组件再执行，回调里的 Cancel 不会重复处理同一个实体
		ecs.RemoveComponent[*components.DelayedCallComponent](s.entityManager, id)
		s.entityManager.DestroyEntity(id)
		if call.Callback != nil {
			due = append(due, call.Callback)
		}
	}

	for _, fn := range due {
		fn()
	}
}
