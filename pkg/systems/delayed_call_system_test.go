package systems

import (
	"testing"

	"github.com/decker502/gallery/pkg/ecs"
)

func TestDelayedCallFires(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewDelayedCallSystem(em)

	calls := 0
	system.Schedule(1.0, "t1", func() { calls++ })

	system.Update(0.5)
	if calls != 0 {
		t.Error("未到期时不应执行")
	}
	if system.Pending("t1") != 1 {
		t.Errorf("应有 1 个待执行回调，实际 %d", system.Pending("t1"))
	}

	system.Update(0.6)
	if calls != 1 {
		t.Errorf("到期后应执行一次，实际 %d", calls)
	}

	em.RemoveMarkedEntities()
	system.Update(1)
	if calls != 1 {
		t.Errorf("不应重复执行，实际 %d", calls)
	}
	if system.Pending("t1") != 0 {
		t.Error("执行后不应再有待执行回调")
	}
}

func TestDelayedCallOrder(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewDelayedCallSystem(em)

	var order []int
	system.Schedule(0.2, "", func() { order = append(order, 1) })
	system.Schedule(0.1, "", func() { order = append(order, 2) })
	system.Schedule(0.0, "", func() { order = append(order, 3) })

	system.Update(0.5)
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("同一帧到期的回调应按创建顺序执行，实际 %v", order)
	}
}

func TestDelayedCallCancel(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewDelayedCallSystem(em)

	calls := 0
	id := system.Schedule(0.5, "t1", func() { calls++ })
	system.Schedule(0.5, "t2", func() { calls += 10 })
	system.Schedule(0.5, "t2", func() { calls += 100 })

	system.Cancel(id)
	system.Cancel(id) // 重复取消无操作
	system.CancelOwner("t2")

	system.Update(1)
	if calls != 0 {
		t.Errorf("被取消的回调不应执行，calls=%d", calls)
	}
}

func TestDelayedCallCancelAll(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewDelayedCallSystem(em)

	calls := 0
	for i := 0; i < 5; i++ {
		system.Schedule(float64(i)*0.1, "t", func() { calls++ })
	}
	system.CancelAll()
	em.RemoveMarkedEntities()

	system.Update(1)
	if calls != 0 {
		t.Errorf("CancelAll 后不应有回调执行，calls=%d", calls)
	}
	if em.EntityCount() != 0 {
		t.Errorf("取消的回调实体应被移除，剩余 %d", em.EntityCount())
	}
}

// TestDelayedCallScheduleFromCallback 回调里安排的新回调在下一次 Update 才开始计时
func TestDelayedCallScheduleFromCallback(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewDelayedCallSystem(em)

	second := false
	system.Schedule(0.1, "", func() {
		system.Schedule(0.1, "", func() { second = true })
	})

	system.Update(0.1)
	if second {
		t.Error("新回调不应在同一帧执行")
	}
	system.Update(0.1)
	if !second {
		t.Error("新回调应在下一次到期时执行")
	}
}
