package systems

import (
	"testing"

	"github.com/decker502/gallery/pkg/components"
	"github.com/decker502/gallery/pkg/config"
	"github.com/decker502/gallery/pkg/ecs"
	"github.com/decker502/gallery/pkg/types"
	"github.com/decker502/gallery/pkg/utils"
)

type moverHarness struct {
	em     *ecs.EntityManager
	timers *DelayedCallSystem
	tweens *TweenSystem
	movers *MoverSystem
}

func newMoverHarness() *moverHarness {
	em := ecs.NewEntityManager()
	timers := NewDelayedCallSystem(em)
	return &moverHarness{
		em:     em,
		timers: timers,
		tweens: NewTweenSystem(em),
		movers: NewMoverSystem(em, timers, utils.NewRandomSource(7)),
	}
}

func (h *moverHarness) advance(seconds float64) {
	frames := int(seconds/testFrame + 0.5)
	for i := 0; i < frames; i++ {
		h.tweens.Update(testFrame)
		h.timers.Update(testFrame)
		h.em.RemoveMarkedEntities()
	}
}

func testPath(n int) []types.Rect {
	path := make([]types.Rect, n)
	for i := range path {
		path[i] = types.Rect{Left: float64(i) * 50, Top: 10, Width: 100, Height: 100}
	}
	return path
}

func TestMoverSpawn(t *testing.T) {
	h := newMoverHarness()
	cfg := config.DefaultEffectConfig()
	cfg.MoverBlendMode = "multiply"

	ids := h.movers.Spawn("t1", testPath(3), cfg, components.SpriteComponent{ImagePath: "images/a.png"}, nil)
	if len(ids) != 3 {
		t.Fatalf("应创建 3 个 mover，实际 %d", len(ids))
	}

	hide := cfg.ClipPathDirection.Paths().Hide
	for i, id := range ids {
		mover, _ := ecs.GetComponent[*components.MoverComponent](h.em, id)
		if mover.Index != i || mover.TransitionID != "t1" {
			t.Errorf("mover %d 组件不正确: %+v", i, mover)
		}
		a, _ := ecs.GetComponent[*components.AppearanceComponent](h.em, id)
		if a.ZIndex != components.ZMoverBase+i {
			t.Errorf("mover %d 层级 = %d, 期望 %d", i, a.ZIndex, components.ZMoverBase+i)
		}
		if a.Opacity != 0.4 || a.Clip != hide {
			t.Errorf("mover %d 初始外观应为 opacity 0.4 + 隐藏遮罩，实际 %v %+v", i, a.Opacity, a.Clip)
		}
		if a.BlendMode != "multiply" {
			t.Errorf("mover %d 混合模式 = %q", i, a.BlendMode)
		}
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](h.em, id)
		if bounds.Rect != testPath(3)[i] {
			t.Errorf("mover %d 位置 = %+v", i, bounds.Rect)
		}
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](h.em, id)
		if sprite.ImagePath != "images/a.png" {
			t.Errorf("mover %d 图片 = %q", i, sprite.ImagePath)
		}
	}
}

// TestMoverCascade mover 按序号依次进入
func TestMoverCascade(t *testing.T) {
	h := newMoverHarness()
	cfg := config.DefaultEffectConfig()
	cfg.StepInterval = 0.1
	cfg.StepDuration = 0.2
	ids := h.movers.Spawn("t1", testPath(3), cfg, components.SpriteComponent{}, nil)

	// 0.15 秒时：第 0、1 个已开始进入，第 2 个尚未开始
	h.advance(0.15)
	first, _ := ecs.GetComponent[*components.AppearanceComponent](h.em, ids[0])
	second, _ := ecs.GetComponent[*components.AppearanceComponent](h.em, ids[1])
	third, _ := ecs.GetComponent[*components.AppearanceComponent](h.em, ids[2])
	if first.Opacity <= 0.4 {
		t.Errorf("第 0 个 mover 应已开始进入，opacity=%v", first.Opacity)
	}
	if second.Opacity <= 0.4 {
		t.Errorf("第 1 个 mover 应已开始进入，opacity=%v", second.Opacity)
	}
	if third.Opacity != 0.4 {
		t.Errorf("第 2 个 mover 尚未开始，opacity=%v", third.Opacity)
	}

	// 进入结束、退出开始前遮罩完全展开
	h.advance(0.12)
	if first.Clip != types.InsetNone || first.Opacity != 1 {
		t.Errorf("第 0 个 mover 应完全显示: opacity=%v clip=%+v", first.Opacity, first.Clip)
	}
}

func TestMoverRotationRange(t *testing.T) {
	h := newMoverHarness()
	cfg := config.DefaultEffectConfig()
	cfg.RotationRange = 10

	ids := h.movers.Spawn("t1", testPath(8), cfg, components.SpriteComponent{}, nil)
	rotated := false
	for _, id := range ids {
		a, _ := ecs.GetComponent[*components.AppearanceComponent](h.em, id)
		if a.Rotation < -10 || a.Rotation > 10 {
			t.Errorf("旋转角度 %v 超出 [-10, 10]", a.Rotation)
		}
		if a.Rotation != 0 {
			rotated = true
		}
	}
	if !rotated {
		t.Error("rotationRange > 0 时应有 mover 被旋转")
	}
}

// TestMoverLifecycle 最后一个 mover 退出后回调，生命周期结束后统一清理
func TestMoverLifecycle(t *testing.T) {
	h := newMoverHarness()
	cfg := config.DefaultEffectConfig()

	lastExit := 0
	h.movers.Spawn("t1", testPath(4), cfg, components.SpriteComponent{}, func() { lastExit++ })

	h.advance(cfg.MoverLifetime() - 0.03)
	if countMovers(h.em) != 4 {
		t.Errorf("生命周期结束前 mover 应全部存在，实际 %d", countMovers(h.em))
	}
	if lastExit != 1 {
		t.Errorf("最后一个 mover 退出回调应已调用一次，实际 %d", lastExit)
	}

	h.advance(0.2)
	if countMovers(h.em) != 0 {
		t.Errorf("生命周期结束后 mover 应全部移除，剩余 %d", countMovers(h.em))
	}
	if h.movers.Count("t1") != 0 || h.movers.ActiveTransitions() != 0 {
		t.Error("mover 系统不应再跟踪已清理的过渡")
	}
	if h.timers.Pending("t1") != 0 {
		t.Error("清理回调应已执行")
	}
}

// TestMoverCleanupIdempotent 重复清理不出错，且不残留 mover
func TestMoverCleanupIdempotent(t *testing.T) {
	h := newMoverHarness()
	cfg := config.DefaultEffectConfig()
	h.movers.Spawn("t1", testPath(3), cfg, components.SpriteComponent{}, nil)

	h.movers.Cleanup("t1")
	h.movers.Cleanup("t1")
	h.movers.Cleanup("unknown")
	h.em.RemoveMarkedEntities()

	if countMovers(h.em) != 0 {
		t.Errorf("清理后不应残留 mover，实际 %d", countMovers(h.em))
	}
	if h.timers.Pending("t1") != 0 {
		t.Error("提前清理时应取消统一清理回调")
	}

	// 计划中的清理时间到达也不会出错
	h.advance(cfg.MoverLifetime() + 0.1)
	if em := h.em.EntityCount(); em != 0 {
		t.Errorf("不应残留实体，实际 %d", em)
	}
}

func TestMoverEmptyPath(t *testing.T) {
	h := newMoverHarness()
	ids := h.movers.Spawn("t1", nil, config.DefaultEffectConfig(), components.SpriteComponent{}, nil)

	if len(ids) != 0 || h.em.EntityCount() != 0 {
		t.Error("空路径不应创建任何实体")
	}
	if h.timers.Pending("t1") != 0 {
		t.Error("空路径不应安排清理")
	}
}

func TestMoverCleanupAll(t *testing.T) {
	h := newMoverHarness()
	cfg := config.DefaultEffectConfig()
	h.movers.Spawn("t1", testPath(2), cfg, components.SpriteComponent{}, nil)
	h.movers.Spawn("t2", testPath(3), cfg, components.SpriteComponent{}, nil)

	h.movers.CleanupAll()
	h.em.RemoveMarkedEntities()

	if countMovers(h.em) != 0 || h.movers.ActiveTransitions() != 0 {
		t.Error("CleanupAll 后不应残留 mover")
	}
	if h.timers.Pending("t1")+h.timers.Pending("t2") != 0 {
		t.Error("CleanupAll 应取消所有清理回调")
	}
}
