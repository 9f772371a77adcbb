package components

import (
	"github.com/decker502/gallery/pkg/types"
	"github.com/decker502/gallery/pkg/utils"
)

// FloatTrack 标量属性的补间轨道
type FloatTrack struct {
	From float64
	To   float64
	// FromCurrent 为 true 时在补间开始的那一刻读取属性当前值作为起点
	FromCurrent bool
}

// InsetTrack 裁剪遮罩的补间轨道
type InsetTrack struct {
	From        types.Inset
	To          types.Inset
	FromCurrent bool
}

// Tween 一段补间
//
// Delay 相对于所在时间轴起点计算。Duration 为 0 时在开始的同一帧直接跳到终点，
// 相当于一次性设置属性。
type Tween struct {
	Delay    float64
	Duration float64
	Easing   utils.EasingFunc

	Opacity *FloatTrack
	Scale   *FloatTrack
	OffsetY *FloatTrack
	Clip    *InsetTrack

	// ImmediateRender 在延迟期间就应用起点值（FromCurrent 轨道除外）
	ImmediateRender bool

	OnStart    func()
	OnComplete func()

	Started   bool
	Completed bool
}

// TweenComponent 实体的补间时间轴
// 所有补间完成后组件会被移除
type TweenComponent struct {
	Elapsed float64
	Tweens  []*Tween
}

// End 时间轴的总时长
func (tc *TweenComponent) End() float64 {
	end := 0.0
	for _, tw := range tc.Tweens {
		if e := tw.Delay + tw.Duration; e > end {
			end = e
		}
	}
	return end
}
