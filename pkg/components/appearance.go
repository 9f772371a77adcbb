package components

import "github.com/decker502/gallery/pkg/types"

// 层级常量
const (
	ZGrid      = 0
	ZChrome    = 10
	ZPanel     = 100
	ZMoverBase = 1000 // 第 i 个 mover 的层级为 ZMoverBase + i
)

// AppearanceComponent 可被补间动画驱动的外观属性
//
// 渲染时的变换顺序：先按 Clip 裁剪，再以包围盒中心缩放、旋转，最后整体下移 OffsetY。
type AppearanceComponent struct {
	// Opacity 不透明度（0.0 - 1.0），为 0 时不绘制也不响应点击
	Opacity float64

	// Scale 以包围盒中心为原点的缩放（1.0 = 原始大小）
	Scale float64

	// Rotation 旋转角度（度）
	Rotation float64

	// OffsetY 纵向位移（像素），用于面板文字的上滑进入
	OffsetY float64

	// Clip 裁剪遮罩
	Clip types.Inset

	// ZIndex 绘制层级，数值大的后绘制
	ZIndex int

	// BlendMode 混合模式，空字符串表示普通混合
	BlendMode string
}

// NewAppearance 返回完全可见的默认外观
func NewAppearance(z int) *AppearanceComponent {
	return &AppearanceComponent{
		Opacity: 1,
		Scale:   1,
		ZIndex:  z,
	}
}
