package types

// Inset 矩形裁剪遮罩，四个分量均为相对比例（0 = 不裁剪，1 = 整边裁掉）
// 含义与 CSS inset(top right bottom left) 一致
type Inset struct {
	Top, Right, Bottom, Left float64
}

// InsetNone 不裁剪（完全显示）
var InsetNone = Inset{}

// Lerp 在两个裁剪遮罩之间插值
func (in Inset) Lerp(to Inset, t float64) Inset {
	return Inset{
		Top:    in.Top + (to.Top-in.Top)*t,
		Right:  in.Right + (to.Right-in.Right)*t,
		Bottom: in.Bottom + (to.Bottom-in.Bottom)*t,
		Left:   in.Left + (to.Left-in.Left)*t,
	}
}

// Apply 返回矩形经裁剪后的可见区域
// 当上下或左右裁剪之和超过 1 时，可见区域宽高为 0
func (in Inset) Apply(r Rect) Rect {
	w := r.Width * (1 - in.Left - in.Right)
	h := r.Height * (1 - in.Top - in.Bottom)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{
		Left:   r.Left + r.Width*in.Left,
		Top:    r.Top + r.Height*in.Top,
		Width:  w,
		Height: h,
	}
}

// IsHidden 判断遮罩是否完全隐藏内容
func (in Inset) IsHidden() bool {
	return in.Top+in.Bottom >= 1 || in.Left+in.Right >= 1
}
