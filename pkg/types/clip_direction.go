package types

// ClipDirection 裁剪遮罩的展开方向
type ClipDirection string

const (
	ClipTopBottom ClipDirection = "top-bottom"
	ClipBottomTop ClipDirection = "bottom-top"
	ClipLeftRight ClipDirection = "left-right"
	ClipRightLeft ClipDirection = "right-left"
)

// ClipPaths 一个方向对应的三种遮罩状态
//   - Hide: 进入前的隐藏状态
//   - Reveal: 完全显示
//   - From: 收起时的终止状态（与 Hide 位于相对的一边）
type ClipPaths struct {
	Hide   Inset
	Reveal Inset
	From   Inset
}

// ParseClipDirection 解析方向字符串，无法识别时返回 false
func ParseClipDirection(s string) (ClipDirection, bool) {
	switch d := ClipDirection(s); d {
	case ClipTopBottom, ClipBottomTop, ClipLeftRight, ClipRightLeft:
		return d, true
	default:
		return "", false
	}
}

// Paths 返回该方向的遮罩组合，未知方向按 top-bottom 处理
func (d ClipDirection) Paths() ClipPaths {
	switch d {
	case ClipBottomTop:
		return ClipPaths{
			From:   Inset{Bottom: 1},
			Reveal: InsetNone,
			Hide:   Inset{Top: 1},
		}
	case ClipLeftRight:
		return ClipPaths{
			From:   Inset{Right: 1},
			Reveal: InsetNone,
			Hide:   Inset{Left: 1},
		}
	case ClipRightLeft:
		return ClipPaths{
			From:   Inset{Left: 1},
			Reveal: InsetNone,
			Hide:   Inset{Right: 1},
		}
	default:
		return ClipPaths{
			From:   Inset{Top: 1},
			Reveal: InsetNone,
			Hide:   Inset{Bottom: 1},
		}
	}
}

// IsHorizontal 是否为水平方向
func (d ClipDirection) IsHorizontal() bool {
	return d == ClipLeftRight || d == ClipRightLeft
}

// AdjustForSide 根据面板所在侧调整水平方向：
// 点击位于视口左半边（面板在右侧）时使用 left-right，否则使用 right-left。
// 垂直方向保持不变。
func (d ClipDirection) AdjustForSide(side PanelSide) ClipDirection {
	if !d.IsHorizontal() {
		return d
	}
	if side == PanelRight {
		return ClipLeftRight
	}
	return ClipRightLeft
}
