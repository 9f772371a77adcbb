package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteComponent 实体的背景图片
// Image 为 nil 时以 Placeholder 纯色绘制
type SpriteComponent struct {
	ImagePath   string
	Image       *ebiten.Image
	Placeholder color.RGBA
}
