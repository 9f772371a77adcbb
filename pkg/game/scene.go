package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the viewer (currently only the gallery).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，场景被替换或程序退出时调用 Dispose()
//
// 画廊场景借此停止所有进行中的动画和定时回调
type Disposable interface {
	Dispose()
}
