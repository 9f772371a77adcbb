//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	cp -r ../assets ./assets && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.gallery -o build/android/gallery.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	cp -r ../assets ./assets && ebitenmobile bind -target ios -tags mobile -o build/ios/Gallery.xcframework -v ./mobile
package mobile

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/gallery/pkg/app"
	"github.com/decker502/gallery/pkg/embedded"
)

func init() {
	// assetsFS 在 embed.go 中声明
	embedded.Init(assetsFS)

	galleryApp, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Fatal("画廊初始化失败", "err", err)
	}

	mobile.SetGame(galleryApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
