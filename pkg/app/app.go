// Package app 提供画廊应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，main.go 只负责解析命令行参数。
package app

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/gallery/pkg/config"
	"github.com/decker502/gallery/pkg/game"
	"github.com/decker502/gallery/pkg/scenes"
	"github.com/decker502/gallery/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用调试日志
	Verbose bool
	// ConfigPath 画廊配置文件路径，为空时使用内置配置
	ConfigPath string
	// Fullscreen 以全屏启动（覆盖已保存的设置，不持久化）
	Fullscreen bool
	// ReducedMotion 本次运行减少动画（覆盖已保存的设置，不持久化）
	ReducedMotion bool
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
}

// App 是画廊应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	window       config.WindowConfig
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化画廊应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志级别
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	// 持久化设置；存储不可用时降级为仅内存
	if err := utils.EnsureStorageDir(); err != nil {
		log.Warnf("[App] %v", err)
	}
	dataManager, err := gdata.Open(gdata.Config{AppName: "gallery"})
	if err != nil {
		log.Warnf("[App] Persistent storage unavailable: %v", err)
		dataManager = nil
	}
	settings := game.NewSettingsManager(dataManager)

	galleryConfig, err := config.LoadGalleryConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("画廊配置加载失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	first := true
	sceneManager.SetSceneFactory(func() (game.Scene, error) {
		gc := galleryConfig
		if !first {
			// 重新加载时从磁盘重新读取配置；窗口尺寸只在启动时生效
			reloaded, err := config.LoadGalleryConfig(cfg.ConfigPath)
			if err != nil {
				return nil, err
			}
			reloaded.Window = galleryConfig.Window
			gc = reloaded
		}
		first = false
		return scenes.NewGalleryScene(scenes.GallerySceneOptions{
			Config:        gc,
			Resources:     game.NewResourceManager(gc.BaseDir),
			Settings:      settings,
			ReducedMotion: cfg.ReducedMotion,
			Seed:          cfg.Seed,
		})
	})
	if err := sceneManager.Reload(); err != nil {
		return nil, err
	}

	// 移动端窗口由系统管理
	if !utils.IsMobile() {
		ebiten.SetWindowSize(galleryConfig.Window.Width, galleryConfig.Window.Height)
		ebiten.SetWindowTitle(galleryConfig.Window.Title)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		ebiten.SetFullscreen(cfg.Fullscreen || settings.GetSettings().Fullscreen)
	}

	log.Info("[App] Gallery started", "config", configName(cfg.ConfigPath),
		"reducedMotion", cfg.ReducedMotion || settings.GetSettings().ReducedMotion)

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		window:       galleryConfig.Window,
		verbose:      cfg.Verbose,
	}, nil
}

func configName(path string) string {
	if path == "" {
		return config.DefaultGalleryConfigPath + " (embedded)"
	}
	return path
}

// Update 更新逻辑，每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.window.Width, a.window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// F5 重新加载画廊配置
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := a.sceneManager.Reload(); err != nil {
			log.Errorf("[App] Reload failed: %v", err)
		}
	}

	// M 切换减少动画
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if gallery, ok := a.sceneManager.GetCurrentScene().(*scenes.GalleryScene); ok {
			gallery.SetReducedMotion(!gallery.ReducedMotion())
			log.Info("[App] Reduced motion toggled", "enabled", gallery.ReducedMotion())
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	enable := !ebiten.IsFullscreen()
	if !enable {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settings.SetFullscreen(enable)
	if err := a.settings.Save(); err != nil {
		log.Warnf("[App] Failed to save settings: %v", err)
	}
}

// Draw 绘制画面，每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸，与画廊配置的窗口尺寸一致
// Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.window.Width, a.window.Height
}

// Shutdown 停止所有动画并保存设置，在游戏循环结束后调用
func (a *App) Shutdown() {
	a.sceneManager.Dispose()
	if err := a.settings.Save(); err != nil {
		log.Warnf("[App] Failed to save settings: %v", err)
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
