// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，main.go 只负责解析参数、
// 初始化嵌入资源和设置窗口。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/farmtown/pkg/config"
	"github.com/decker502/farmtown/pkg/game"
	"github.com/decker502/farmtown/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Fullscreen 以全屏启动（覆盖已保存的设置）
	Fullscreen bool
	// Fresh 忽略玩家存档，从出生点开始
	Fresh bool
	// SceneConfig 主场景配置文件，为空时使用 config.DefaultSceneConfigPath
	SceneConfig string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 主场景 Create 失败（缺少资源、地图与配置不匹配）时返回错误。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	path := cfg.SceneConfig
	if path == "" {
		path = config.DefaultSceneConfigPath
	}
	sceneCfg, err := config.LoadSceneConfig(path)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载场景配置: %s (%d 个图块集, %d 个图层)", path, len(sceneCfg.Tilesets), len(sceneCfg.Layers))

	gameState := game.GetGameState()
	gameState.FreshStart = cfg.Fresh
	settingsManager := gameState.GetSettingsManager()

	if cfg.Fullscreen {
		settingsManager.SetFullscreen(true)
	}
	ebiten.SetFullscreen(settingsManager.GetSettings().Fullscreen)

	resourceManager := game.NewResourceManager()
	events := game.GetEventDispatcher()

	sceneManager := game.NewSceneManager()
	sceneManager.Register(sceneCfg.Key, func() game.Scene {
		return scenes.NewGameScene(resourceManager, sceneManager, events, sceneCfg)
	})
	sceneManager.Register(scenes.HUDSceneKey, func() game.Scene {
		return scenes.NewHUDScene(resourceManager, events)
	})

	if err := sceneManager.Start(sceneCfg.Key); err != nil {
		return nil, fmt.Errorf("场景启动失败: %w", err)
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 关闭窗口前保存
	if ebiten.IsWindowBeingClosed() {
		a.saveOnExit()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// F3 切换碰撞盒调试层
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		enabled := a.settingsManager.ToggleShowDebug()
		a.saveSettings()
		log.Printf("[App] Debug overlay: %v", enabled)
	}

	a.sceneManager.Update(config.FixedDeltaTime())
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settingsManager.SetFullscreen(ebiten.IsFullscreen())
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// saveOnExit 保存所有场景的状态
func (a *App) saveOnExit() {
	if !a.sceneManager.SaveAll() {
		log.Printf("[App] Warning: some scenes failed to save")
		return
	}
	log.Printf("[App] Saved on exit")
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 像素风格画面，使用最近邻缩放保持边缘清晰
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
