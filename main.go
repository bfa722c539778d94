package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/farmtown/pkg/app"
	"github.com/decker502/farmtown/pkg/config"
	"github.com/decker502/farmtown/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	fullscreen = flag.Bool("fullscreen", false, "以全屏启动")
	fresh      = flag.Bool("fresh", false, "忽略存档，从出生点开始")
	sceneFile  = flag.String("scene", config.DefaultSceneConfigPath, "主场景配置文件（嵌入资源路径）")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（assetsFS 和 dataFS 在 embed.go 中声明）
	embedded.Init(assetsFS, dataFS)

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TicksPerSecond)
	// 关闭窗口时由 App.Update 保存存档后退出
	ebiten.SetWindowClosingHandled(true)

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		Fullscreen:  *fullscreen,
		Fresh:       *fresh,
		SceneConfig: *sceneFile,
	})
	if err != nil {
		// 非 verbose 模式下日志被丢弃，错误需要输出到 stderr
		log.SetOutput(os.Stderr)
		log.Fatalf("游戏初始化失败: %v", err)
	}

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
