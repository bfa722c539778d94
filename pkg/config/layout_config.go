package config

// 布局配置常量
// 本文件定义窗口与逻辑屏幕尺寸，场景内容的坐标全部使用"世界坐标系"
// （相对于地图左上角），由摄像机换算到屏幕坐标。

const (
	// GameWindowWidth 逻辑屏幕宽度（像素），与窗口初始宽度一致
	GameWindowWidth = 800

	// GameWindowHeight 逻辑屏幕高度（像素）
	GameWindowHeight = 600

	// GameWindowTitle 窗口标题
	GameWindowTitle = "Farmtown"

	// TicksPerSecond 逻辑帧率，与 Ebitengine 默认 TPS 相同
	TicksPerSecond = 60

	// DefaultSceneConfigPath 主场景配置文件
	DefaultSceneConfigPath = "data/scenes/game.yaml"
)

// FixedDeltaTime 返回每个逻辑帧的时长（秒）
func FixedDeltaTime() float64 {
	return 1.0 / float64(TicksPerSecond)
}

// ScreenCenter 返回逻辑屏幕中心点
func ScreenCenter() (float64, float64) {
	return GameWindowWidth / 2.0, GameWindowHeight / 2.0
}
