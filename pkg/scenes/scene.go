package scenes

import (
	"github.com/decker502/farmtown/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 场景注册名
const (
	// HUDSceneKey 与主场景并行运行的覆盖层
	HUDSceneKey = "HUD"
)
