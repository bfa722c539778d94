package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储目录名
const AppName = "farmtown"

// GameState 存储全局游戏状态
// 这是一个单例，用于管理跨场景的持久化服务
type GameState struct {
	gdataManager    *gdata.Manager // 可为 nil（降级模式）
	settingsManager *SettingsManager
	saveManager     *SaveManager

	// FreshStart 为 true 时场景忽略已有存档
	FreshStart bool
}

// 全局单例实例
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，确保整个游戏生命周期只有一个实例
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = newGameState(openGdata(AppName))
	}
	return globalGameState
}

// NewGameStateWithManager 使用指定的 gdata Manager 替换全局实例（测试使用）
func NewGameStateWithManager(manager *gdata.Manager) *GameState {
	globalGameState = newGameState(manager)
	return globalGameState
}

func newGameState(manager *gdata.Manager) *GameState {
	return &GameState{
		gdataManager:    manager,
		settingsManager: NewSettingsManager(manager),
		saveManager:     NewSaveManager(manager),
	}
}

// openGdata 打开 gdata 存储，失败时返回 nil 并进入降级模式
func openGdata(appName string) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[GameState] Warning: gdata unavailable: %v (settings and saves will not persist)", err)
		return nil
	}
	return manager
}

// GetGdataManager 返回 gdata Manager，可能为 nil
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// GetSaveManager 返回存档管理器
func (gs *GameState) GetSaveManager() *SaveManager {
	return gs.saveManager
}

// resetGlobalGameState 重置全局状态（测试使用）
func resetGlobalGameState() {
	globalGameState = nil
}
