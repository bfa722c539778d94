package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 每次启动场景都会创建新实例，避免场景之间共享状态
type SceneFactory func() Scene

// activeScene 一个正在运行的场景
type activeScene struct {
	key   string
	scene Scene
}

// SceneManager manages which scenes are running.
//
// There is one primary scene (started with Start or SwitchTo) and any number
// of launched scenes running alongside it (Launch). Update and Draw visit the
// primary scene first, then launched scenes in launch order, so an overlay
// launched later is drawn on top.
type SceneManager struct {
	factories map[string]SceneFactory
	primary   *activeScene
	launched  []*activeScene
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use Start or SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		factories: make(map[string]SceneFactory),
	}
}

// Register 注册场景工厂，同名注册会覆盖之前的工厂
func (sm *SceneManager) Register(key string, factory SceneFactory) {
	sm.factories[key] = factory
}

// IsRegistered 检查场景是否已注册
func (sm *SceneManager) IsRegistered(key string) bool {
	_, ok := sm.factories[key]
	return ok
}

// create 通过工厂创建场景并执行 Create
func (sm *SceneManager) create(key string) (Scene, error) {
	factory, ok := sm.factories[key]
	if !ok {
		return nil, fmt.Errorf("scene %q is not registered", key)
	}
	scene := factory()
	if scene == nil {
		return nil, fmt.Errorf("scene factory for %q returned nil", key)
	}
	if err := scene.Create(); err != nil {
		shutdown(scene)
		return nil, fmt.Errorf("failed to create scene %q: %w", key, err)
	}
	return scene, nil
}

// Start 创建并切换到指定的主场景
//
// 旧的主场景和所有并行场景都会被停止。新场景在 Create 期间启动的
// 并行场景会被保留。
func (sm *SceneManager) Start(key string) error {
	log.Printf("[SceneManager] 启动场景: %s", key)

	old := sm.primary
	oldLaunched := sm.launched
	sm.launched = nil

	scene, err := sm.create(key)
	if err != nil {
		// 启动失败，恢复原有场景
		for _, a := range sm.launched {
			shutdown(a.scene)
		}
		sm.launched = oldLaunched
		return err
	}

	if old != nil {
		shutdown(old.scene)
	}
	for _, a := range oldLaunched {
		shutdown(a.scene)
	}

	sm.primary = &activeScene{key: key, scene: scene}
	log.Printf("[SceneManager] 成功切换到场景: %s (并行场景 %d 个)", key, len(sm.launched))
	return nil
}

// SwitchTo changes the primary scene to an already created scene.
// Create is not called; launched scenes keep running.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.primary != nil {
		shutdown(sm.primary.scene)
	}
	sm.primary = &activeScene{scene: scene}
}

// Launch 启动一个与主场景并行运行的场景，不停止当前场景
func (sm *SceneManager) Launch(key string) error {
	if sm.IsActive(key) {
		return fmt.Errorf("scene %q is already running", key)
	}

	scene, err := sm.create(key)
	if err != nil {
		return err
	}
	sm.launched = append(sm.launched, &activeScene{key: key, scene: scene})
	log.Printf("[SceneManager] 并行启动场景: %s", key)
	return nil
}

// Stop 停止一个并行场景
// 返回 false 表示该场景没有在运行
func (sm *SceneManager) Stop(key string) bool {
	for i, a := range sm.launched {
		if a.key == key {
			shutdown(a.scene)
			sm.launched = append(sm.launched[:i], sm.launched[i+1:]...)
			log.Printf("[SceneManager] 停止场景: %s", key)
			return true
		}
	}
	return false
}

// IsActive 检查场景（主场景或并行场景）是否正在运行
func (sm *SceneManager) IsActive(key string) bool {
	if sm.primary != nil && sm.primary.key == key {
		return true
	}
	for _, a := range sm.launched {
		if a.key == key {
			return true
		}
	}
	return false
}

// GetCurrentScene 返回当前主场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	if sm.primary == nil {
		return nil
	}
	return sm.primary.scene
}

// ActiveScenes 按更新顺序返回所有运行中的场景（主场景在前）
func (sm *SceneManager) ActiveScenes() []Scene {
	scenes := make([]Scene, 0, len(sm.launched)+1)
	if sm.primary != nil {
		scenes = append(scenes, sm.primary.scene)
	}
	for _, a := range sm.launched {
		scenes = append(scenes, a.scene)
	}
	return scenes
}

// SaveAll 对所有实现了 Saveable 的运行中场景调用 SaveOnExit
// 返回 false 表示至少有一个场景保存失败
func (sm *SceneManager) SaveAll() bool {
	ok := true
	for _, scene := range sm.ActiveScenes() {
		if s, isSaveable := scene.(Saveable); isSaveable {
			if !s.SaveOnExit() {
				ok = false
			}
		}
	}
	return ok
}

// Update updates the primary scene, then every launched scene.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	// 场景可能在 Update 中启动或停止其他场景，遍历快照
	for _, scene := range sm.ActiveScenes() {
		scene.Update(deltaTime)
	}
}

// Draw renders the primary scene, then every launched scene on top.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	for _, scene := range sm.ActiveScenes() {
		scene.Draw(screen)
	}
}

func shutdown(scene Scene) {
	if s, ok := scene.(Shutdowner); ok {
		s.Shutdown()
	}
}
