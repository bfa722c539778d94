package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/farmtown/internal/tilemap"
	"github.com/decker502/farmtown/pkg/components"
	"github.com/decker502/farmtown/pkg/config"
	"github.com/decker502/farmtown/pkg/ecs"
	"github.com/decker502/farmtown/pkg/game"
	"github.com/decker502/farmtown/pkg/systems"
	"github.com/decker502/farmtown/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/solarlune/resolv"
)

// backgroundColor 地图以外区域的颜色
var backgroundColor = color.RGBA{R: 34, G: 32, B: 52, A: 255}

// GameScene 农场主场景
//
// Create 加载地图、生成图层与碰撞体、创建玩家并让摄像机跟随，
// 最后并行启动 HUD 覆盖层。Update 每帧依次运行
// 玩家控制 → 物理 → 动画 → 摄像机 四个系统。
type GameScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	events          *game.EventDispatcher
	gameState       *game.GameState
	cfg             *config.SceneConfig

	// 按键状态来源，默认读取 Ebitengine 的键盘
	keyState utils.KeyState

	entityManager *ecs.EntityManager
	space         *resolv.Space
	tilemap       *tilemap.Map
	layers        []ecs.EntityID
	playerEntity  ecs.EntityID
	keys          components.KeyBindings

	playerControlSystem *systems.PlayerControlSystem
	physicsSystem       *systems.PhysicsSystem
	animationSystem     *systems.AnimationSystem
	cameraSystem        *systems.CameraSystem
	renderSystem        *systems.RenderSystem

	// 上一帧的玩家位置，用于判断是否发送移动事件
	lastX, lastY float64
	created      bool
}

// NewGameScene 创建主场景（不做任何加载，加载在 Create 中完成）
//
// 参数:
//   - rm: 资源管理器
//   - sm: 场景管理器，用于并行启动 cfg.Launch 中的场景
//   - events: 与 HUD 共享的事件分发器
//   - cfg: 场景配置
func NewGameScene(rm *game.ResourceManager, sm *game.SceneManager, events *game.EventDispatcher, cfg *config.SceneConfig) *GameScene {
	return &GameScene{
		resourceManager: rm,
		sceneManager:    sm,
		events:          events,
		gameState:       game.GetGameState(),
		cfg:             cfg,
		keyState:        utils.EbitenKeyState{},
		entityManager:   ecs.NewEntityManager(),
	}
}

// SetKeyState 替换按键状态来源（测试和回放使用）
func (s *GameScene) SetKeyState(keys utils.KeyState) {
	s.keyState = keys
	if s.playerControlSystem != nil {
		s.playerControlSystem.SetKeyState(keys)
	}
}

// Update 每帧更新
func (s *GameScene) Update(deltaTime float64) {
	if !s.created {
		return
	}

	if settings := s.gameState.GetSettingsManager(); settings != nil {
		s.renderSystem.ShowHitboxes = settings.GetSettings().ShowDebug
	}

	s.playerControlSystem.Update(deltaTime)
	s.physicsSystem.Update(deltaTime)
	s.animationSystem.Update(deltaTime)
	s.cameraSystem.Update(deltaTime)

	s.emitPlayerMoved(false)
}

// emitPlayerMoved 玩家位置变化时发送 EventPlayerMoved，force 为 true 时总是发送
func (s *GameScene) emitPlayerMoved(force bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.playerEntity)
	if !ok {
		return
	}
	if !force && pos.X == s.lastX && pos.Y == s.lastY {
		return
	}
	s.lastX, s.lastY = pos.X, pos.Y

	if s.events == nil {
		return
	}
	tileX, tileY := utils.WorldToTile(pos.X, pos.Y, s.tilemap.TileWidth, s.tilemap.TileHeight)
	s.events.Emit(game.EventPlayerMoved, game.PlayerMovedEvent{
		X:     pos.X,
		Y:     pos.Y,
		TileX: tileX,
		TileY: tileY,
	})
}

// Draw 绘制地图图层和玩家
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if !s.created {
		return
	}
	s.renderSystem.Draw(screen)
}

// Shutdown 从碰撞空间中移除本场景的碰撞体
func (s *GameScene) Shutdown() {
	if s.space != nil {
		for _, id := range s.layers {
			if layer, ok := ecs.GetComponent[*components.TileLayerComponent](s.entityManager, id); ok {
				s.space.Remove(layer.Colliders...)
			}
		}
		if body, ok := ecs.GetComponent[*components.BodyComponent](s.entityManager, s.playerEntity); ok && body.Object != nil {
			s.space.Remove(body.Object)
		}
	}
	s.created = false
	log.Printf("[GameScene] Shutdown")
}

// PlayerEntity 返回玩家实体ID
func (s *GameScene) PlayerEntity() ecs.EntityID {
	return s.playerEntity
}

// EntityManager 返回场景的实体管理器
func (s *GameScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Camera 返回摄像机系统
func (s *GameScene) Camera() *systems.CameraSystem {
	return s.cameraSystem
}

// Space 返回碰撞空间
func (s *GameScene) Space() *resolv.Space {
	return s.space
}
