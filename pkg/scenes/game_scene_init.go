package scenes

import (
	"fmt"
	"log"
	"slices"

	"github.com/decker502/farmtown/pkg/config"
	"github.com/decker502/farmtown/pkg/entities"
	"github.com/decker502/farmtown/pkg/game"
	"github.com/decker502/farmtown/pkg/systems"
	"github.com/solarlune/resolv"
)

// Create 初始化场景
//
// 步骤:
//  1. 加载 Tiled 地图
//  2. 预加载所有图块集图片和玩家精灵表（并行解码），按名称绑定图块集
//  3. 按配置顺序创建图层（每层只使用自己的图块集）
//  4. 把图层中 collides 属性为 true 的瓦片转换为碰撞空间中的静态碰撞体
//  5. 解析四个移动键
//  6. 创建玩家（有存档时恢复位置和朝向）
//  7. 设置摄像机边界并跟随玩家
//  8. 并行启动覆盖层场景
//
// 任何一步失败都返回错误，场景不会被激活。
func (s *GameScene) Create() error {
	log.Printf("[GameScene] Creating scene %s", s.cfg.Key)

	// 1. 地图
	m, err := s.resourceManager.LoadTilemap(s.cfg.Map.Path)
	if err != nil {
		return fmt.Errorf("failed to load map: %w", err)
	}
	s.tilemap = m

	// 2. 图片预加载 + 图块集绑定
	animSet, err := s.resourceManager.LoadAnimationSet(s.cfg.Player.Animations)
	if err != nil {
		return fmt.Errorf("failed to load player animations: %w", err)
	}
	paths := make([]string, 0, len(s.cfg.Tilesets)+1)
	for _, ts := range s.cfg.Tilesets {
		paths = append(paths, ts.Image)
	}
	paths = append(paths, animSet.Image)
	if err := s.resourceManager.LoadImages(paths); err != nil {
		return fmt.Errorf("failed to preload images: %w", err)
	}

	tilesets, err := entities.BindTilesets(m, s.cfg.Tilesets, s.resourceManager)
	if err != nil {
		return err
	}

	// 3-4. 图层与碰撞体
	s.space = resolv.NewSpace(m.PixelWidth(), m.PixelHeight(), m.TileWidth, m.TileHeight)
	s.layers = s.layers[:0]
	for _, layerCfg := range s.cfg.Layers {
		id, err := entities.NewTileLayerEntity(s.entityManager, s.space, m, layerCfg, tilesets)
		if err != nil {
			return fmt.Errorf("failed to create layer %s: %w", layerCfg.Name, err)
		}
		s.layers = append(s.layers, id)
	}

	// 5. 按键
	s.keys, err = entities.ParseKeyBindings(s.cfg.Keys)
	if err != nil {
		return err
	}

	// 6. 玩家
	spawn := s.playerSpawn()
	s.playerEntity, err = entities.NewPlayerEntity(s.entityManager, s.space, s.resourceManager, s.cfg.Player, spawn)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	s.lastX, s.lastY = spawn.X, spawn.Y

	s.playerControlSystem = systems.NewPlayerControlSystem(s.entityManager, s.keyState, s.events)
	s.physicsSystem = systems.NewPhysicsSystem(s.entityManager, s.space, float64(m.PixelWidth()), float64(m.PixelHeight()))
	s.animationSystem = systems.NewAnimationSystem(s.entityManager)

	// 7. 摄像机
	s.cameraSystem = systems.NewCameraSystem(s.entityManager, config.GameWindowWidth, config.GameWindowHeight)
	b := s.cfg.Camera.Bounds
	s.cameraSystem.SetBounds(b.X, b.Y, b.Width, b.Height)
	s.cameraSystem.SetLerp(s.cfg.Camera.Lerp, s.cfg.Camera.Lerp)
	if s.cfg.Camera.Follow {
		s.cameraSystem.StartFollow(s.playerEntity)
	}
	s.renderSystem = systems.NewRenderSystem(s.entityManager, s.cameraSystem)
	s.created = true

	// 8. 覆盖层
	for _, key := range s.cfg.Launch {
		if s.sceneManager == nil {
			break
		}
		if err := s.sceneManager.Launch(key); err != nil {
			return fmt.Errorf("failed to launch scene %s: %w", key, err)
		}
	}

	// 覆盖层已订阅事件，发送初始状态
	s.emitInitialState(spawn.Facing)

	log.Printf("[GameScene] Scene %s created: %d layers, player at (%.1f, %.1f) facing %s",
		s.cfg.Key, len(s.layers), spawn.X, spawn.Y, spawn.Facing)
	return nil
}

// playerSpawn 计算玩家出生参数，存档优先于配置
func (s *GameScene) playerSpawn() entities.PlayerSpawn {
	spawn := entities.PlayerSpawn{
		X:      s.cfg.Player.SpawnX,
		Y:      s.cfg.Player.SpawnY,
		Facing: s.cfg.Player.Facing,
		Keys:   s.keys,
	}

	if s.gameState == nil || s.gameState.FreshStart {
		return spawn
	}

	save, err := s.gameState.GetSaveManager().Load(s.cfg.Key)
	if err != nil {
		log.Printf("[GameScene] Warning: ignoring save: %v", err)
		return spawn
	}
	if save == nil {
		return spawn
	}

	spawn.X, spawn.Y = save.X, save.Y
	if slices.Contains(entities.Facings, save.Facing) {
		spawn.Facing = save.Facing
	}
	log.Printf("[GameScene] Restored player from save (%s)", save.SavedAt.Format("2006-01-02 15:04"))
	return spawn
}

func (s *GameScene) emitInitialState(facing string) {
	if s.events == nil {
		return
	}
	s.events.Emit(game.EventPlayerFacing, game.PlayerFacingEvent{Facing: facing})
	s.emitPlayerMoved(true)
}
