package scenes

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/decker502/farmtown/pkg/config"
	"github.com/decker502/farmtown/pkg/embedded"
	"github.com/decker502/farmtown/pkg/game"
	"github.com/quasilyte/gdata/v2"
)

// 测试地图: 10x10 瓦片，每个 16px；(4, 2) 处是一块可碰撞的瓦片
const (
	testMapSize      = 10
	testColliderCol  = 4
	testColliderRow  = 2
	testAnimationYML = `image: assets/sprites/player.png
frameWidth: 16
frameHeight: 16
animations:
  - { key: downIdle, frames: [0], frameRate: 1, repeat: -1 }
  - { key: upIdle, frames: [4], frameRate: 1, repeat: -1 }
  - { key: leftIdle, frames: [8], frameRate: 1, repeat: -1 }
  - { key: rightIdle, frames: [12], frameRate: 1, repeat: -1 }
  - { key: downWalk, frames: [0, 1, 2, 3], frameRate: 8, repeat: -1 }
  - { key: upWalk, frames: [4, 5, 6, 7], frameRate: 8, repeat: -1 }
  - { key: leftWalk, frames: [8, 9, 10, 11], frameRate: 8, repeat: -1 }
  - { key: rightWalk, frames: [12, 13, 14, 15], frameRate: 8, repeat: -1 }
`
)

// testMapJSON 生成测试地图：全部是 Grass 的 0 号瓦片，碰撞格使用 1 号瓦片
func testMapJSON() string {
	gids := make([]string, testMapSize*testMapSize)
	for i := range gids {
		gids[i] = "1"
	}
	gids[testColliderRow*testMapSize+testColliderCol] = "2"

	return fmt.Sprintf(`{
  "width": %[1]d, "height": %[1]d, "tilewidth": 16, "tileheight": 16,
  "orientation": "orthogonal", "infinite": false,
  "layers": [
    {"id": 1, "name": "ground", "type": "tilelayer", "width": %[1]d, "height": %[1]d,
     "visible": true, "opacity": 1, "data": [%[2]s]}
  ],
  "tilesets": [
    {"firstgid": 1, "name": "Grass", "image": "grass.png", "imagewidth": 32, "imageheight": 32,
     "tilewidth": 16, "tileheight": 16, "tilecount": 4, "columns": 2,
     "tiles": [{"id": 1, "properties": [{"name": "collides", "type": "bool", "value": true}]}]}
  ]
}`, testMapSize, strings.Join(gids, ", "))
}

// encodeTestPNG 生成一张纯色 PNG
func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	green := color.RGBA{R: 0, G: 160, B: 0, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, green)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

// initTestAssets 用内存文件系统初始化 embedded 包
func initTestAssets(t *testing.T) {
	t.Helper()
	files := fstest.MapFS{
		"data/maps/test.json":         {Data: []byte(testMapJSON())},
		"data/animations/player.yaml": {Data: []byte(testAnimationYML)},
		"assets/tilesets/grass.png":   {Data: encodeTestPNG(t, 32, 32)},
		"assets/sprites/player.png":   {Data: encodeTestPNG(t, 64, 64)},
	}
	embedded.Init(files, files)
	t.Cleanup(embedded.Reset)
}

// testSceneConfig 测试场景配置：缩放 1，碰撞盒 10x13 偏移 (3, 3)
//
// 碰撞盒相对精灵中心的偏移为 (-5, -5)，出生点 (40, 40) 时碰撞盒为 (35, 35, 10, 13)。
func testSceneConfig() *config.SceneConfig {
	return &config.SceneConfig{
		Key: "TestFarm",
		Map: config.MapConfig{Path: "data/maps/test.json"},
		Tilesets: []config.TilesetBinding{
			{Name: "Grass", Key: "grass", Image: "assets/tilesets/grass.png"},
		},
		Layers: []config.LayerConfig{
			{Name: "ground", Tilesets: []string{"grass"}, Depth: -1, CollisionProperty: "collides"},
		},
		Player: config.PlayerConfig{
			Animations: "data/animations/player.yaml",
			SpawnX:     40,
			SpawnY:     40,
			Scale:      1,
			Body:       config.BodyConfig{Width: 10, Height: 13, OffsetX: 3, OffsetY: 3},
			Speed:      100,
			Facing:     "down",
		},
		Keys: config.KeyBindingConfig{Up: "W", Down: "S", Left: "A", Right: "D"},
		Camera: config.CameraConfig{
			Bounds: config.RectConfig{Width: 160, Height: 160},
			Follow: true,
			Lerp:   1,
		},
		Launch: []string{HUDSceneKey},
	}
}

// testSetup 测试用场景环境
type testSetup struct {
	rm     *game.ResourceManager
	sm     *game.SceneManager
	events *game.EventDispatcher
	hud    *HUDScene
}

// newTestSetup 初始化资源、降级模式的 GameState 和注册了 HUD 的场景管理器
func newTestSetup(t *testing.T) *testSetup {
	t.Helper()
	initTestAssets(t)
	game.NewGameStateWithManager(nil)

	ts := &testSetup{
		rm:     game.NewResourceManager(),
		sm:     game.NewSceneManager(),
		events: game.NewEventDispatcher(),
	}
	ts.sm.Register(HUDSceneKey, func() game.Scene {
		ts.hud = NewHUDScene(ts.rm, ts.events)
		return ts.hud
	})
	return ts
}

// startGameScene 注册并启动主场景
func (ts *testSetup) startGameScene(t *testing.T, cfg *config.SceneConfig) *GameScene {
	t.Helper()
	var scene *GameScene
	ts.sm.Register(cfg.Key, func() game.Scene {
		scene = NewGameScene(ts.rm, ts.sm, ts.events, cfg)
		return scene
	})
	if err := ts.sm.Start(cfg.Key); err != nil {
		t.Fatalf("Start(%s) failed: %v", cfg.Key, err)
	}
	return scene
}

// createTestGdataManager 创建用于测试的 gdata Manager
// 每个测试使用唯一的 AppName，测试结束后删除目录
func createTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	t.Helper()
	appName := fmt.Sprintf("farmtown_scenes_test_%s_%d", testName, time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}

	t.Cleanup(func() {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			os.RemoveAll(filepath.Join(homeDir, ".local", "share", appName))
		}
	})

	return manager
}
