package entities

import (
	"fmt"
	"testing"

	"github.com/decker502/farmtown/internal/tilemap"
	"github.com/decker502/farmtown/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// mockResourceManager 实现 ResourceLoader 接口，避免文件 I/O
type mockResourceManager struct {
	animations map[string]*config.AnimationSetConfig
	loaded     []string
}

// newMockResourceManager 创建一个带有标准玩家动画的 mock 资源管理器
func newMockResourceManager() *mockResourceManager {
	set := &config.AnimationSetConfig{
		Image:       "assets/sprites/player.png",
		FrameWidth:  16,
		FrameHeight: 16,
	}
	for row, facing := range Facings {
		set.Animations = append(set.Animations,
			config.AnimationClipConfig{Key: IdleAnimation(facing), Frames: []int{row * 4}, FrameRate: 1, Repeat: -1},
			config.AnimationClipConfig{Key: WalkAnimation(facing), Frames: []int{row * 4, row*4 + 1, row*4 + 2, row*4 + 3}, FrameRate: 8, Repeat: -1},
		)
	}
	return &mockResourceManager{
		animations: map[string]*config.AnimationSetConfig{"data/animations/player.yaml": set},
	}
}

// LoadImage 返回 64x64 测试图像
func (m *mockResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	m.loaded = append(m.loaded, path)
	return ebiten.NewImage(64, 64), nil
}

// LoadAnimationSet 返回预置的动画配置
func (m *mockResourceManager) LoadAnimationSet(path string) (*config.AnimationSetConfig, error) {
	set, ok := m.animations[path]
	if !ok {
		return nil, fmt.Errorf("animation set %s not found", path)
	}
	return set, nil
}

// testMapJSON 3x2 地图，两个图块集：
//
//	Grass (firstgid 1)：本地 1 号瓦片可碰撞
//	Stone (firstgid 5)
const testMapJSON = `{
  "width": 3, "height": 2, "tilewidth": 16, "tileheight": 16,
  "orientation": "orthogonal", "infinite": false,
  "layers": [
    {"id": 1, "name": "ground", "type": "tilelayer", "width": 3, "height": 2, "visible": true, "opacity": 1,
     "data": [1, 2, 5, 0, 6, 2]}
  ],
  "tilesets": [
    {"firstgid": 1, "name": "Grass", "image": "grass.png", "imagewidth": 32, "imageheight": 32,
     "tilewidth": 16, "tileheight": 16, "tilecount": 4, "columns": 2,
     "tiles": [{"id": 1, "properties": [{"name": "collides", "type": "bool", "value": true}]}]},
    {"firstgid": 5, "name": "Stone", "image": "stone.png", "imagewidth": 32, "imageheight": 32,
     "tilewidth": 16, "tileheight": 16, "tilecount": 4, "columns": 2}
  ]
}`

// loadTestMap 解析测试地图
func loadTestMap(t *testing.T) *tilemap.Map {
	t.Helper()
	m, err := tilemap.ParseMap([]byte(testMapJSON))
	if err != nil {
		t.Fatalf("Failed to parse test map: %v", err)
	}
	return m
}

// testBindings 测试地图的图块集绑定
func testBindings() []config.TilesetBinding {
	return []config.TilesetBinding{
		{Name: "Grass", Key: "grass", Image: "assets/tilesets/grass.png"},
		{Name: "Stone", Key: "stone", Image: "assets/tilesets/stone.png"},
	}
}
