package config

import (
	"fmt"

	"github.com/decker502/farmtown/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// SceneConfig 主场景配置
//
// 描述场景创建时需要的全部"胶水"参数：地图、图块集绑定、图层顺序、
// 玩家出生点与碰撞盒、按键绑定、摄像机边界以及需要并行启动的场景。
//
// 配置文件位置: data/scenes/game.yaml
type SceneConfig struct {
	// Key 场景注册名
	Key string `yaml:"key"`

	// Map 地图文件（Tiled JSON）
	Map MapConfig `yaml:"map"`

	// Tilesets 图块集绑定：Tiled 中的图块集名称 -> 图片资源
	Tilesets []TilesetBinding `yaml:"tilesets"`

	// Layers 图层列表（顺序即绘制与重叠优先级）
	Layers []LayerConfig `yaml:"layers"`

	// Player 玩家精灵配置
	Player PlayerConfig `yaml:"player"`

	// Keys 移动按键绑定
	Keys KeyBindingConfig `yaml:"keys"`

	// Camera 摄像机配置
	Camera CameraConfig `yaml:"camera"`

	// Launch 场景创建完成后并行启动的场景（不停止当前场景）
	Launch []string `yaml:"launch"`
}

// MapConfig 地图资源
type MapConfig struct {
	Path string `yaml:"path"`
}

// TilesetBinding 把 Tiled 图块集名称绑定到图片资源
type TilesetBinding struct {
	// Name Tiled 中的图块集名称，如 "Water Objects"
	Name string `yaml:"name"`
	// Key 图片资源键，如 "waterObjects"，图层通过它引用图块集
	Key string `yaml:"key"`
	// Image 图片路径，如 "assets/tilesets/water_objects.png"
	Image string `yaml:"image"`
}

// LayerConfig 单个图层配置
type LayerConfig struct {
	// Name Tiled 中的图层名称
	Name string `yaml:"name"`
	// Tilesets 本图层允许使用的图块集键，其他图块集的图块不会被绘制
	Tilesets []string `yaml:"tilesets"`
	// Depth 绘制深度，越小越靠后；玩家深度为 0
	Depth float64 `yaml:"depth"`
	// CollisionProperty 碰撞属性名，图块上该布尔属性为 true 时生成碰撞体；空字符串表示不碰撞
	CollisionProperty string `yaml:"collisionProperty"`
}

// PlayerConfig 玩家精灵配置
type PlayerConfig struct {
	// Animations 动画配置文件
	Animations string `yaml:"animations"`
	// SpawnX/SpawnY 出生点（世界坐标，精灵中心）
	SpawnX float64 `yaml:"spawnX"`
	SpawnY float64 `yaml:"spawnY"`
	// Scale 精灵缩放
	Scale float64 `yaml:"scale"`
	// Body 碰撞盒（源图像素，会乘以 Scale）
	Body BodyConfig `yaml:"body"`
	// Speed 移动速度（像素/秒）
	Speed float64 `yaml:"speed"`
	// Facing 初始朝向: up/down/left/right
	Facing string `yaml:"facing"`
	// Depth 绘制深度
	Depth float64 `yaml:"depth"`
}

// BodyConfig 碰撞盒尺寸与相对精灵左上角的偏移
type BodyConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offsetX"`
	OffsetY float64 `yaml:"offsetY"`
}

// KeyBindingConfig 移动按键（Ebitengine 按键名，如 "W"、"ArrowUp"）
type KeyBindingConfig struct {
	Up    string `yaml:"up"`
	Down  string `yaml:"down"`
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// CameraConfig 摄像机配置
type CameraConfig struct {
	Bounds RectConfig `yaml:"bounds"`
	// Follow 是否跟随玩家
	Follow bool `yaml:"follow"`
	// Lerp 跟随平滑系数 (0, 1]，1 表示紧跟
	Lerp float64 `yaml:"lerp"`
}

// RectConfig 矩形区域
type RectConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DefaultSceneConfig 返回主场景的默认配置
//
// 数值与地图编辑器中的手调结果一致：9 个图层全部位于深度 -1，
// 玩家出生于 (467.5, 405)，缩放 3 倍，碰撞盒 10x13。
func DefaultSceneConfig() *SceneConfig {
	return &SceneConfig{
		Key: "Game",
		Map: MapConfig{Path: "data/maps/farm.json"},
		Tilesets: []TilesetBinding{
			{Name: "Water Objects", Key: "waterObjects", Image: "assets/tilesets/water_objects.png"},
			{Name: "Water", Key: "water", Image: "assets/tilesets/water.png"},
			{Name: "Tilled Dirt", Key: "soil", Image: "assets/tilesets/tilled_dirt.png"},
			{Name: "Mushrooms, Flowers, Stones", Key: "plantsRocks", Image: "assets/tilesets/plants_rocks.png"},
			{Name: "Paths", Key: "paths", Image: "assets/tilesets/paths.png"},
			{Name: "Mailbox Animation Frames", Key: "mailbox", Image: "assets/tilesets/mailbox.png"},
			{Name: "Wooden House", Key: "house", Image: "assets/tilesets/wooden_house.png"},
			{Name: "Grass tiles with animates water-export", Key: "grassHillWater", Image: "assets/tilesets/grass_hill_water.png"},
			{Name: "Grass hill tiles", Key: "grassHillTiles", Image: "assets/tilesets/grass_hill_tiles.png"},
			{Name: "Tall Grass hill tiles", Key: "grassHillTall", Image: "assets/tilesets/grass_hill_tall.png"},
			{Name: "Basic Furniture", Key: "furniture", Image: "assets/tilesets/basic_furniture.png"},
			{Name: "Fences", Key: "fences", Image: "assets/tilesets/fences.png"},
			{Name: "door animation sprites", Key: "door", Image: "assets/tilesets/door.png"},
			{Name: "Wood Bridge", Key: "bridge", Image: "assets/tilesets/wood_bridge.png"},
		},
		Layers: []LayerConfig{
			{Name: "water", Tilesets: []string{"water"}, Depth: -1, CollisionProperty: "collides"},
			{Name: "base", Tilesets: []string{"house", "grassHillWater"}, Depth: -1, CollisionProperty: "collides"},
			{Name: "hills", Tilesets: []string{"house", "grassHillWater", "grassHillTiles", "grassHillTall"}, Depth: -1, CollisionProperty: "collides"},
			{Name: "soil", Tilesets: []string{"soil"}, Depth: -1, CollisionProperty: "collides"},
			{Name: "greenery", Tilesets: []string{"plantsRocks", "paths", "waterObjects"}, Depth: -1, CollisionProperty: "collides"},
			{Name: "manmade", Tilesets: []string{"house", "door", "bridge"}, Depth: -1, CollisionProperty: "collides"},
			{Name: "fences", Tilesets: []string{"fences"}, Depth: -1, CollisionProperty: "collides"},
			{Name: "furniture", Tilesets: []string{"furniture", "mailbox"}, Depth: -1, CollisionProperty: "collides"},
			{Name: "roof", Tilesets: []string{"house"}, Depth: -1, CollisionProperty: "collides"},
		},
		Player: PlayerConfig{
			Animations: "data/animations/player.yaml",
			SpawnX:     467.5,
			SpawnY:     405,
			Scale:      3,
			Body:       BodyConfig{Width: 10, Height: 13, OffsetX: 0, OffsetY: 0.23},
			Speed:      100,
			Facing:     "down",
			Depth:      0,
		},
		Keys: KeyBindingConfig{Up: "W", Down: "S", Left: "A", Right: "D"},
		Camera: CameraConfig{
			Bounds: RectConfig{X: 0, Y: 0, Width: 1280, Height: 1280},
			Follow: true,
			Lerp:   1,
		},
		Launch: []string{"HUD"},
	}
}

// ParseSceneConfig 解析场景配置
//
// YAML 中未出现的字段保留 DefaultSceneConfig 的值；出现的列表整体替换默认列表。
//
// 参数:
//   - data: YAML 内容
//
// 返回:
//   - *SceneConfig: 合并默认值并通过校验的配置
//   - error: 解析或校验失败
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}

	return cfg, nil
}

// LoadSceneConfig 从嵌入资源加载场景配置
//
// 参数:
//   - path: 配置文件路径（如 "data/scenes/game.yaml"）
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// Validate 验证配置有效性
//
// 检查项：
//   - 地图路径、场景键非空
//   - 图块集名称与键唯一
//   - 图层名唯一，且只引用已声明的图块集键
//   - 玩家缩放、碰撞盒为正，速度非负，朝向合法
//   - 四个按键非空且互不相同
//   - 摄像机边界为正，平滑系数在 (0, 1]
func (c *SceneConfig) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("scene key is empty")
	}
	if c.Map.Path == "" {
		return fmt.Errorf("map path is empty")
	}

	tilesetKeys := make(map[string]bool, len(c.Tilesets))
	tilesetNames := make(map[string]bool, len(c.Tilesets))
	for _, ts := range c.Tilesets {
		if ts.Name == "" || ts.Key == "" || ts.Image == "" {
			return fmt.Errorf("tileset binding %+v has empty fields", ts)
		}
		if tilesetKeys[ts.Key] {
			return fmt.Errorf("duplicate tileset key %q", ts.Key)
		}
		if tilesetNames[ts.Name] {
			return fmt.Errorf("duplicate tileset name %q", ts.Name)
		}
		tilesetKeys[ts.Key] = true
		tilesetNames[ts.Name] = true
	}

	if len(c.Layers) == 0 {
		return fmt.Errorf("no layers configured")
	}
	layerNames := make(map[string]bool, len(c.Layers))
	for _, layer := range c.Layers {
		if layer.Name == "" {
			return fmt.Errorf("layer name is empty")
		}
		if layerNames[layer.Name] {
			return fmt.Errorf("duplicate layer %q", layer.Name)
		}
		layerNames[layer.Name] = true
		if len(layer.Tilesets) == 0 {
			return fmt.Errorf("layer %q has no tilesets", layer.Name)
		}
		for _, key := range layer.Tilesets {
			if !tilesetKeys[key] {
				return fmt.Errorf("layer %q references unknown tileset key %q", layer.Name, key)
			}
		}
	}

	p := c.Player
	if p.Animations == "" {
		return fmt.Errorf("player animations path is empty")
	}
	if p.Scale <= 0 {
		return fmt.Errorf("player scale must be > 0, got %.2f", p.Scale)
	}
	if p.Body.Width <= 0 || p.Body.Height <= 0 {
		return fmt.Errorf("player body must be positive, got %.2fx%.2f", p.Body.Width, p.Body.Height)
	}
	if p.Speed < 0 {
		return fmt.Errorf("player speed must be >= 0, got %.2f", p.Speed)
	}
	switch p.Facing {
	case "up", "down", "left", "right":
	default:
		return fmt.Errorf("invalid player facing %q", p.Facing)
	}

	keys := []string{c.Keys.Up, c.Keys.Down, c.Keys.Left, c.Keys.Right}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == "" {
			return fmt.Errorf("movement key binding is empty")
		}
		if seen[k] {
			return fmt.Errorf("movement key %q bound twice", k)
		}
		seen[k] = true
	}

	if c.Camera.Bounds.Width <= 0 || c.Camera.Bounds.Height <= 0 {
		return fmt.Errorf("camera bounds must be positive, got %.0fx%.0f",
			c.Camera.Bounds.Width, c.Camera.Bounds.Height)
	}
	if c.Camera.Lerp <= 0 || c.Camera.Lerp > 1 {
		return fmt.Errorf("camera lerp must be in (0, 1], got %.2f", c.Camera.Lerp)
	}

	return nil
}

// TilesetByKey 按资源键查找图块集绑定
func (c *SceneConfig) TilesetByKey(key string) (TilesetBinding, bool) {
	for _, ts := range c.Tilesets {
		if ts.Key == key {
			return ts, true
		}
	}
	return TilesetBinding{}, false
}
