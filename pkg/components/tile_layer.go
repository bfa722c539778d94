package components

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/solarlune/resolv"
)

// TileLayerComponent 预渲染的瓦片图层
// Image 覆盖整张地图，以世界坐标 (0,0) 为左上角绘制
type TileLayerComponent struct {
	Name  string
	Image *ebiten.Image
	Depth float64

	// TileCount 图层中实际绘制的瓦片数（受图块集白名单过滤）
	TileCount int

	// Colliders 该图层生成的静态碰撞体
	Colliders []*resolv.Object
}
