package entities

import (
	"fmt"
	"log"

	"github.com/decker502/farmtown/internal/tilemap"
	"github.com/decker502/farmtown/pkg/components"
	"github.com/decker502/farmtown/pkg/config"
	"github.com/decker502/farmtown/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/solarlune/resolv"
)

// BoundTileset 已绑定图片的图块集
type BoundTileset struct {
	Key     string
	Tileset *tilemap.Tileset
	Image   *ebiten.Image
}

// PlacedTile 图层中一个可见瓦片
type PlacedTile struct {
	TileX, TileY int
	Tileset      *tilemap.Tileset
	LocalID      uint32
	// Flags 原始 GID 中的翻转标志位
	Flags uint32
	// Collides 瓦片的碰撞属性为 true
	Collides bool
}

// BindTilesets 将地图中的图块集按名称绑定到图片
//
// 每个绑定的 Name 必须存在于地图中，否则返回错误。
// 返回值以绑定的 Key 为索引。
func BindTilesets(m *tilemap.Map, bindings []config.TilesetBinding, rm ResourceLoader) (map[string]*BoundTileset, error) {
	bound := make(map[string]*BoundTileset, len(bindings))
	for _, b := range bindings {
		ts, ok := m.TilesetByName(b.Name)
		if !ok {
			return nil, fmt.Errorf("tileset %q (key %s) not found in map", b.Name, b.Key)
		}

		var img *ebiten.Image
		if rm != nil {
			loaded, err := rm.LoadImage(b.Image)
			if err != nil {
				return nil, fmt.Errorf("failed to load image for tileset %q: %w", b.Name, err)
			}
			img = loaded
		}

		bound[b.Key] = &BoundTileset{Key: b.Key, Tileset: ts, Image: img}
	}
	return bound, nil
}

// ResolveLayerTiles 列出图层中属于允许图块集的瓦片
//
// 图层引用的图块集不在 layerCfg.Tilesets 中时，对应瓦片被忽略（既不绘制也不碰撞）。
// 碰撞属性由 layerCfg.CollisionProperty 指定，为空表示图层不参与碰撞。
func ResolveLayerTiles(m *tilemap.Map, layerCfg config.LayerConfig, tilesets map[string]*BoundTileset) ([]PlacedTile, error) {
	layer, ok := m.Layer(layerCfg.Name)
	if !ok {
		return nil, fmt.Errorf("layer %q not found in map", layerCfg.Name)
	}

	allowed := make(map[*tilemap.Tileset]bool, len(layerCfg.Tilesets))
	for _, key := range layerCfg.Tilesets {
		bt, ok := tilesets[key]
		if !ok {
			return nil, fmt.Errorf("layer %q references unbound tileset key %q", layerCfg.Name, key)
		}
		allowed[bt.Tileset] = true
	}

	var placed []PlacedTile
	for ty := 0; ty < layer.Height; ty++ {
		for tx := 0; tx < layer.Width; tx++ {
			raw := layer.GIDAt(tx, ty)
			ts := m.TilesetForGID(raw)
			if ts == nil || !allowed[ts] {
				continue
			}

			localID := ts.LocalID(raw)
			tile := PlacedTile{
				TileX:   tx + layer.X,
				TileY:   ty + layer.Y,
				Tileset: ts,
				LocalID: localID,
				Flags:   raw &^ tilemap.GIDMask,
			}
			if layerCfg.CollisionProperty != "" {
				tile.Collides = ts.TileProperties(localID).Bool(layerCfg.CollisionProperty)
			}
			placed = append(placed, tile)
		}
	}
	return placed, nil
}

// NewTileColliders 为碰撞瓦片创建静态碰撞体并加入空间
func NewTileColliders(space *resolv.Space, m *tilemap.Map, tiles []PlacedTile) []*resolv.Object {
	var colliders []*resolv.Object
	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	for _, t := range tiles {
		if !t.Collides {
			continue
		}
		obj := resolv.NewObject(float64(t.TileX)*tw, float64(t.TileY)*th, tw, th, components.TagSolid)
		colliders = append(colliders, obj)
	}
	if space != nil && len(colliders) > 0 {
		space.Add(colliders...)
	}
	return colliders
}

// tileGeoM 按 Tiled 翻转标志生成变换，结果仍落在 [0,w]x[0,h] 内
func tileGeoM(flags uint32, w, h float64) ebiten.GeoM {
	var g ebiten.GeoM
	if flags&tilemap.FlippedDiagonallyFlag != 0 {
		// 沿主对角线翻转（交换 x/y）
		g.SetElement(0, 0, 0)
		g.SetElement(0, 1, 1)
		g.SetElement(1, 0, 1)
		g.SetElement(1, 1, 0)
		w, h = h, w
	}
	if flags&tilemap.FlippedHorizontallyFlag != 0 {
		g.Scale(-1, 1)
		g.Translate(w, 0)
	}
	if flags&tilemap.FlippedVerticallyFlag != 0 {
		g.Scale(1, -1)
		g.Translate(0, h)
	}
	return g
}

// RenderLayerImage 将瓦片绘制到一张覆盖整张地图的图像上
func RenderLayerImage(m *tilemap.Map, tiles []PlacedTile, tilesets map[string]*BoundTileset) *ebiten.Image {
	images := make(map[*tilemap.Tileset]*ebiten.Image, len(tilesets))
	for _, bt := range tilesets {
		images[bt.Tileset] = bt.Image
	}

	img := ebiten.NewImage(m.PixelWidth(), m.PixelHeight())
	for _, t := range tiles {
		src := images[t.Tileset]
		if src == nil {
			continue
		}
		r := t.Tileset.TileRect(t.LocalID).Add(src.Bounds().Min)
		sub := src.SubImage(r).(*ebiten.Image)

		op := &ebiten.DrawImageOptions{}
		op.GeoM = tileGeoM(t.Flags, float64(r.Dx()), float64(r.Dy()))
		// 大图块以瓦片底边对齐（Tiled 的约定）
		op.GeoM.Translate(float64(t.TileX*m.TileWidth), float64((t.TileY+1)*m.TileHeight-r.Dy()))
		img.DrawImage(sub, op)
	}
	return img
}

// NewTileLayerEntity 创建一个瓦片图层实体
//
// 按图层配置过滤图块集、预渲染图层图像，并把碰撞瓦片转换为空间中的静态碰撞体。
//
// 参数:
//   - em: 实体管理器
//   - space: 碰撞空间，为 nil 时不生成碰撞体
//   - m: 地图
//   - layerCfg: 图层配置
//   - tilesets: BindTilesets 的结果
func NewTileLayerEntity(em *ecs.EntityManager, space *resolv.Space, m *tilemap.Map, layerCfg config.LayerConfig, tilesets map[string]*BoundTileset) (ecs.EntityID, error) {
	tiles, err := ResolveLayerTiles(m, layerCfg, tilesets)
	if err != nil {
		return 0, err
	}

	var colliders []*resolv.Object
	if space != nil {
		colliders = NewTileColliders(space, m, tiles)
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.TileLayerComponent{
		Name:      layerCfg.Name,
		Image:     RenderLayerImage(m, tiles, tilesets),
		Depth:     layerCfg.Depth,
		TileCount: len(tiles),
		Colliders: colliders,
	})

	log.Printf("[TileLayer] %s: %d tiles, %d colliders, depth %.0f", layerCfg.Name, len(tiles), len(colliders), layerCfg.Depth)
	return entityID, nil
}
