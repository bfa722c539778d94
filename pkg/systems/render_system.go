package systems

import (
	"image/color"
	"sort"

	"github.com/decker502/farmtown/pkg/components"
	"github.com/decker502/farmtown/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RenderSystem 按深度绘制场景中的瓦片图层和精灵
//
// 绘制顺序：
//   - Depth 小的先绘制（地图图层 -1 在玩家 0 之下）
//   - 同深度按实体ID（即创建顺序）绘制，瓦片图层按配置顺序叠加
//
// 所有坐标都是世界坐标，绘制时减去镜头滚动量。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	camera        *CameraSystem

	// ShowHitboxes 为 true 时绘制碰撞盒轮廓（调试用）
	ShowHitboxes bool
}

// drawable 一次绘制调用
type drawable struct {
	id    ecs.EntityID
	depth float64
	layer *components.TileLayerComponent
}

var (
	hitboxSolidColor  = color.RGBA{R: 255, G: 64, B: 64, A: 200}
	hitboxPlayerColor = color.RGBA{R: 64, G: 255, B: 64, A: 220}
)

// NewRenderSystem 创建一个新的渲染系统
// camera 为 nil 时不滚动
func NewRenderSystem(em *ecs.EntityManager, camera *CameraSystem) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		camera:        camera,
	}
}

// drawOrder 收集可绘制对象并按深度排序
func (s *RenderSystem) drawOrder() []drawable {
	var items []drawable

	for _, id := range ecs.GetEntitiesWith1[*components.TileLayerComponent](s.entityManager) {
		layer, _ := ecs.GetComponent[*components.TileLayerComponent](s.entityManager, id)
		if layer.Image == nil {
			continue
		}
		items = append(items, drawable{id: id, depth: layer.Depth, layer: layer})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.SpriteComponent](s.entityManager) {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if sprite.Image == nil || sprite.Hidden {
			continue
		}
		items = append(items, drawable{id: id, depth: sprite.Depth})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].depth != items[j].depth {
			return items[i].depth < items[j].depth
		}
		return items[i].id < items[j].id
	})

	return items
}

// Draw 绘制所有图层和精灵
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	var scrollX, scrollY float64
	if s.camera != nil {
		scrollX, scrollY = s.camera.Scroll()
	}

	for _, item := range s.drawOrder() {
		if item.layer != nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(-scrollX, -scrollY)
			screen.DrawImage(item.layer.Image, op)
			continue
		}
		s.drawSprite(screen, item.id, scrollX, scrollY)
	}

	if s.ShowHitboxes {
		s.drawHitboxes(screen, scrollX, scrollY)
	}
}

// spriteGeoM 计算精灵的变换：按锚点平移 → 缩放 → 移到屏幕位置
func spriteGeoM(sprite *components.SpriteComponent, pos *components.PositionComponent, scale *components.ScaleComponent, scrollX, scrollY float64) ebiten.GeoM {
	bounds := sprite.Image.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())

	var geo ebiten.GeoM
	geo.Translate(-w*sprite.OriginX, -h*sprite.OriginY)
	if scale != nil {
		geo.Scale(scale.ScaleX, scale.ScaleY)
	}
	geo.Translate(pos.X-scrollX, pos.Y-scrollY)
	return geo
}

func (s *RenderSystem) drawSprite(screen *ebiten.Image, id ecs.EntityID, scrollX, scrollY float64) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
	scale, _ := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id)

	op := &ebiten.DrawImageOptions{}
	op.GeoM = spriteGeoM(sprite, pos, scale, scrollX, scrollY)
	// 像素风格，缩放时不做插值
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(sprite.Image, op)
}

// drawHitboxes 绘制所有碰撞体轮廓
func (s *RenderSystem) drawHitboxes(screen *ebiten.Image, scrollX, scrollY float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.TileLayerComponent](s.entityManager) {
		layer, _ := ecs.GetComponent[*components.TileLayerComponent](s.entityManager, id)
		for _, obj := range layer.Colliders {
			vector.StrokeRect(screen,
				float32(obj.X-scrollX), float32(obj.Y-scrollY),
				float32(obj.W), float32(obj.H),
				1, hitboxSolidColor, false)
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.BodyComponent](s.entityManager) {
		body, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
		if body.Object == nil {
			continue
		}
		vector.StrokeRect(screen,
			float32(body.Object.X-scrollX), float32(body.Object.Y-scrollY),
			float32(body.Width), float32(body.Height),
			1, hitboxPlayerColor, false)
	}
}
