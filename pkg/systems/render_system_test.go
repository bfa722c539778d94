package systems

import (
	"testing"

	"github.com/decker502/farmtown/pkg/components"
	"github.com/decker502/farmtown/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/solarlune/resolv"
)

func addTestLayer(em *ecs.EntityManager, name string, depth float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TileLayerComponent{
		Name:  name,
		Image: ebiten.NewImage(32, 32),
		Depth: depth,
	})
	return id
}

func addTestSprite(em *ecs.EntityManager, depth float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: 10, Y: 10})
	ecs.AddComponent(em, id, &components.SpriteComponent{
		Image:   ebiten.NewImage(16, 16),
		OriginX: 0.5,
		OriginY: 0.5,
		Depth:   depth,
	})
	return id
}

// TestRenderSystem_DrawOrder 图层在玩家之下，同深度按创建顺序
func TestRenderSystem_DrawOrder(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := NewRenderSystem(em, nil)

	player := addTestSprite(em, 0)
	water := addTestLayer(em, "water", -1)
	base := addTestLayer(em, "base", -1)
	roof := addTestLayer(em, "roof", -1)
	overlay := addTestSprite(em, 5)

	got := rs.drawOrder()
	want := []ecs.EntityID{water, base, roof, player, overlay}
	if len(got) != len(want) {
		t.Fatalf("drawOrder() returned %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].id != want[i] {
			t.Errorf("drawOrder()[%d] = %d, want %d", i, got[i].id, want[i])
		}
	}
	if got[0].layer == nil || got[0].layer.Name != "water" {
		t.Error("first item should be the water layer")
	}
	if got[3].layer != nil {
		t.Error("player should be drawn as a sprite")
	}
}

// TestRenderSystem_SkipsHiddenAndEmpty 隐藏或无图像的对象不参与绘制
func TestRenderSystem_SkipsHiddenAndEmpty(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := NewRenderSystem(em, nil)

	hidden := addTestSprite(em, 0)
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, hidden)
	sprite.Hidden = true

	noImage := em.CreateEntity()
	ecs.AddComponent(em, noImage, &components.PositionComponent{})
	ecs.AddComponent(em, noImage, &components.SpriteComponent{})

	emptyLayer := em.CreateEntity()
	ecs.AddComponent(em, emptyLayer, &components.TileLayerComponent{Name: "empty"})

	// 没有位置组件的精灵
	orphan := em.CreateEntity()
	ecs.AddComponent(em, orphan, &components.SpriteComponent{Image: ebiten.NewImage(1, 1)})

	if got := rs.drawOrder(); len(got) != 0 {
		t.Errorf("drawOrder() = %v, want empty", got)
	}
}

// TestSpriteGeoM 锚点、缩放与镜头滚动
func TestSpriteGeoM(t *testing.T) {
	sprite := &components.SpriteComponent{Image: ebiten.NewImage(16, 16), OriginX: 0.5, OriginY: 0.5}
	pos := &components.PositionComponent{X: 467.5, Y: 405}
	scale := &components.ScaleComponent{ScaleX: 3, ScaleY: 3}

	tests := []struct {
		name             string
		scale            *components.ScaleComponent
		scrollX, scrollY float64
		wantX, wantY     float64 // 图像左上角的屏幕坐标
	}{
		{"无缩放", nil, 0, 0, 459.5, 397},
		{"缩放3倍", scale, 0, 0, 443.5, 381},
		{"缩放并滚动", scale, 67.5, 105, 376, 276},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geo := spriteGeoM(sprite, pos, tt.scale, tt.scrollX, tt.scrollY)
			x, y := geo.Apply(0, 0)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("top-left = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

// TestRenderSystem_Draw 完整绘制（含碰撞盒）不应崩溃
func TestRenderSystem_Draw(t *testing.T) {
	em := ecs.NewEntityManager()
	camera := NewCameraSystem(em, 800, 600)
	rs := NewRenderSystem(em, camera)
	rs.ShowHitboxes = true

	layer := addTestLayer(em, "water", -1)
	lc, _ := ecs.GetComponent[*components.TileLayerComponent](em, layer)
	lc.Colliders = []*resolv.Object{resolv.NewObject(0, 0, 16, 16, components.TagSolid)}

	player := addTestSprite(em, 0)
	ecs.AddComponent(em, player, &components.BodyComponent{
		Object: resolv.NewObject(5, 5, 10, 10, components.TagPlayer),
		Width:  10,
		Height: 10,
	})
	noObject := em.CreateEntity()
	ecs.AddComponent(em, noObject, &components.BodyComponent{})

	screen := ebiten.NewImage(800, 600)
	rs.Draw(screen)
}
