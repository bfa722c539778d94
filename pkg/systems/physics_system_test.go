package systems

import (
	"math"
	"testing"

	"github.com/decker502/farmtown/pkg/components"
	"github.com/decker502/farmtown/pkg/ecs"
	"github.com/solarlune/resolv"
)

// newPhysicsWorld 创建 160x160 的碰撞空间，并放置给定的 solid 方块
func newPhysicsWorld(solids ...[4]float64) (*ecs.EntityManager, *resolv.Space, *PhysicsSystem) {
	em := ecs.NewEntityManager()
	space := resolv.NewSpace(160, 160, 16, 16)
	for _, s := range solids {
		space.Add(resolv.NewObject(s[0], s[1], s[2], s[3], components.TagSolid))
	}
	return em, space, NewPhysicsSystem(em, space, 160, 160)
}

// newTestBody 创建 10x10 碰撞体的移动实体，碰撞体左上角偏移 (-5, -5)
func newTestBody(em *ecs.EntityManager, space *resolv.Space, x, y, vx, vy float64) ecs.EntityID {
	obj := resolv.NewObject(x-5, y-5, 10, 10, components.TagPlayer)
	space.Add(obj)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: vx, VY: vy})
	ecs.AddComponent(em, id, &components.BodyComponent{
		Object: obj, Width: 10, Height: 10, OffsetX: -5, OffsetY: -5,
		CollideWorldBounds: true,
	})
	return id
}

func bodyState(em *ecs.EntityManager, id ecs.EntityID) (*components.PositionComponent, *components.BodyComponent) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	body, _ := ecs.GetComponent[*components.BodyComponent](em, id)
	return pos, body
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// TestPhysics_FreeMovement 无阻挡时按速度积分
func TestPhysics_FreeMovement(t *testing.T) {
	em, space, ps := newPhysicsWorld()
	id := newTestBody(em, space, 50, 50, 100, 0)

	ps.Update(0.1)

	pos, body := bodyState(em, id)
	if !near(pos.X, 60) || !near(pos.Y, 50) {
		t.Errorf("position = (%v, %v), want (60, 50)", pos.X, pos.Y)
	}
	if body.BlockedX || body.BlockedY {
		t.Error("free movement should not be blocked")
	}
	if !near(body.Object.X, 55) {
		t.Errorf("body X = %v, want 55", body.Object.X)
	}
}

// TestPhysics_StopAtSolid 撞到 solid 方块时停在其边缘
func TestPhysics_StopAtSolid(t *testing.T) {
	// 实体位于 (48..64, 48..64) 的空格内，碰撞体为 (50..60, 50..60)
	// 四周各有一个 16x16 的 solid 方块
	tests := []struct {
		name         string
		vx, vy       float64
		wantX, wantY float64
		blockedX     bool
		blockedY     bool
	}{
		{"向右撞墙", 100, 0, 59, 55, true, false},
		{"向左撞墙", -100, 0, 53, 55, true, false},
		{"向下撞地板", 0, 100, 55, 59, false, true},
		{"向上撞天花板", 0, -100, 55, 53, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em, space, ps := newPhysicsWorld(
				[4]float64{64, 48, 16, 16}, // 右墙
				[4]float64{32, 48, 16, 16}, // 左墙
				[4]float64{48, 64, 16, 16}, // 地板
				[4]float64{48, 32, 16, 16}, // 天花板
			)
			id := newTestBody(em, space, 55, 55, tt.vx, tt.vy)

			ps.Update(0.1)

			pos, body := bodyState(em, id)
			if !near(pos.X, tt.wantX) || !near(pos.Y, tt.wantY) {
				t.Errorf("position = (%v, %v), want (%v, %v)", pos.X, pos.Y, tt.wantX, tt.wantY)
			}
			if body.BlockedX != tt.blockedX || body.BlockedY != tt.blockedY {
				t.Errorf("blocked = (%v, %v), want (%v, %v)", body.BlockedX, body.BlockedY, tt.blockedX, tt.blockedY)
			}
		})
	}
}

// TestPhysics_SlideAlongWall 斜向移动时只阻挡被挡住的轴
func TestPhysics_SlideAlongWall(t *testing.T) {
	em, space, ps := newPhysicsWorld([4]float64{64, 0, 16, 160})
	id := newTestBody(em, space, 55, 50, 100, 50)

	ps.Update(0.1)

	pos, body := bodyState(em, id)
	if !near(pos.X, 59) {
		t.Errorf("X = %v, want 59 (stopped at wall)", pos.X)
	}
	if !near(pos.Y, 55) {
		t.Errorf("Y = %v, want 55 (free to slide)", pos.Y)
	}
	if !body.BlockedX || body.BlockedY {
		t.Errorf("blocked = (%v, %v), want (true, false)", body.BlockedX, body.BlockedY)
	}
}

// TestPhysics_IgnoreOtherRows 不在同一行的方块不阻挡水平移动
func TestPhysics_IgnoreOtherRows(t *testing.T) {
	em, space, ps := newPhysicsWorld([4]float64{64, 96, 16, 16})
	id := newTestBody(em, space, 55, 50, 100, 0)

	ps.Update(0.1)

	pos, body := bodyState(em, id)
	if !near(pos.X, 65) || body.BlockedX {
		t.Errorf("X = %v blocked %v, want 65 unblocked", pos.X, body.BlockedX)
	}
}

// TestPhysics_WorldBounds 碰撞体被限制在世界边界内
func TestPhysics_WorldBounds(t *testing.T) {
	em, space, ps := newPhysicsWorld()
	id := newTestBody(em, space, 7, 155, -100, 100)

	ps.Update(0.1)

	pos, body := bodyState(em, id)
	if !near(pos.X, 5) || !near(pos.Y, 155) {
		t.Errorf("position = (%v, %v), want (5, 155)", pos.X, pos.Y)
	}
	if !body.BlockedX || !body.BlockedY {
		t.Error("both axes should be blocked by world bounds")
	}
}

// TestPhysics_NoBodyObject 没有碰撞体对象时直接积分
func TestPhysics_NoBodyObject(t *testing.T) {
	em, _, ps := newPhysicsWorld()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: 1, Y: 1})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: 10, VY: -10})
	ecs.AddComponent(em, id, &components.BodyComponent{})

	ps.Update(0.5)

	pos, _ := bodyState(em, id)
	if !near(pos.X, 6) || !near(pos.Y, -4) {
		t.Errorf("position = (%v, %v), want (6, -4)", pos.X, pos.Y)
	}
}
