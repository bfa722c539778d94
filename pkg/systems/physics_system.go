package systems

import (
	"github.com/decker502/farmtown/pkg/components"
	"github.com/decker502/farmtown/pkg/ecs"
	"github.com/decker502/farmtown/pkg/utils"
	"github.com/solarlune/resolv"
)

// contactEpsilon 判断"已经重叠"的容差（像素）
const contactEpsilon = 1e-6

// PhysicsSystem 处理移动与地形碰撞
//
// 对拥有 Position/Velocity/Body 的实体，按 X、Y 两个轴分别积分速度，
// 遇到标记为 solid 的静态碰撞体时停在其边缘（只阻挡被挡住的轴）。
// CollideWorldBounds 为 true 的碰撞体被限制在世界边界内。
type PhysicsSystem struct {
	em    *ecs.EntityManager
	space *resolv.Space

	worldWidth  float64
	worldHeight float64
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器
//   - space: 碰撞空间（包含地形碰撞体）
//   - worldWidth/worldHeight: 世界边界（像素）
func NewPhysicsSystem(em *ecs.EntityManager, space *resolv.Space, worldWidth, worldHeight float64) *PhysicsSystem {
	return &PhysicsSystem{
		em:          em,
		space:       space,
		worldWidth:  worldWidth,
		worldHeight: worldHeight,
	}
}

// Space 返回碰撞空间
func (ps *PhysicsSystem) Space() *resolv.Space {
	return ps.space
}

// Update 积分速度并解决碰撞
func (ps *PhysicsSystem) Update(deltaTime float64) {
	bodies := ecs.GetEntitiesWith3[*components.PositionComponent, *components.VelocityComponent, *components.BodyComponent](ps.em)

	for _, id := range bodies {
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)
		body, _ := ecs.GetComponent[*components.BodyComponent](ps.em, id)
		ps.move(pos, vel, body, deltaTime)
	}
}

func (ps *PhysicsSystem) move(pos *components.PositionComponent, vel *components.VelocityComponent, body *components.BodyComponent, dt float64) {
	obj := body.Object
	if obj == nil {
		pos.X += vel.VX * dt
		pos.Y += vel.VY * dt
		return
	}

	// 同步碰撞体到实体位置（位置可能被外部修改，如读档）
	obj.X = pos.X + body.OffsetX
	obj.Y = pos.Y + body.OffsetY

	dx, blockedX := sweepX(obj, vel.VX*dt)
	obj.X += dx
	dy, blockedY := sweepY(obj, vel.VY*dt)
	obj.Y += dy

	if body.CollideWorldBounds {
		if x := utils.Clamp(obj.X, 0, ps.worldWidth-obj.W); x != obj.X {
			obj.X = x
			blockedX = true
		}
		if y := utils.Clamp(obj.Y, 0, ps.worldHeight-obj.H); y != obj.Y {
			obj.Y = y
			blockedY = true
		}
	}

	if obj.Space != nil {
		obj.Update()
	}

	body.BlockedX = blockedX
	body.BlockedY = blockedY
	pos.X = obj.X - body.OffsetX
	pos.Y = obj.Y - body.OffsetY
}

// sweepX 计算沿 X 轴移动 dx 时不穿过 solid 碰撞体的最大距离
func sweepX(obj *resolv.Object, dx float64) (float64, bool) {
	if dx == 0 || obj.Space == nil {
		return dx, false
	}
	c := obj.Check(dx, 0, components.TagSolid)
	if c == nil {
		return dx, false
	}

	blocked := false
	for _, o := range c.Objects {
		// 只有在 Y 方向上重叠的碰撞体才会阻挡水平移动
		if o.Y >= obj.Y+obj.H || o.Y+o.H <= obj.Y {
			continue
		}
		if dx > 0 {
			gap := o.X - (obj.X + obj.W)
			if gap < -contactEpsilon {
				continue // 已经重叠或在身后
			}
			if gap < dx {
				dx = max(gap, 0)
				blocked = true
			}
		} else {
			gap := (o.X + o.W) - obj.X
			if gap > contactEpsilon {
				continue
			}
			if gap > dx {
				dx = min(gap, 0)
				blocked = true
			}
		}
	}
	return dx, blocked
}

// sweepY 计算沿 Y 轴移动 dy 时不穿过 solid 碰撞体的最大距离
func sweepY(obj *resolv.Object, dy float64) (float64, bool) {
	if dy == 0 || obj.Space == nil {
		return dy, false
	}
	c := obj.Check(0, dy, components.TagSolid)
	if c == nil {
		return dy, false
	}

	blocked := false
	for _, o := range c.Objects {
		if o.X >= obj.X+obj.W || o.X+o.W <= obj.X {
			continue
		}
		if dy > 0 {
			gap := o.Y - (obj.Y + obj.H)
			if gap < -contactEpsilon {
				continue
			}
			if gap < dy {
				dy = max(gap, 0)
				blocked = true
			}
		} else {
			gap := (o.Y + o.H) - obj.Y
			if gap > contactEpsilon {
				continue
			}
			if gap > dy {
				dy = min(gap, 0)
				blocked = true
			}
		}
	}
	return dy, blocked
}
