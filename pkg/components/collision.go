package components

import "github.com/solarlune/resolv"

// 碰撞标签
const (
	// TagSolid 静态地形碰撞体（由瓦片图层生成）
	TagSolid = "solid"
	// TagPlayer 玩家碰撞体
	TagPlayer = "player"
)

// BodyComponent 实体在碰撞空间中的矩形碰撞体
//
// Width/Height/OffsetX/OffsetY 都是世界像素（已乘以缩放），
// 偏移量相对于实体位置（精灵中心）。
// 碰撞体左上角 = (Position.X + OffsetX, Position.Y + OffsetY)
type BodyComponent struct {
	Object *resolv.Object

	Width   float64 // 碰撞盒宽度（像素）
	Height  float64 // 碰撞盒高度（像素）
	OffsetX float64 // 碰撞盒左上角相对实体位置的X偏移（像素）
	OffsetY float64 // 碰撞盒左上角相对实体位置的Y偏移（像素）

	// CollideWorldBounds 是否限制在世界边界内
	CollideWorldBounds bool

	// BlockedX/BlockedY 本帧在对应轴上被阻挡
	BlockedX bool
	BlockedY bool
}
