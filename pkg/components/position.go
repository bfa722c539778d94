package components

// PositionComponent 实体在世界坐标系中的位置
// 对于精灵实体，位置是精灵中心点（原点 0.5, 0.5）
type PositionComponent struct {
	X float64
	Y float64
}
