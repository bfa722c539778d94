package components

// VelocityComponent 实体的速度（像素/秒）
// 由控制系统写入，物理系统读取并积分到位置
type VelocityComponent struct {
	VX float64
	VY float64
}
