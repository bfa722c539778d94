package components

// ScaleComponent 存储实体级别的缩放因子
// 渲染时作用于精灵图像，碰撞盒尺寸在创建时已按同一缩放换算
type ScaleComponent struct {
	// ScaleX X轴缩放因子（1.0 = 原始大小，3.0 = 300%）
	ScaleX float64

	// ScaleY Y轴缩放因子
	ScaleY float64
}
