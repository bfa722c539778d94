package components

import "github.com/decker502/farmtown/pkg/ecs"

// CameraComponent 跟随镜头
//
// ScrollX/ScrollY 是视口左上角的世界坐标。
// 视口被限制在 Bounds 矩形内；地图小于视口时视口在该轴上居中于边界。
type CameraComponent struct {
	ScrollX float64
	ScrollY float64

	// ViewWidth/ViewHeight 视口尺寸（逻辑屏幕像素）
	ViewWidth  float64
	ViewHeight float64

	// Bounds 世界边界
	BoundsX      float64
	BoundsY      float64
	BoundsWidth  float64
	BoundsHeight float64

	// Target 跟随目标实体，仅当 Following 为 true 时有效
	Target    ecs.EntityID
	Following bool

	// LerpX/LerpY 每帧向目标移动的比例 (0, 1]，1 表示紧跟
	LerpX float64
	LerpY float64
}
