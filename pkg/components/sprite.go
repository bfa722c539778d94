package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储实体的视觉表现(当前绘制的图像)
type SpriteComponent struct {
	Image *ebiten.Image

	// OriginX/OriginY 图像锚点（0~1），0.5 表示以中心对齐 PositionComponent
	OriginX float64
	OriginY float64

	// Depth 绘制深度，值越小越先绘制；同深度按实体创建顺序
	Depth float64

	// Hidden 为 true 时不绘制
	Hidden bool
}
