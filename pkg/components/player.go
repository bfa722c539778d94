package components

import "github.com/hajimehoshi/ebiten/v2"

// 朝向
const (
	FacingUp    = "up"
	FacingDown  = "down"
	FacingLeft  = "left"
	FacingRight = "right"
)

// KeyBindings 四个移动键
type KeyBindings struct {
	Up    ebiten.Key
	Down  ebiten.Key
	Left  ebiten.Key
	Right ebiten.Key
}

// PlayerComponent 玩家控制状态
type PlayerComponent struct {
	Keys KeyBindings

	// Facing 最近一次行走的方向，初始为 "down"
	Facing string

	// Speed 移动速度（像素/秒）
	Speed float64
}
