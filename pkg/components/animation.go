package components

import "github.com/hajimehoshi/ebiten/v2"

// AnimationClip 一段命名的帧动画
type AnimationClip struct {
	Key        string
	Frames     []*ebiten.Image // 动画的所有帧图片
	FrameSpeed float64         // 每帧之间的延迟时间(秒)
	Repeat     int             // -1 无限循环，0 播放一次，n 额外重复 n 次
}

// AnimationComponent 管理基于 spritesheet 的命名帧动画
// Clips 为该实体可播放的所有动画，CurrentKey 为正在播放的动画名
type AnimationComponent struct {
	Clips map[string]*AnimationClip

	CurrentKey   string  // 当前动画名，空字符串表示未播放任何动画
	CurrentFrame int     // 当前显示的帧索引(0-based)
	FrameCounter float64 // 当前帧计时器(秒)
	RepeatCount  int     // 已完成的重复次数
	IsPlaying    bool    // 是否正在播放
	IsFinished   bool    // 动画是否已完成(仅对非循环动画有效)
}
