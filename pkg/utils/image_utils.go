package utils

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// FrameRect 返回精灵表中第 index 帧的区域（行优先，左上角为 0）
func FrameRect(index, columns, frameWidth, frameHeight int) image.Rectangle {
	col := index % columns
	row := index / columns
	x := col * frameWidth
	y := row * frameHeight
	return image.Rect(x, y, x+frameWidth, y+frameHeight)
}

// SheetFrameCount 计算精灵表可容纳的帧数
func SheetFrameCount(sheetWidth, sheetHeight, frameWidth, frameHeight int) (columns, total int) {
	if frameWidth <= 0 || frameHeight <= 0 {
		return 0, 0
	}
	columns = sheetWidth / frameWidth
	rows := sheetHeight / frameHeight
	return columns, columns * rows
}

// SliceFrames 按帧尺寸切分精灵表
//
// 返回的帧是原图的子图像（SubImage），不复制像素。
func SliceFrames(sheet *ebiten.Image, frameWidth, frameHeight int) ([]*ebiten.Image, error) {
	if sheet == nil {
		return nil, fmt.Errorf("sprite sheet is nil")
	}
	b := sheet.Bounds()
	columns, total := SheetFrameCount(b.Dx(), b.Dy(), frameWidth, frameHeight)
	if total == 0 {
		return nil, fmt.Errorf("sprite sheet %dx%d is smaller than frame %dx%d", b.Dx(), b.Dy(), frameWidth, frameHeight)
	}

	frames := make([]*ebiten.Image, total)
	for i := range frames {
		r := FrameRect(i, columns, frameWidth, frameHeight).Add(b.Min)
		frames[i] = sheet.SubImage(r).(*ebiten.Image)
	}
	return frames, nil
}
