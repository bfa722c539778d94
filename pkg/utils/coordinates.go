// Package utils 提供游戏开发中常用的工具函数
//
// coordinates.go 提供坐标转换工具。
//
// # 坐标系统概述
//
//   - **世界坐标**：相对于地图左上角（固定）
//   - **屏幕坐标**：相对于游戏窗口左上角（随摄像机移动）
//   - **瓦片坐标**：世界坐标除以瓦片尺寸后向下取整
//
// 转换公式：
//
//	screenX = worldX - scrollX
//	screenY = worldY - scrollY
package utils

import "math"

// WorldToScreen 世界坐标 → 屏幕坐标
func WorldToScreen(worldX, worldY, scrollX, scrollY float64) (float64, float64) {
	return worldX - scrollX, worldY - scrollY
}

// ScreenToWorld 屏幕坐标 → 世界坐标
func ScreenToWorld(screenX, screenY, scrollX, scrollY float64) (float64, float64) {
	return screenX + scrollX, screenY + scrollY
}

// WorldToTile 世界坐标 → 瓦片坐标
func WorldToTile(worldX, worldY float64, tileWidth, tileHeight int) (int, int) {
	if tileWidth <= 0 || tileHeight <= 0 {
		return 0, 0
	}
	return int(math.Floor(worldX / float64(tileWidth))), int(math.Floor(worldY / float64(tileHeight)))
}

// ClampScroll 将视口起点限制在边界内
//
// 边界比视口小时，视口在该轴上居中于边界。
func ClampScroll(scroll, view, boundsStart, boundsSize float64) float64 {
	if boundsSize <= view {
		return boundsStart + (boundsSize-view)/2
	}
	if scroll < boundsStart {
		return boundsStart
	}
	if maxScroll := boundsStart + boundsSize - view; scroll > maxScroll {
		return maxScroll
	}
	return scroll
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
