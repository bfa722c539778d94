package game

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/decker502/farmtown/pkg/embedded"
)

// encodeTestPNG 生成一张纯色 PNG
func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	blue := color.RGBA{R: 0, G: 0, B: 255, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, blue)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

// initTestEmbedded 用内存文件系统初始化 embedded 包，测试结束后重置
func initTestEmbedded(t *testing.T, files fstest.MapFS) {
	t.Helper()
	embedded.Init(files, files)
	t.Cleanup(embedded.Reset)
}
