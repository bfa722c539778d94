package entities

import (
	"github.com/decker502/farmtown/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// ResourceLoader 实体工厂需要的资源加载能力
// 运行时由 game.ResourceManager 实现，测试中使用 mock 避免文件 I/O
type ResourceLoader interface {
	LoadImage(path string) (*ebiten.Image, error)
	LoadAnimationSet(path string) (*config.AnimationSetConfig, error)
}
