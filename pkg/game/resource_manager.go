package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // PNG decoder
	"log"
	"runtime"

	"github.com/decker502/farmtown/internal/tilemap"
	"github.com/decker502/farmtown/pkg/config"
	"github.com/decker502/farmtown/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/errgroup"
)

// ResourceManager manages loading and caching of game resources.
//
// All paths are resolved through the embedded package, so they must start
// with "assets/" or "data/". Every loader caches by path; a second call with
// the same path returns the cached value.
//
// The cache maps are only touched from the game goroutine. LoadImages decodes
// PNGs on worker goroutines but converts and caches on the caller.
//
// Usage:
//
//	rm := NewResourceManager()
//	img, err := rm.LoadImage("assets/tilesets/water.png")
//	if err != nil {
//	    log.Printf("Failed to load image: %v", err)
//	}
type ResourceManager struct {
	imageCache     map[string]*ebiten.Image              // path -> Image
	fontFaceCache  map[float64]*text.GoTextFace          // size -> Go regular face
	tilemapCache   map[string]*tilemap.Map               // path -> parsed map
	animationCache map[string]*config.AnimationSetConfig // path -> animation set

	fontSource *text.GoTextFaceSource
}

// NewResourceManager creates and initializes a new ResourceManager instance.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		imageCache:     make(map[string]*ebiten.Image),
		fontFaceCache:  make(map[float64]*text.GoTextFace),
		tilemapCache:   make(map[string]*tilemap.Map),
		animationCache: make(map[string]*config.AnimationSetConfig),
	}
}

// decodeImage 从嵌入资源读取并解码图片
func decodeImage(path string) (image.Image, error) {
	file, err := embedded.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// LoadImage loads an image and caches it for future use.
// If the image has already been loaded, it returns the cached version.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	img, err := decodeImage(path)
	if err != nil {
		return nil, err
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// LoadImages loads many images at once.
//
// PNG decoding runs in parallel (bounded by the CPU count). The first error
// cancels the batch and nothing from it is cached. Already cached paths and
// duplicates are skipped.
func (rm *ResourceManager) LoadImages(paths []string) error {
	pending := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if _, cached := rm.imageCache[p]; cached || seen[p] {
			continue
		}
		seen[p] = true
		pending = append(pending, p)
	}
	if len(pending) == 0 {
		return nil
	}

	decoded := make([]image.Image, len(pending))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, p := range pending {
		g.Go(func() error {
			img, err := decodeImage(p)
			if err != nil {
				return err
			}
			decoded[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, p := range pending {
		rm.imageCache[p] = ebiten.NewImageFromImage(decoded[i])
	}
	log.Printf("[ResourceManager] Loaded %d images", len(pending))
	return nil
}

// GetImage retrieves a previously loaded image from the cache.
// Returns nil if the image has not been loaded yet.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// LoadTilemap 加载并缓存 Tiled JSON 地图
func (rm *ResourceManager) LoadTilemap(path string) (*tilemap.Map, error) {
	if m, ok := rm.tilemapCache[path]; ok {
		return m, nil
	}

	fsys, name, err := embedded.FSFor(path)
	if err != nil {
		return nil, err
	}
	m, err := tilemap.ParseMapFile(fsys, name)
	if err != nil {
		return nil, err
	}

	rm.tilemapCache[path] = m
	log.Printf("[ResourceManager] Loaded tilemap %s (%dx%d tiles, %d layers, %d tilesets)",
		path, m.Width, m.Height, len(m.Layers), len(m.Tilesets))
	return m, nil
}

// LoadAnimationSet 加载并缓存精灵表动画配置
func (rm *ResourceManager) LoadAnimationSet(path string) (*config.AnimationSetConfig, error) {
	if cfg, ok := rm.animationCache[path]; ok {
		return cfg, nil
	}
	cfg, err := config.LoadAnimationSetConfig(path)
	if err != nil {
		return nil, err
	}
	rm.animationCache[path] = cfg
	return cfg, nil
}

// LoadDefaultFont 返回指定字号的 Go regular 字体
func (rm *ResourceManager) LoadDefaultFont(size float64) (*text.GoTextFace, error) {
	if face, ok := rm.fontFaceCache[size]; ok {
		return face, nil
	}

	if rm.fontSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to create default font source: %w", err)
		}
		rm.fontSource = source
	}

	face := &text.GoTextFace{
		Source:    rm.fontSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[size] = face
	return face, nil
}
