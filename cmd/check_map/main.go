// check_map 检查地图与场景配置是否匹配，不打开窗口
//
// 用法（在项目根目录运行）:
//
//	go run ./cmd/check_map
//	go run ./cmd/check_map -scene data/scenes/game.yaml -images
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/decker502/farmtown/pkg/config"
	"github.com/decker502/farmtown/pkg/embedded"
	"github.com/decker502/farmtown/pkg/entities"
	"github.com/decker502/farmtown/pkg/game"
)

var (
	root      = flag.String("root", ".", "项目根目录（包含 assets/ 和 data/）")
	sceneFile = flag.String("scene", config.DefaultSceneConfigPath, "场景配置文件")
	images    = flag.Bool("images", false, "同时解码所有图块集图片")
)

func main() {
	flag.Parse()

	fsys := os.DirFS(*root)
	embedded.Init(fsys, fsys)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadSceneConfig(*sceneFile)
	if err != nil {
		return err
	}

	rm := game.NewResourceManager()
	m, err := rm.LoadTilemap(cfg.Map.Path)
	if err != nil {
		return err
	}
	fmt.Printf("Map %s: %dx%d tiles (%dx%d px), %d tilesets\n",
		cfg.Map.Path, m.Width, m.Height, m.PixelWidth(), m.PixelHeight(), len(m.Tilesets))

	var loader entities.ResourceLoader
	if *images {
		paths := make([]string, 0, len(cfg.Tilesets))
		for _, ts := range cfg.Tilesets {
			paths = append(paths, ts.Image)
		}
		if err := rm.LoadImages(paths); err != nil {
			return err
		}
		fmt.Printf("Decoded %d tileset images\n", len(paths))
		loader = rm
	}

	tilesets, err := entities.BindTilesets(m, cfg.Tilesets, loader)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LAYER\tDEPTH\tTILES\tCOLLIDERS\tTILESETS")
	totalTiles, totalColliders := 0, 0
	for _, layerCfg := range cfg.Layers {
		tiles, err := entities.ResolveLayerTiles(m, layerCfg, tilesets)
		if err != nil {
			return err
		}
		colliders := 0
		for _, tile := range tiles {
			if tile.Collides {
				colliders++
			}
		}
		totalTiles += len(tiles)
		totalColliders += colliders
		fmt.Fprintf(w, "%s\t%.0f\t%d\t%d\t%v\n", layerCfg.Name, layerCfg.Depth, len(tiles), colliders, layerCfg.Tilesets)
	}
	fmt.Fprintf(w, "total\t\t%d\t%d\t\n", totalTiles, totalColliders)
	return w.Flush()
}
