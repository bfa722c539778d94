package tilemap

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"
)

// ParseMap decodes a Tiled JSON map. JSON is a subset of YAML 1.2, so the
// same yaml.v3 decoder used for the rest of the game data reads it.
//
// Parameters:
//   - data: raw file content
//
// Returns:
//   - *Map: the parsed map with every tile layer decoded into Layer.Tiles
//   - error: decode or validation error
func ParseMap(data []byte) (*Map, error) {
	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode tilemap: %w", err)
	}

	if m.Infinite {
		return nil, fmt.Errorf("infinite tilemaps are not supported")
	}
	if m.Orientation != "" && m.Orientation != "orthogonal" {
		return nil, fmt.Errorf("unsupported tilemap orientation %q", m.Orientation)
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile size %dx%d", m.TileWidth, m.TileHeight)
	}

	for _, ts := range m.Tilesets {
		if ts.Source != "" {
			return nil, fmt.Errorf("external tileset %q is not supported, embed it in the map", ts.Source)
		}
		if ts.TileWidth == 0 {
			ts.TileWidth = m.TileWidth
		}
		if ts.TileHeight == 0 {
			ts.TileHeight = m.TileHeight
		}
	}
	sort.SliceStable(m.Tilesets, func(i, j int) bool {
		return m.Tilesets[i].FirstGID < m.Tilesets[j].FirstGID
	})

	for _, layer := range m.Layers {
		if layer.Type != "" && layer.Type != "tilelayer" {
			continue
		}
		tiles, err := decodeLayerData(layer)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", layer.Name, err)
		}
		if want := layer.Width * layer.Height; len(tiles) != want {
			return nil, fmt.Errorf("layer %q: expected %d tiles, got %d", layer.Name, want, len(tiles))
		}
		layer.Tiles = tiles
	}

	return &m, nil
}

// ParseMapFile reads and parses a Tiled JSON map from fsys.
func ParseMapFile(fsys fs.FS, path string) (*Map, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tilemap '%s': %w", path, err)
	}
	m, err := ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tilemap '%s': %w", path, err)
	}
	return m, nil
}

// decodeLayerData turns the "data" field into raw GIDs.
// Supported: JSON arrays (csv), base64 with no/zlib/gzip compression.
func decodeLayerData(layer *Layer) ([]uint32, error) {
	switch layer.Encoding {
	case "", "csv":
		if layer.RawData.Encoded != "" {
			return nil, fmt.Errorf("expected a GID array, got a string")
		}
		return layer.RawData.GIDs, nil
	case "base64":
	default:
		return nil, fmt.Errorf("unsupported encoding %q", layer.Encoding)
	}

	raw, err := base64.StdEncoding.DecodeString(layer.RawData.Encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 data: %w", err)
	}

	var r io.Reader = bytes.NewReader(raw)
	switch layer.Compression {
	case "":
	case "zlib":
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create zlib reader: %w", err)
		}
		defer zr.Close()
		r = zr
	case "gzip":
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gr.Close()
		r = gr
	default:
		return nil, fmt.Errorf("unsupported compression %q", layer.Compression)
	}

	var out bytes.Buffer
	if _, err := io.Copy(&out, r); err != nil {
		return nil, fmt.Errorf("failed to decompress layer data: %w", err)
	}
	buf := out.Bytes()
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("layer data length %d is not a multiple of 4", len(buf))
	}

	tiles := make([]uint32, len(buf)/4)
	for i := range tiles {
		tiles[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return tiles, nil
}
