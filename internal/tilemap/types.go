package tilemap

import (
	"fmt"
	"image"

	"gopkg.in/yaml.v3"
)

// Tiled stores flip/rotation flags in the top bits of every GID.
const (
	FlippedHorizontallyFlag uint32 = 0x80000000
	FlippedVerticallyFlag   uint32 = 0x40000000
	FlippedDiagonallyFlag   uint32 = 0x20000000
	RotatedHexagonal120Flag uint32 = 0x10000000

	// GIDMask strips all flag bits from a raw GID.
	GIDMask uint32 = 0x0FFFFFFF
)

// Map is a parsed Tiled map (JSON export, orthogonal, finite).
type Map struct {
	Width       int        `yaml:"width"`      // Map width in tiles
	Height      int        `yaml:"height"`     // Map height in tiles
	TileWidth   int        `yaml:"tilewidth"`  // Tile width in pixels
	TileHeight  int        `yaml:"tileheight"` // Tile height in pixels
	Orientation string     `yaml:"orientation"`
	Infinite    bool       `yaml:"infinite"`
	Layers      []*Layer   `yaml:"layers"`
	Tilesets    []*Tileset `yaml:"tilesets"`
}

// Layer is a single tile layer. Non-tile layers (object groups, image layers)
// are kept with an empty Tiles slice.
type Layer struct {
	ID          int       `yaml:"id"`
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"` // "tilelayer", "objectgroup", ...
	Width       int       `yaml:"width"`
	Height      int       `yaml:"height"`
	X           int       `yaml:"x"`
	Y           int       `yaml:"y"`
	Visible     bool      `yaml:"visible"`
	Opacity     float64   `yaml:"opacity"`
	Encoding    string    `yaml:"encoding"`    // "" / "csv" / "base64"
	Compression string    `yaml:"compression"` // "" / "zlib" / "gzip"
	RawData     LayerData `yaml:"data"`

	// Tiles 解码后的原始 GID（含翻转标志位），按行优先排列
	Tiles []uint32 `yaml:"-"`
}

// LayerData holds the undecoded "data" field, which Tiled writes either as a
// number array or as a base64 string.
type LayerData struct {
	GIDs    []uint32
	Encoded string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *LayerData) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		return value.Decode(&d.GIDs)
	case yaml.ScalarNode:
		d.Encoded = value.Value
		return nil
	default:
		return fmt.Errorf("unsupported layer data node kind %d at line %d", value.Kind, value.Line)
	}
}

// Tileset describes an embedded Tiled tileset.
type Tileset struct {
	FirstGID    uint32           `yaml:"firstgid"`
	Source      string           `yaml:"source"` // 外部 .tsx 引用（不支持）
	Name        string           `yaml:"name"`
	Image       string           `yaml:"image"`
	ImageWidth  int              `yaml:"imagewidth"`
	ImageHeight int              `yaml:"imageheight"`
	TileWidth   int              `yaml:"tilewidth"`
	TileHeight  int              `yaml:"tileheight"`
	TileCount   int              `yaml:"tilecount"`
	Columns     int              `yaml:"columns"`
	Margin      int              `yaml:"margin"`
	Spacing     int              `yaml:"spacing"`
	Tiles       []TileDefinition `yaml:"tiles"`
}

// TileDefinition carries per-tile metadata of a tileset.
type TileDefinition struct {
	ID         uint32     `yaml:"id"`
	Properties Properties `yaml:"properties"`
}

// Property is a custom property set in the map editor.
type Property struct {
	Name  string      `yaml:"name"`
	Type  string      `yaml:"type"`
	Value interface{} `yaml:"value"`
}

// Properties accepts both the current list form
// ([{"name":..,"type":..,"value":..}]) and the legacy object form
// ({"collides": true}) written by Tiled before 1.2.
type Properties []Property

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Properties) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var list []Property
		if err := value.Decode(&list); err != nil {
			return err
		}
		*p = list
		return nil
	case yaml.MappingNode:
		var legacy map[string]interface{}
		if err := value.Decode(&legacy); err != nil {
			return err
		}
		list := make([]Property, 0, len(legacy))
		// 保持文件中的键顺序
		for i := 0; i+1 < len(value.Content); i += 2 {
			name := value.Content[i].Value
			list = append(list, Property{Name: name, Value: legacy[name]})
		}
		*p = list
		return nil
	default:
		return fmt.Errorf("unsupported properties node kind %d at line %d", value.Kind, value.Line)
	}
}

// Get returns the property with the given name.
func (p Properties) Get(name string) (Property, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop, true
		}
	}
	return Property{}, false
}

// Bool reports whether the named property exists and is boolean true.
// A string "true" is accepted as well.
func (p Properties) Bool(name string) bool {
	prop, ok := p.Get(name)
	if !ok {
		return false
	}
	switch v := prop.Value.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

// StripFlags returns the GID without flip/rotation bits.
func StripFlags(rawGID uint32) uint32 {
	return rawGID & GIDMask
}

// PixelWidth returns the map width in pixels.
func (m *Map) PixelWidth() int {
	return m.Width * m.TileWidth
}

// PixelHeight returns the map height in pixels.
func (m *Map) PixelHeight() int {
	return m.Height * m.TileHeight
}

// Layer returns the tile layer with the given name.
func (m *Map) Layer(name string) (*Layer, bool) {
	for _, layer := range m.Layers {
		if layer.Name == name {
			return layer, true
		}
	}
	return nil, false
}

// TilesetByName returns the tileset with the given Tiled name.
func (m *Map) TilesetByName(name string) (*Tileset, bool) {
	for _, ts := range m.Tilesets {
		if ts.Name == name {
			return ts, true
		}
	}
	return nil, false
}

// TilesetForGID resolves the tileset owning rawGID. Tilesets are sorted by
// FirstGID during parsing, so the last tileset whose FirstGID <= gid wins.
// Returns nil for the empty tile (0).
func (m *Map) TilesetForGID(rawGID uint32) *Tileset {
	gid := StripFlags(rawGID)
	if gid == 0 {
		return nil
	}
	var owner *Tileset
	for _, ts := range m.Tilesets {
		if ts.FirstGID > gid {
			break
		}
		owner = ts
	}
	if owner != nil && owner.TileCount > 0 && gid-owner.FirstGID >= uint32(owner.TileCount) {
		return nil
	}
	return owner
}

// GIDAt returns the raw GID at tile coordinates, 0 when out of range.
func (l *Layer) GIDAt(tx, ty int) uint32 {
	if tx < 0 || ty < 0 || tx >= l.Width || ty >= l.Height {
		return 0
	}
	idx := ty*l.Width + tx
	if idx >= len(l.Tiles) {
		return 0
	}
	return l.Tiles[idx]
}

// LocalID converts a GID into the tileset-local tile id.
func (ts *Tileset) LocalID(rawGID uint32) uint32 {
	return StripFlags(rawGID) - ts.FirstGID
}

// Contains reports whether rawGID belongs to this tileset.
func (ts *Tileset) Contains(rawGID uint32) bool {
	gid := StripFlags(rawGID)
	if gid < ts.FirstGID {
		return false
	}
	return ts.TileCount <= 0 || gid-ts.FirstGID < uint32(ts.TileCount)
}

// TileRect returns the source rectangle of a local tile id inside the
// tileset image, honouring margin and spacing.
func (ts *Tileset) TileRect(localID uint32) image.Rectangle {
	columns := ts.Columns
	if columns <= 0 {
		columns = 1
	}
	col := int(localID) % columns
	row := int(localID) / columns
	x := ts.Margin + col*(ts.TileWidth+ts.Spacing)
	y := ts.Margin + row*(ts.TileHeight+ts.Spacing)
	return image.Rect(x, y, x+ts.TileWidth, y+ts.TileHeight)
}

// TileProperties returns the custom properties of a local tile id.
func (ts *Tileset) TileProperties(localID uint32) Properties {
	for _, def := range ts.Tiles {
		if def.ID == localID {
			return def.Properties
		}
	}
	return nil
}
