package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/lafriks/go-tiled"

	"github.com/automoto/steadystep/config"
)

// Layer and object group names read from TMX files.
const (
	GroundLayer = "ground"
	SpawnGroup  = "Spawn"
	PropGroup   = "Props"
)

// ErrAirborneSurface is returned when a tile or prop claims to be airborne.
var ErrAirborneSurface = errors.New("airborne is not a surface")

// Defaults for props whose TMX object omits a property.
const (
	defaultPropSpeed = 2.0
	defaultPropSize  = 1.0
)

// Load parses a TMX file from fsys. Passing an fs.FS lets callers use
// embed.FS or os.DirFS alike.
func Load(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth <= 0 || levelMap.TileHeight <= 0 {
		return nil, fmt.Errorf("load TMX %s: invalid tile size %dx%d", tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	level := &Level{
		Name:  strings.TrimSuffix(path.Base(tmxPath), ".tmx"),
		Width: levelMap.Width,
		Depth: levelMap.Height,
	}

	if err := parseTiles(levelMap, level); err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	// Pixel coordinates to world units.
	sx := 1 / float64(levelMap.TileWidth)
	sz := 1 / float64(levelMap.TileHeight)

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case SpawnGroup:
			for _, o := range og.Objects {
				level.Spawns = append(level.Spawns, Spawn{
					Position: mgl.Vec3{o.X * sx, 0, o.Y * sz},
					Index:    o.Properties.GetInt("spawnIndex"),
				})
			}
		case PropGroup:
			for _, o := range og.Objects {
				prop, err := parseProp(o, sx, sz)
				if err != nil {
					return nil, fmt.Errorf("load TMX %s: prop %q: %w", tmxPath, o.Name, err)
				}
				level.Props = append(level.Props, prop)
			}
		}
	}

	sort.SliceStable(level.Spawns, func(i, j int) bool {
		return level.Spawns[i].Index < level.Spawns[j].Index
	})

	return level, nil
}

func parseTiles(levelMap *tiled.Map, level *Level) error {
	for _, layer := range levelMap.Layers {
		if layer.Name != GroundLayer {
			continue
		}
		for z := 0; z < levelMap.Height; z++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[z*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}

				category := config.Normal
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					c, err := parseSurface(tilesetTile.Properties.GetString("surface"))
					if err != nil {
						return fmt.Errorf("tile %d,%d: %w", x, z, err)
					}
					category = c
				}

				level.Tiles = append(level.Tiles, Tile{
					X:       float64(x) + 0.5,
					Z:       float64(z) + 0.5,
					Surface: category,
				})
			}
		}
		return nil
	}
	return fmt.Errorf("no %q layer", GroundLayer)
}

// parseSurface reads a "surface" property. Empty means normal ground;
// airborne names the absence of ground and is not a surface.
func parseSurface(name string) (config.GroundCategory, error) {
	if name == "" {
		return config.Normal, nil
	}
	c, err := config.ParseGroundCategory(name)
	if err != nil {
		return c, err
	}
	if c == config.Airborne {
		return c, fmt.Errorf("surface %q: %w", name, ErrAirborneSurface)
	}
	return c, nil
}

func parseProp(o *tiled.Object, sx, sz float64) (Prop, error) {
	size := o.Properties.GetFloat("size")
	if size <= 0 {
		size = defaultPropSize
	}
	speed := o.Properties.GetFloat("speed")
	if speed <= 0 {
		speed = defaultPropSpeed
	}

	category, err := parseSurface(o.Properties.GetString("surface"))
	if err != nil {
		return Prop{}, err
	}

	prop := Prop{
		Name:    o.Name,
		HalfX:   size / 2,
		HalfZ:   size / 2,
		Speed:   speed,
		Wait:    o.Properties.GetFloat("wait"),
		Surface: category,
	}

	if len(o.PolyLines) > 0 && o.PolyLines[0].Points != nil {
		for _, p := range *o.PolyLines[0].Points {
			prop.Path = append(prop.Path, mgl.Vec3{(o.X + p.X) * sx, 0, (o.Y + p.Y) * sz})
		}
	}
	if len(prop.Path) == 0 {
		prop.Path = []mgl.Vec3{{o.X * sx, 0, o.Y * sz}}
	}
	return prop, nil
}
