package config

import (
	"fmt"
	"sort"

	"github.com/lafriks/go-tiled"
)

// TMX layer and object group names.
const (
	CollisionLayer = "collision"
	SpawnGroup     = "Spawns"
)

// LoadTMX converts stages/<name>.tmx into a StageConfig. Tiles of the
// collision layer map their local tileset id to the raw tile id. Spawn
// objects carry a "kind" property: player, patrol or turret.
func (l *Loader) LoadTMX(name string) (*StageConfig, error) {
	path := "stages/" + name + ".tmx"
	levelMap, err := tiled.LoadFile(path, tiled.WithFileSystem(l.fsys))
	if err != nil {
		return nil, fmt.Errorf("failed to load TMX %s: %w", path, err)
	}

	cfg := &StageConfig{
		ID:   name,
		Name: name,
		Size: StageSizeConfig{Width: levelMap.Width, Height: levelMap.Height},
	}

	for _, layer := range levelMap.Layers {
		if layer.Name != CollisionLayer {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				t := layer.Tiles[y*levelMap.Width+x]
				if t.IsNil() {
					continue
				}
				cfg.Tiles = append(cfg.Tiles, TileConfig{X: x, Y: y, ID: int(t.ID)})
			}
		}
		break
	}

	for _, og := range levelMap.ObjectGroups {
		if og.Name != SpawnGroup {
			continue
		}
		for _, o := range og.Objects {
			kind := o.Properties.GetString("kind")
			switch kind {
			case "player":
				cfg.PlayerSpawn = &PositionConfig{X: o.X, Y: o.Y}
			case "patrol", "turret":
				cfg.Enemies = append(cfg.Enemies, EnemySpawnConfig{
					Type:        kind,
					X:           o.X,
					Y:           o.Y,
					FacingRight: o.Properties.GetBool("facingRight"),
				})
			default:
				return nil, fmt.Errorf("TMX %s: spawn object %d has unknown kind %q", path, o.ID, kind)
			}
		}
	}

	// Object order in TMX files is editor order; sort for stable spawning
	sort.SliceStable(cfg.Enemies, func(i, j int) bool {
		if cfg.Enemies[i].X != cfg.Enemies[j].X {
			return cfg.Enemies[i].X < cfg.Enemies[j].X
		}
		return cfg.Enemies[i].Y < cfg.Enemies[j].Y
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
