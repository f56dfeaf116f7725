package config

import (
	"errors"
	"fmt"
)

// Stage errors.
var (
	ErrEmptyLevel    = errors.New("level has no size")
	ErrNoPlayerSpawn = errors.New("level has no player spawn")
)

// StageConfig is the root config for stage files. JSON stages decode into
// it directly; TMX stages are converted into it by LoadTMX.
type StageConfig struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Size StageSizeConfig `json:"size"`

	// Tiles lists sparse tiles; Grid holds rows of raw ids (-1 is empty).
	// Both may be present, Tiles wins on overlap.
	Tiles []TileConfig `json:"tiles"`
	Grid  [][]int      `json:"grid"`

	PlayerSpawn *PositionConfig    `json:"playerSpawn"`
	Enemies     []EnemySpawnConfig `json:"enemies"`
}

// StageSizeConfig is the world extent in tiles.
type StageSizeConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type TileConfig struct {
	X  int `json:"x"`
	Y  int `json:"y"`
	ID int `json:"id"`
}

// PositionConfig is a world-space point.
type PositionConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type EnemySpawnConfig struct {
	Type        string  `json:"type"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	FacingRight bool    `json:"facingRight"`
}

// Validate checks the stage can be built into a level.
func (s *StageConfig) Validate() error {
	if s.Size.Width <= 0 || s.Size.Height <= 0 {
		return fmt.Errorf("stage %s: %w", s.ID, ErrEmptyLevel)
	}
	if s.PlayerSpawn == nil {
		return fmt.Errorf("stage %s: %w", s.ID, ErrNoPlayerSpawn)
	}
	for i, row := range s.Grid {
		if len(row) > s.Size.Width {
			return fmt.Errorf("stage %s: grid row %d wider than stage (%d > %d)", s.ID, i, len(row), s.Size.Width)
		}
	}
	if len(s.Grid) > s.Size.Height {
		return fmt.Errorf("stage %s: grid taller than stage (%d > %d)", s.ID, len(s.Grid), s.Size.Height)
	}
	for _, e := range s.Enemies {
		switch e.Type {
		case "patrol", "turret":
		default:
			return fmt.Errorf("stage %s: unknown enemy type %q", s.ID, e.Type)
		}
	}
	return nil
}
