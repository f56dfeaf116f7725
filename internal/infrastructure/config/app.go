package config

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// AppConfig is the root config for game.toml
type AppConfig struct {
	Window  WindowConfig  `toml:"window"`
	Paths   PathsConfig   `toml:"paths"`
	Logging LoggingConfig `toml:"logging"`
	Replay  ReplayConfig  `toml:"replay"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Scale  int    `toml:"scale"`
	Title  string `toml:"title"`
	Debug  bool   `toml:"debug"` // draw hitboxes
}

type PathsConfig struct {
	Configs string `toml:"configs"` // directory holding tuning.yaml and stages/
	Stage   string `toml:"stage"`   // default stage name
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ReplayConfig struct {
	Store string `toml:"store"` // "file" or "gdata"
	Dir   string `toml:"dir"`
}

// LoadApp reads game.toml from path. A missing file yields the defaults.
func LoadApp(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultApp(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseApp(data)
}

// ParseApp overlays TOML data on the defaults.
func ParseApp(data []byte) (*AppConfig, error) {
	cfg := DefaultApp()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadAppFS reads an app config out of fsys.
func LoadAppFS(fsys fs.FS, name string) (*AppConfig, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", name, err)
	}
	return ParseApp(data)
}

// DefaultApp returns the built-in app settings.
func DefaultApp() *AppConfig {
	return &AppConfig{
		Window: WindowConfig{
			Width:  1280,
			Height: 768,
			Scale:  1,
			Title:  "tileclash",
		},
		Paths: PathsConfig{
			Configs: "configs",
			Stage:   "demo",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Replay: ReplayConfig{
			Store: "file",
			Dir:   "replays",
		},
	}
}
