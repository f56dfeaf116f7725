package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// TuningFile is the tuning file name inside the config directory.
const TuningFile = "tuning.yaml"

// Loader loads game configuration using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader was created for.
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadTuning loads tuning.yaml over the defaults.
// A missing file yields the defaults.
func (l *Loader) LoadTuning() (*Tuning, error) {
	data, err := fs.ReadFile(l.fsys, TuningFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultTuning(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", TuningFile, err)
	}

	t, err := ParseTuning(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", TuningFile, err)
	}
	return t, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	path := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}
	if cfg.ID == "" {
		cfg.ID = name
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadLevel loads stages/<name>.json, falling back to stages/<name>.tmx.
func (l *Loader) LoadLevel(name string) (*StageConfig, error) {
	cfg, err := l.LoadStage(name)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return l.LoadTMX(name)
}
