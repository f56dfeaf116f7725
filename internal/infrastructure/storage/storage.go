// Package storage persists replays.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quasilyte/gdata"

	"github.com/younwookim/tileclash/internal/application/replay"
	"github.com/younwookim/tileclash/internal/infrastructure/config"
)

// ErrNotFound is returned when no replay is stored under a name.
var ErrNotFound = errors.New("replay not found")

// ReplayStore saves and loads replays by name.
type ReplayStore interface {
	Save(name string, data *replay.ReplayData) error
	Load(name string) (*replay.ReplayData, error)
}

// Lister is implemented by stores that can enumerate their replays.
type Lister interface {
	List() ([]string, error)
}

var _ Lister = (*FileStore)(nil)

// Open returns the store selected by cfg: "gdata" keeps replays in the
// per-user data directory, anything else writes JSON files under cfg.Dir.
func Open(cfg config.ReplayConfig, appName string) (ReplayStore, error) {
	if cfg.Store == "gdata" {
		return OpenGdata(appName)
	}
	return NewFileStore(cfg.Dir), nil
}

// FileStore keeps replays as <dir>/<name>.json.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(name string) string {
	if filepath.Ext(name) != ".json" {
		name += ".json"
	}
	return filepath.Join(s.dir, name)
}

// Save writes data, creating the directory if needed.
func (s *FileStore) Save(name string, data *replay.ReplayData) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create replay dir: %w", err)
	}

	file, err := os.Create(s.path(name))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := replay.Encode(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// Load reads the replay stored under name. A path to an existing file is
// accepted as well.
func (s *FileStore) Load(name string) (*replay.ReplayData, error) {
	path := s.path(name)
	if _, err := os.Stat(name); err == nil && strings.HasSuffix(name, ".json") {
		path = name
	}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return replay.Decode(file)
}

// List returns the stored replay names, sorted.
func (s *FileStore) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// itemStore is the subset of *gdata.Manager the store uses.
type itemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// GdataStore keeps replays as gdata items in the user data directory.
type GdataStore struct {
	items itemStore
}

// OpenGdata opens the gdata manager for appName.
func OpenGdata(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open gdata: %w", err)
	}
	return &GdataStore{items: m}, nil
}

func itemKey(name string) string {
	return "replay_" + strings.TrimSuffix(name, ".json")
}

// Save stores data under name.
func (s *GdataStore) Save(name string, data *replay.ReplayData) error {
	var buf bytes.Buffer
	if err := replay.Encode(&buf, data); err != nil {
		return err
	}
	if err := s.items.SaveItem(itemKey(name), buf.Bytes()); err != nil {
		return fmt.Errorf("save replay %s: %w", name, err)
	}
	return nil
}

// Load reads the replay stored under name.
func (s *GdataStore) Load(name string) (*replay.ReplayData, error) {
	raw, err := s.items.LoadItem(itemKey(name))
	if err != nil {
		return nil, fmt.Errorf("load replay %s: %w", name, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return replay.Decode(bytes.NewReader(raw))
}
