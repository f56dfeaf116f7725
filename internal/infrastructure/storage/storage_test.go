package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tileclash/internal/application/replay"
	"github.com/younwookim/tileclash/internal/infrastructure/config"
)

func createTestReplay() *replay.ReplayData {
	return &replay.ReplayData{
		Version:   replay.Version,
		Stage:     "demo",
		StartTime: "2026-01-02T03:04:05Z",
		Frames: []replay.FrameInput{
			{F: 0, DT: 1, R: true, AX: 10, AY: 20},
			{F: 1, DT: 0.983, JP: true, J: true},
		},
		Digest: "abc123",
	}
}

func TestFileStore_SaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "replays")
	s := NewFileStore(dir)
	data := createTestReplay()

	require.NoError(t, s.Save("run1", data))
	assert.FileExists(t, filepath.Join(dir, "run1.json"))

	got, err := s.Load("run1")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Names with the extension resolve to the same file
	got, err = s.Load("run1.json")
	require.NoError(t, err)
	assert.Equal(t, data.Digest, got.Digest)

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"run1"}, names)
}

func TestFileStore_LoadByPath(t *testing.T) {
	s := NewFileStore(t.TempDir())
	require.NoError(t, s.Save("run", createTestReplay()))

	other := NewFileStore(t.TempDir())
	got, err := other.Load(filepath.Join(s.dir, "run.json"))
	require.NoError(t, err)
	assert.Equal(t, "demo", got.Stage)
}

func TestFileStore_Errors(t *testing.T) {
	s := NewFileStore(t.TempDir())

	_, err := s.Load("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(s.dir, "old.json"), []byte(`{"version":"1.0"}`), 0o644))
	_, err = s.Load("old")
	assert.ErrorIs(t, err, replay.ErrVersion)
}

type memItems struct {
	items   map[string][]byte
	failing bool
}

func (m *memItems) LoadItem(key string) ([]byte, error) {
	if m.failing {
		return nil, errors.New("disk on fire")
	}
	return m.items[key], nil
}

func (m *memItems) SaveItem(key string, data []byte) error {
	if m.failing {
		return errors.New("disk on fire")
	}
	m.items[key] = data
	return nil
}

func TestGdataStore_SaveLoad(t *testing.T) {
	items := &memItems{items: map[string][]byte{}}
	s := &GdataStore{items: items}
	data := createTestReplay()

	require.NoError(t, s.Save("run1.json", data))
	assert.Contains(t, items.items, "replay_run1")

	got, err := s.Load("run1")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = s.Load("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGdataStore_Errors(t *testing.T) {
	s := &GdataStore{items: &memItems{failing: true}}

	assert.Error(t, s.Save("run", createTestReplay()))
	_, err := s.Load("run")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestOpen_FileStoreByDefault(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(config.ReplayConfig{Store: "file", Dir: dir}, "tileclash-test")
	require.NoError(t, err)

	fs, ok := s.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, dir, fs.dir)
}
