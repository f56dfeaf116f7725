package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// TuningWatcher reloads tuning.yaml when it changes on disk.
// Parsed tunings arrive on Updates; read or parse failures on Errors.
// Receivers apply updates between ticks.
type TuningWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	Updates chan *Tuning
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchTuning watches dir/tuning.yaml.
func WatchTuning(dir string) (*TuningWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, editors often replace the file instead of writing it
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}

	tw := &TuningWatcher{
		watcher: w,
		path:    filepath.Join(dir, TuningFile),
		Updates: make(chan *Tuning, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go tw.run()
	return tw, nil
}

// Close stops watching. Updates and Errors are closed once the watch loop exits.
func (w *TuningWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *TuningWatcher) run() {
	defer func() {
		close(w.Updates)
		close(w.Errors)
		close(w.done)
	}()

	// Editors write in bursts; reload once the file has been quiet for a moment
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			timer.Reset(reloadDebounce)
		case <-timer.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *TuningWatcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.sendErr(err)
		return
	}
	t, err := ParseTuning(data)
	if err != nil {
		w.sendErr(err)
		return
	}

	// Keep only the newest tuning if the receiver is behind
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- t:
	case <-w.closeCh:
	}
}

func (w *TuningWatcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
