package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/tileclash/internal/application/game"
	"github.com/younwookim/tileclash/internal/application/replay"
	"github.com/younwookim/tileclash/internal/application/scene/playing"
	"github.com/younwookim/tileclash/internal/application/system"
	"github.com/younwookim/tileclash/internal/infrastructure/config"
	"github.com/younwookim/tileclash/internal/infrastructure/logging"
	"github.com/younwookim/tileclash/internal/infrastructure/storage"
)

//go:embed configs
var configFS embed.FS

type options struct {
	configPath string
	stage      string
	record     bool
	replay     string
	verify     bool
	list       bool
	debug      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "game.toml", "Application config file")
	flag.StringVar(&opts.stage, "stage", "", "Stage to play (overrides paths.stage)")
	flag.BoolVar(&opts.record, "record", false, "Record the session to the replay store")
	flag.StringVar(&opts.replay, "replay", "", "Play back a stored replay by name or path")
	flag.BoolVar(&opts.verify, "verify", false, "Verify -replay without a window and print its digest")
	flag.BoolVar(&opts.list, "list", false, "Print the stored replay names and exit")
	flag.BoolVar(&opts.debug, "debug", false, "Draw debug overlays")
	flag.Parse()

	appCfg, err := config.LoadApp(opts.configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := logging.New(appCfg.Logging)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(opts, appCfg, logger); err != nil {
		logger.Error("exiting", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(opts options, appCfg *config.AppConfig, logger *zap.Logger) error {
	loader, onDisk, err := newLoader(appCfg.Paths.Configs)
	if err != nil {
		return err
	}
	tuning, err := loader.LoadTuning()
	if err != nil {
		return err
	}

	store, err := storage.Open(appCfg.Replay, appCfg.Window.Title)
	if err != nil {
		return fmt.Errorf("open replay store: %w", err)
	}
	if opts.list {
		return listReplays(store, os.Stdout)
	}

	stage := appCfg.Paths.Stage
	if opts.stage != "" {
		stage = opts.stage
	}

	var data *replay.ReplayData
	if opts.replay != "" {
		data, err = store.Load(opts.replay)
		if err != nil {
			return fmt.Errorf("load replay %s: %w", opts.replay, err)
		}
		stage = data.Stage
		if opts.verify {
			return verifyReplay(loader, tuning, data, os.Stdout, logger)
		}
	} else if opts.verify {
		return errors.New("-verify needs -replay")
	}

	lvl, err := loadLevel(loader, stage)
	if err != nil {
		return err
	}
	logger.Info("stage loaded",
		zap.String("stage", lvl.ID),
		zap.Int("tiles", len(lvl.Map)),
		zap.Int("enemies", len(lvl.Enemies)),
		zap.Bool("configsOnDisk", onDisk))

	var updates <-chan *config.Tuning
	if onDisk {
		watcher, err := config.WatchTuning(loader.BasePath())
		if err != nil {
			logger.Warn("tuning hot reload disabled", zap.Error(err))
		} else {
			defer func() { _ = watcher.Close() }()
			go logWatchErrors(logger, watcher.Errors)
			updates = watcher.Updates
		}
	}

	win := appCfg.Window
	scene, err := playing.New(playing.Options{
		Level:         lvl,
		Tuning:        tuning,
		Logger:        logger,
		ScreenW:       win.Width,
		ScreenH:       win.Height,
		Debug:         win.Debug || opts.debug,
		Record:        opts.record,
		Store:         store,
		Replay:        data,
		TuningUpdates: updates,
	})
	if err != nil {
		return err
	}

	g := game.New(scene, win.Width, win.Height)
	g.SetClock(time.Now)
	defer g.Close()

	ebiten.SetWindowSize(win.Width*win.Scale, win.Height*win.Scale)
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetTPS(60)

	return ebiten.RunGame(g)
}

// newLoader reads configs from dir when it exists, so tuning edits reload,
// and falls back to the embedded configs otherwise.
func newLoader(dir string) (*config.Loader, bool, error) {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return config.NewLoader(dir), true, nil
		}
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, false, fmt.Errorf("embedded configs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), false, nil
}

func loadLevel(loader *config.Loader, name string) (*system.Level, error) {
	cfg, err := loader.LoadLevel(name)
	if err != nil {
		return nil, err
	}
	return system.LoadLevel(cfg)
}

func logWatchErrors(logger *zap.Logger, errs <-chan error) {
	for err := range errs {
		logger.Warn("tuning reload failed", zap.Error(err))
	}
}
