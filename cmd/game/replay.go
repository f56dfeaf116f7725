package main

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/younwookim/tileclash/internal/application/replay"
	"github.com/younwookim/tileclash/internal/application/system"
	"github.com/younwookim/tileclash/internal/infrastructure/config"
	"github.com/younwookim/tileclash/internal/infrastructure/storage"
)

var errNoList = errors.New("replay store cannot list replays")

// listReplays prints one stored replay name per line.
func listReplays(store storage.ReplayStore, out io.Writer) error {
	l, ok := store.(storage.Lister)
	if !ok {
		return errNoList
	}
	names, err := l.List()
	if err != nil {
		return fmt.Errorf("list replays: %w", err)
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

// verifyReplay re-simulates data on its stage without a window and
// reports the resulting digest. A digest mismatch is returned as an error.
func verifyReplay(loader *config.Loader, tuning *config.Tuning, data *replay.ReplayData, out io.Writer, logger *zap.Logger) error {
	lvl, err := loadLevel(loader, data.Stage)
	if err != nil {
		return err
	}
	w, err := system.NewWorldFromLevel(lvl, tuning, system.WithLogger(logger))
	if err != nil {
		return err
	}

	res, err := replay.Verify(w, data)
	fmt.Fprintf(out, "stage=%s frames=%d/%d kills=%d digest=%s\n",
		data.Stage, res.Frames, len(data.Frames),
		system.Count(res.Events, system.EventEnemyKilled),
		replay.FormatDigest(res.Digest))
	if err != nil {
		return err
	}

	logger.Info("replay verified", zap.String("stage", data.Stage), zap.Int("frames", res.Frames))
	return nil
}
