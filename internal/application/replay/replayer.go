package replay

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/younwookim/tileclash/internal/application/system"
)

var (
	// ErrVersion is returned when a replay was written by an unknown format version.
	ErrVersion = errors.New("unsupported replay version")
	// ErrDigestMismatch is returned when a replay does not reproduce its recorded digest.
	ErrDigestMismatch = errors.New("replay digest mismatch")
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  *ReplayData
	frame int
	trail Trail
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data *ReplayData) *Replayer {
	return &Replayer{data: data}
}

// Next returns the intent and dt of the current frame and advances.
func (r *Replayer) Next() (system.Intent, float64, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.Intent{}, 0, false
	}
	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.Intent(), fi.DT, true
}

// Step feeds the next frame to w and folds the resulting state into Sum.
// It returns false once the frames run out or the world is over.
func (r *Replayer) Step(w *system.World) ([]system.Event, bool) {
	if w.Over() {
		return nil, false
	}
	in, dt, ok := r.Next()
	if !ok {
		return nil, false
	}
	events := w.Tick(in, dt)
	r.trail.Add(w)
	return events, true
}

// Sum returns the digest of every tick played through Step so far.
func (r *Replayer) Sum() uint64 {
	return r.trail.Sum()
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Done reports whether every frame has been played.
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.trail = Trail{}
}

// Result summarises a headless playback.
type Result struct {
	Frames int
	// Digest covers every played tick; State is the digest of the last one.
	Digest uint64
	State  uint64
	Events []system.Event
}

// Play feeds every remaining frame to w. Playback stops early once the
// world is over.
func (r *Replayer) Play(w *system.World) Result {
	var res Result
	for {
		events, ok := r.Step(w)
		if !ok {
			break
		}
		res.Events = append(res.Events, events...)
		res.Frames++
	}
	res.Digest = r.Sum()
	res.State = Digest(w)
	return res
}

// Verify plays the whole replay against w and compares the result to the
// recorded digest. Replays without a digest only report the result.
func Verify(w *system.World, data *ReplayData) (Result, error) {
	res := NewReplayer(data).Play(w)
	if data.Digest == "" {
		return res, nil
	}
	want, err := strconv.ParseUint(data.Digest, 16, 64)
	if err != nil {
		return res, fmt.Errorf("parse digest %q: %w", data.Digest, err)
	}
	if res.Digest != want {
		return res, fmt.Errorf("%w: got %s, want %s", ErrDigestMismatch, FormatDigest(res.Digest), data.Digest)
	}
	return res, nil
}
