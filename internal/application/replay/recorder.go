package replay

import (
	"fmt"
	"time"

	"github.com/younwookim/tileclash/internal/application/system"
)

// Recorder handles input recording for replay
type Recorder struct {
	data      ReplayData
	trail     Trail
	recording bool
}

// NewRecorder starts recording a session on stage.
func NewRecorder(stage string, start time.Time) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   Version,
			Stage:     stage,
			StartTime: start.Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // ~1 minute at 60fps
		},
		recording: true,
	}
}

// Step ticks w with in and dt. While recording, the frame is stored and the
// resulting state is folded into the replay's digest. Ticks after game over
// are not recorded.
func (r *Recorder) Step(w *system.World, in system.Intent, dt float64) []system.Event {
	if w.Over() {
		return nil
	}
	if !r.recording {
		return w.Tick(in, dt)
	}

	r.data.Frames = append(r.data.Frames, NewFrameInput(len(r.data.Frames), dt, in))
	events := w.Tick(in, dt)
	r.trail.Add(w)
	return events
}

// Finish stops recording and stamps the digest of every recorded tick.
func (r *Recorder) Finish() *ReplayData {
	r.recording = false
	r.data.Digest = FormatDigest(r.trail.Sum())
	return r.Data()
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns a copy of the recorded data.
func (r *Recorder) Data() *ReplayData {
	data := r.data
	data.Frames = append([]FrameInput(nil), r.data.Frames...)
	return &data
}

// GenerateName creates a replay name from the stage and start time.
func GenerateName(stage string, t time.Time) string {
	return fmt.Sprintf("replay_%s_%s", stage, t.Format("20060102_150405"))
}
