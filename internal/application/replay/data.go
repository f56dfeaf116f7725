// Package replay records and plays back the per-frame input of a session.
//
// A replay is the exact (dt, intent) sequence fed to World.Tick. Replaying
// it against the same level and tuning reproduces the session bit for bit,
// which Digest checks.
package replay

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/younwookim/tileclash/internal/application/system"
	"github.com/younwookim/tileclash/internal/domain/geom"
)

// Version is the current replay format version.
const Version = "3"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	DT float64 `json:"dt"`           // Frame delta in frame units
	L  bool    `json:"l,omitempty"`  // Left
	R  bool    `json:"r,omitempty"`  // Right
	J  bool    `json:"j,omitempty"`  // JumpHeld
	JP bool    `json:"jp,omitempty"` // JumpPressed
	D  bool    `json:"d,omitempty"`  // Down
	FR bool    `json:"fr,omitempty"` // Fire
	AX float64 `json:"ax"`           // Aim X, world space
	AY float64 `json:"ay"`           // Aim Y, world space
}

// NewFrameInput captures in for frame f.
func NewFrameInput(f int, dt float64, in system.Intent) FrameInput {
	return FrameInput{
		F:  f,
		DT: dt,
		L:  in.MoveLeft,
		R:  in.MoveRight,
		J:  in.JumpHeld,
		JP: in.JumpPressed,
		D:  in.DownHeld,
		FR: in.Fire,
		AX: in.Aim.X,
		AY: in.Aim.Y,
	}
}

// Intent rebuilds the recorded intent.
func (fi FrameInput) Intent() system.Intent {
	return system.Intent{
		MoveLeft:    fi.L,
		MoveRight:   fi.R,
		JumpHeld:    fi.J,
		JumpPressed: fi.JP,
		DownHeld:    fi.D,
		Fire:        fi.FR,
		Aim:         geom.Vec{X: fi.AX, Y: fi.AY},
	}
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`

	// Digest is the world digest after the last frame, hex encoded.
	// Empty when the session was not finished.
	Digest string `json:"digest,omitempty"`
}

// Encode writes data as indented JSON.
func Encode(w io.Writer, data *ReplayData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// Decode reads a replay and rejects unknown versions.
func Decode(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("%w: %q", ErrVersion, data.Version)
	}
	return &data, nil
}
