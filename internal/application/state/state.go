// Package state holds the playing scene's mode.
package state

// GameState represents the current state of the game
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateGameOver
	// StateReplayDone is entered when a replay has run out of frames.
	StateReplayDone
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	case StateReplayDone:
		return "ReplayDone"
	default:
		return "Unknown"
	}
}

// Ticking reports whether the simulation advances in this state.
func (s GameState) Ticking() bool {
	return s == StatePlaying
}
