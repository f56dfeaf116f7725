// Package game provides the ebiten.Game that drives the current scene.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/tileclash/internal/application/scene"
	"github.com/younwookim/tileclash/internal/application/system"
)

// MaxDT caps a measured frame delta so a stall does not tunnel bodies
// through tiles on the next tick.
const MaxDT = 3.0

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int

	// dt is used when no clock is set
	dt    float64
	clock func() time.Time
	last  time.Time
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.frameDelta())
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}
	return nil
}

func (g *Game) frameDelta() float64 {
	if g.clock == nil {
		return g.dt
	}
	now := g.clock()
	if g.last.IsZero() {
		g.last = now
		return g.dt
	}
	dt := system.FrameDelta(now.Sub(g.last))
	g.last = now
	return min(dt, MaxDT)
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets a fixed delta in frames and drops any clock.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
	g.clock = nil
}

// SetClock measures deltas from now instead of using a fixed step.
func (g *Game) SetClock(now func() time.Time) {
	g.clock = now
	g.last = time.Time{}
}

// Close lets the current scene clean up when the window closes.
func (g *Game) Close() {
	g.current.OnExit()
}
