// Package scene defines the Scene interface the game loop drives.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the game.
//
// The game loop delegates Update and Draw to the current scene and
// switches scenes when Update returns a non-nil next scene.
type Scene interface {
	// Update advances the scene by dt frames (1 at a steady 60 TPS).
	// A non-nil next scene replaces this one; an error ends the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called each time the scene becomes current.
	OnEnter()

	// OnExit is called when the scene is replaced or the game ends.
	OnExit()
}
