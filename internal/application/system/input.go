package system

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/tileclash/internal/domain/geom"
)

// Action is a logical input the game reads.
type Action uint8

const (
	ActionLeft Action = iota
	ActionRight
	ActionJump
	ActionDown
	ActionFire
	actionCount
)

// Device reports raw held state. The ebiten implementation polls the
// keyboard and mouse; tests substitute their own.
type Device interface {
	Held(a Action) bool
	Cursor() (x, y int)
}

// EbitenDevice reads actions from the keyboard and mouse.
type EbitenDevice struct {
	Keys map[Action][]ebiten.Key
}

// DefaultEbitenDevice uses WASD/arrows, space to jump and the left mouse
// button or J to fire.
func DefaultEbitenDevice() *EbitenDevice {
	return &EbitenDevice{
		Keys: map[Action][]ebiten.Key{
			ActionLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
			ActionRight: {ebiten.KeyD, ebiten.KeyArrowRight},
			ActionJump:  {ebiten.KeyW, ebiten.KeySpace, ebiten.KeyArrowUp},
			ActionDown:  {ebiten.KeyS, ebiten.KeyArrowDown},
			ActionFire:  {ebiten.KeyJ},
		},
	}
}

// Held reports whether any key bound to a is pressed.
func (d *EbitenDevice) Held(a Action) bool {
	if a == ActionFire && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return true
	}
	for _, k := range d.Keys[a] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// Cursor returns the cursor in screen pixels.
func (d *EbitenDevice) Cursor() (int, int) {
	return ebiten.CursorPosition()
}

// InputSystem turns device state into one Intent per tick. Edges are
// derived from consecutive polls, and Consume debounces a press so it can
// fire only once until the key is released.
type InputSystem struct {
	device   Device
	held     [actionCount]bool
	prev     [actionCount]bool
	consumed [actionCount]bool
	cursor   geom.Vec
}

// NewInputSystem creates a new input system
func NewInputSystem(device Device) *InputSystem {
	return &InputSystem{device: device}
}

// Poll reads the device once. Call it once per game update.
func (s *InputSystem) Poll() {
	s.prev = s.held
	for a := Action(0); a < actionCount; a++ {
		s.held[a] = s.device.Held(a)
		if !s.held[a] {
			s.consumed[a] = false
		}
	}
	x, y := s.device.Cursor()
	s.cursor = geom.Vec{X: float64(x), Y: float64(y)}
}

// Held reports whether a is down.
func (s *InputSystem) Held(a Action) bool {
	return s.held[a]
}

// Pressed reports whether a went down on the last poll.
func (s *InputSystem) Pressed(a Action) bool {
	return s.held[a] && !s.prev[a]
}

// Consume reports a press of a once. Later calls return false until the
// action has been released and pressed again.
func (s *InputSystem) Consume(a Action) bool {
	if !s.held[a] || s.consumed[a] {
		return false
	}
	s.consumed[a] = true
	return true
}

// Intent builds the tick's intent. camera is the world position of the
// screen's top-left corner, used to map the cursor into world space.
func (s *InputSystem) Intent(camera geom.Vec) Intent {
	return Intent{
		MoveLeft:    s.Held(ActionLeft),
		MoveRight:   s.Held(ActionRight),
		JumpHeld:    s.Held(ActionJump),
		JumpPressed: s.Consume(ActionJump),
		DownHeld:    s.Held(ActionDown),
		Fire:        s.Held(ActionFire),
		Aim:         s.cursor.Add(camera),
	}
}
