// Package playing provides the main gameplay scene.
package playing

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/younwookim/tileclash/internal/application/replay"
	"github.com/younwookim/tileclash/internal/application/scene"
	"github.com/younwookim/tileclash/internal/application/state"
	"github.com/younwookim/tileclash/internal/application/system"
	"github.com/younwookim/tileclash/internal/domain/entity"
	"github.com/younwookim/tileclash/internal/domain/geom"
	"github.com/younwookim/tileclash/internal/domain/tile"
	"github.com/younwookim/tileclash/internal/ecs"
	"github.com/younwookim/tileclash/internal/infrastructure/config"
	"github.com/younwookim/tileclash/internal/infrastructure/storage"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorSolid      = color.RGBA{80, 80, 100, 255}
	colorSemiSolid  = color.RGBA{120, 100, 60, 255}
	colorSlippery   = color.RGBA{140, 200, 230, 255}
	colorRough      = color.RGBA{110, 80, 70, 255}
	colorOneWay     = color.RGBA{90, 140, 90, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorPatrol     = color.RGBA{200, 100, 100, 255}
	colorTurret     = color.RGBA{200, 140, 60, 255}
	colorPlayerShot = color.RGBA{255, 240, 120, 255}
	colorEnemyShot  = color.RGBA{255, 100, 100, 255}
	colorFlash      = color.RGBA{255, 255, 255, 200}
	colorAim        = color.RGBA{255, 255, 255, 80}
	colorHealthBG   = color.RGBA{60, 60, 60, 255}
	colorHealthFG   = color.RGBA{100, 200, 100, 255}
)

// ErrNoLevel is returned when the scene is created without a level.
var ErrNoLevel = errors.New("playing scene needs a level")

// Options configure a Playing scene.
type Options struct {
	Level  *system.Level
	Tuning *config.Tuning
	Logger *zap.Logger

	// Device is the input source; nil uses the keyboard and mouse.
	Device system.Device

	ScreenW, ScreenH int
	Debug            bool

	// Record saves the session to Store when it ends.
	Record bool
	Store  storage.ReplayStore

	// Replay plays recorded frames instead of reading the device.
	Replay *replay.ReplayData

	// TuningUpdates delivers reloaded tuning, applied between ticks.
	TuningUpdates <-chan *config.Tuning

	// Clock stamps recordings; nil uses time.Now.
	Clock func() time.Time
}

// Playing is the main gameplay scene
type Playing struct {
	opts  Options
	log   *zap.Logger
	world *system.World
	input *system.InputSystem
	state state.GameState

	recorder *replay.Recorder
	started  time.Time
	saved    bool
	replayer *replay.Replayer

	camera geom.Vec
	tiles  []tile.Coord
	kills  int
}

// New creates a new Playing scene.
func New(opts Options) (*Playing, error) {
	if opts.Level == nil {
		return nil, ErrNoLevel
	}
	if opts.Tuning == nil {
		opts.Tuning = config.DefaultTuning()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Device == nil {
		opts.Device = system.DefaultEbitenDevice()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	p := &Playing{
		opts:  opts,
		log:   opts.Logger.With(zap.String("level", opts.Level.ID)),
		input: system.NewInputSystem(opts.Device),
	}
	if err := p.reset(opts.Tuning); err != nil {
		return nil, err
	}
	return p, nil
}

// reset builds a fresh world for the level and restarts recording or playback.
func (p *Playing) reset(tuning *config.Tuning) error {
	w, err := system.NewWorldFromLevel(p.opts.Level, tuning, system.WithLogger(p.log))
	if err != nil {
		return fmt.Errorf("build world: %w", err)
	}
	p.world = w
	p.tiles = w.Index().Coords()
	p.state = state.StatePlaying
	p.kills = 0
	p.saved = false
	p.camera = p.cameraFor()

	p.recorder = nil
	p.replayer = nil
	switch {
	case p.opts.Replay != nil:
		p.replayer = replay.NewReplayer(p.opts.Replay)
		p.log.Info("replay started", zap.Int("frames", p.replayer.TotalFrames()))
	case p.opts.Record:
		p.started = p.opts.Clock()
		p.recorder = replay.NewRecorder(p.opts.Level.ID, p.started)
		p.log.Info("recording enabled")
	}
	return nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.applyTuning()

	switch p.state {
	case state.StatePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePaused
			return nil, nil
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
			p.saveRecording()
		}
		p.step(dt)
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePlaying
		}
	case state.StateGameOver, state.StateReplayDone:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			p.saveRecording()
			if err := p.reset(p.world.Tuning()); err != nil {
				return nil, err
			}
		}
	}

	return nil, nil // nil = stay on this scene
}

// applyTuning swaps in the newest reloaded tuning, if any.
func (p *Playing) applyTuning() {
	select {
	case t, ok := <-p.opts.TuningUpdates:
		if !ok || t == nil {
			return
		}
		p.world.SetTuning(t)
		p.log.Info("tuning reloaded", zap.Uint64("frame", p.world.Frame()))

		// Replays do not store tuning, so frames past this point could
		// never be verified
		if p.recorder != nil && p.recorder.IsRecording() {
			p.recorder.Stop()
			p.log.Warn("recording stopped after tuning reload",
				zap.Int("frames", p.recorder.FrameCount()))
		}
	default:
	}
}

// step runs one world tick from live input or the replay.
func (p *Playing) step(dt float64) {
	p.input.Poll()
	in := p.input.Intent(p.camera)

	var events []system.Event
	switch {
	case p.replayer != nil:
		var ok bool
		events, ok = p.replayer.Step(p.world)
		if !ok {
			p.state = state.StateReplayDone
			p.log.Info("replay finished",
				zap.Int("frames", p.replayer.TotalFrames()),
				zap.String("digest", replay.FormatDigest(p.replayer.Sum())),
				zap.String("recorded", p.opts.Replay.Digest))
			return
		}
	case p.recorder != nil:
		events = p.recorder.Step(p.world, in, dt)
	default:
		events = p.world.Tick(in, dt)
	}

	for _, ev := range events {
		p.handleEvent(ev)
	}
	p.camera = p.cameraFor()

	if p.world.Over() {
		p.state = state.StateGameOver
		p.saveRecording()
	}
}

func (p *Playing) handleEvent(ev system.Event) {
	switch ev.Kind {
	case system.EventEnemyKilled:
		p.kills++
		p.log.Debug("enemy killed", zap.Uint64("frame", ev.Frame), zap.Int("kills", p.kills))
	case system.EventHitAbsorbed:
		p.log.Info("lethal hit absorbed", zap.Uint64("frame", ev.Frame))
	case system.EventGameOver:
		p.log.Info("game over", zap.Uint64("frame", ev.Frame), zap.Int("kills", p.kills))
	}
}

// cameraFor centres the view on the player, clamped to the world.
func (p *Playing) cameraFor() geom.Vec {
	player, ok := p.world.Player()
	if !ok {
		return p.camera
	}
	world := p.world.Index().Bounds().Rect()
	c := player.Center()
	cam := geom.Vec{
		X: c.X - float64(p.opts.ScreenW)/2,
		Y: c.Y - float64(p.opts.ScreenH)/2,
	}
	cam.X = clampAxis(cam.X, world.W-float64(p.opts.ScreenW))
	cam.Y = clampAxis(cam.Y, world.H-float64(p.opts.ScreenH))
	return cam
}

func clampAxis(v, limit float64) float64 {
	if v > limit {
		v = limit
	}
	if v < 0 {
		v = 0
	}
	return v
}

// saveRecording finishes the recording and stores it once.
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.saved || p.recorder.FrameCount() == 0 || p.opts.Store == nil {
		return
	}

	data := p.recorder.Finish()
	name := replay.GenerateName(p.opts.Level.ID, p.started)
	if err := p.opts.Store.Save(name, data); err != nil {
		p.log.Error("failed to save recording", zap.Error(err))
		return
	}
	p.saved = true
	p.log.Info("recording saved",
		zap.String("name", name),
		zap.Int("frames", len(data.Frames)),
		zap.String("digest", data.Digest))
}

// World returns the simulated world.
func (p *Playing) World() *system.World {
	return p.world
}

// State returns the scene state.
func (p *Playing) State() state.GameState {
	return p.state
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	p.drawTiles(screen)
	p.world.Each(func(_ ecs.Handle, e *entity.Entity) {
		p.drawEntity(screen, e)
	})
	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, color.RGBA{0, 0, 0, 128}, "PAUSED\n\nPress ESC to resume")
	case state.StateGameOver:
		p.drawOverlay(screen, color.RGBA{100, 0, 0, 180},
			fmt.Sprintf("GAME OVER\n\nEnemies defeated: %d\n\nPress R to restart", p.kills))
	case state.StateReplayDone:
		p.drawOverlay(screen, color.RGBA{0, 0, 60, 160}, "REPLAY FINISHED\n\nPress R to watch again")
	}
}

func tileColor(t tile.CollisionType) color.Color {
	switch t {
	case tile.SemiSolid:
		return colorSemiSolid
	case tile.Slippery:
		return colorSlippery
	case tile.Rough:
		return colorRough
	case tile.OneWay:
		return colorOneWay
	default:
		return colorSolid
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image) {
	view := geom.Rect{X: p.camera.X, Y: p.camera.Y, W: float64(p.opts.ScreenW), H: float64(p.opts.ScreenH)}
	idx := p.world.Index()

	for _, c := range p.tiles {
		r := c.Rect()
		if !r.Intersects(view) {
			continue
		}
		t := idx.TypeAt(c)
		h := r.H
		// Platforms are drawn as a ledge
		if t == tile.SemiSolid || t == tile.OneWay {
			h = r.H / 4
		}
		ebitenutil.DrawRect(screen, r.X-p.camera.X, r.Y-p.camera.Y, r.W, h, tileColor(t))
	}
}

func (p *Playing) drawEntity(screen *ebiten.Image, e *entity.Entity) {
	if !e.Live() {
		return
	}

	var c color.Color
	switch e.Kind {
	case entity.KindPlayer:
		c = colorPlayer
	case entity.KindPatrolEnemy:
		c = colorPatrol
	case entity.KindTurretEnemy:
		c = colorTurret
	case entity.KindProjectile:
		c = colorEnemyShot
		if e.Projectile.Owner == entity.OwnerPlayer {
			c = colorPlayerShot
		}
	}
	// Flash while invincible
	if e.IsInvincible() && int(e.Body.Invincibility/4)%2 == 0 {
		c = colorFlash
	}

	r := e.Rect()
	// Positions keep full precision; only the drawn rect is rounded
	x, y := float64(int(r.X-p.camera.X)), float64(int(r.Y-p.camera.Y))
	ebitenutil.DrawRect(screen, x, y, r.W, r.H, c)

	if p.opts.Debug && e.Player != nil {
		center := e.Center().Sub(p.camera)
		aim := e.Player.Aim.Sub(p.camera)
		ebitenutil.DrawLine(screen, center.X, center.Y, aim.X, aim.Y, colorAim)
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	player, ok := p.world.Player()
	if ok && player.MaxHealth > 0 {
		barX := 10.0
		barY := float64(p.opts.ScreenH - 20)
		barW := 200.0
		barH := 10.0

		ebitenutil.DrawRect(screen, barX, barY, barW, barH, colorHealthBG)
		ratio := max(float64(player.Health)/float64(player.MaxHealth), 0)
		ebitenutil.DrawRect(screen, barX, barY, barW*ratio, barH, colorHealthFG)

		weapon := "none"
		if player.Player.Weapon != nil {
			weapon = player.Player.Weapon.Def.Name
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HP %d  Weapon %s  Kills %d", player.Health, weapon, p.kills), 10, p.opts.ScreenH-38)
	}

	text := "A/D: Move | W/Space: Jump | S: Drop | LClick/J: Fire | ESC: Pause | F5: Save replay"
	if p.replayer != nil {
		text = fmt.Sprintf("REPLAY %d/%d", p.replayer.CurrentFrame(), p.replayer.TotalFrames())
	}
	ebitenutil.DebugPrint(screen, text)

	if p.opts.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s tps=%.0f", p.world, ebiten.ActualTPS()), 10, 20)
	}
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.Color, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.opts.ScreenW), float64(p.opts.ScreenH), c)
	ebitenutil.DebugPrintAt(screen, text, p.opts.ScreenW/2-60, p.opts.ScreenH/2-30)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}
