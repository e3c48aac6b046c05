// Package training provides the sandbox scene: one keyboard fighter against
// an idle dummy, with hit region overlays, recording and replay playback.
package training

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/brawl/internal/application/match"
	"github.com/younwookim/brawl/internal/application/replay"
	"github.com/younwookim/brawl/internal/application/scene"
	"github.com/younwookim/brawl/internal/application/state"
	"github.com/younwookim/brawl/internal/domain/combo"
	"github.com/younwookim/brawl/internal/domain/input"
	"github.com/younwookim/brawl/internal/domain/move"
	"github.com/younwookim/brawl/internal/ecs"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorStage      = color.RGBA{80, 80, 100, 255}
	colorIdle       = color.RGBA{100, 200, 100, 160}
	colorAttacking  = color.RGBA{230, 180, 60, 160}
	colorRecovering = color.RGBA{100, 100, 200, 160}
	colorStunned    = color.RGBA{200, 50, 50, 160}
	colorRegion     = color.RGBA{255, 80, 80, 110}
	colorSegment    = color.RGBA{255, 255, 255, 200}
	colorOverlay    = color.RGBA{0, 0, 0, 128}
)

// Source supplies the local fighter's held buttons each tick
type Source interface {
	Read() input.Buttons
}

// Options configures a Training scene
type Options struct {
	Match *match.Match
	Input Source

	ScreenW        int
	ScreenH        int
	PixelsPerUnit  float64
	StageHalfWidth float64

	// RecordPath enables recording when not empty
	RecordPath string

	// Replay plays back recorded inputs instead of reading Input
	Replay *replay.ReplayData

	// Verbose logs activations, hits and KOs
	Verbose bool
}

// Training is the sandbox scene
type Training struct {
	match *match.Match
	input Source
	state state.GameState

	screenW        int
	screenH        int
	ppu            float64
	stageHalfWidth float64
	overlay        bool

	recorder   *replay.Recorder
	recordPath string
	replayer   *replay.Replayer
	expected   string

	// justPressed defaults to inpututil.IsKeyJustPressed
	justPressed func(ebiten.Key) bool
}

// New creates a new Training scene
func New(opts Options) *Training {
	t := &Training{
		match:          opts.Match,
		input:          opts.Input,
		state:          state.StatePlaying,
		screenW:        opts.ScreenW,
		screenH:        opts.ScreenH,
		ppu:            opts.PixelsPerUnit,
		stageHalfWidth: opts.StageHalfWidth,
		overlay:        true,
		recordPath:     opts.RecordPath,
		justPressed:    inpututil.IsKeyJustPressed,
	}
	if t.ppu <= 0 {
		t.ppu = 1
	}

	if opts.Replay != nil {
		t.replayer = replay.NewReplayer(*opts.Replay)
		t.expected = opts.Replay.Digest
		t.state = state.StateReplaying
		log.Printf("Replaying session %s (%d frames)", t.replayer.Session(), t.replayer.TotalFrames())
	} else if opts.RecordPath != "" {
		t.recorder = replay.NewRecorder(t.fighterNames())
		log.Printf("Recording enabled: %s (session: %s)", opts.RecordPath, t.recorder.Data().Session)
	}

	if opts.Verbose {
		t.logEvents()
	}
	return t
}

func (t *Training) fighterNames() []string {
	w := t.match.World()
	names := make([]string, len(w.Fighters))
	for i, id := range w.Fighters {
		names[i] = w.Fighter[id].Name
	}
	return names
}

func (t *Training) logEvents() {
	w := t.match.World()
	t.match.OnActivate = func(id ecs.EntityID, attack string, facing move.Facing) {
		log.Printf("[%d] %s activates %s facing %s", t.match.Frame(), w.Fighter[id].Name, attack, facing)
	}
	t.match.OnHit = func(attacker, victim ecs.EntityID, out combo.HitOutcome) {
		log.Printf("[%d] %s hits %s with %s for %.2f (total %.2f)",
			t.match.Frame(), w.Fighter[attacker].Name, w.Fighter[victim].Name, out.Attack, out.Damage, out.Total)
	}
	t.match.OnKO = func(id ecs.EntityID, stocksLeft int) {
		log.Printf("[%d] %s KO, %d stocks left", t.match.Frame(), w.Fighter[id].Name, stocksLeft)
	}
}

// State returns the scene state
func (t *Training) State() state.GameState {
	return t.state
}

// Update advances the scene by one tick (implements scene.Scene)
func (t *Training) Update() (scene.Scene, error) {
	if t.justPressed(ebiten.KeyTab) {
		t.overlay = !t.overlay
	}
	if t.justPressed(ebiten.KeyR) {
		t.restart()
		return nil, nil
	}

	switch t.state {
	case state.StatePlaying, state.StateReplaying:
		if t.justPressed(ebiten.KeyEscape) {
			t.state = state.StatePaused
			return nil, nil
		}
		if t.justPressed(ebiten.KeyF5) {
			t.saveRecording()
		}
		return nil, t.step()
	case state.StatePaused:
		switch {
		case t.justPressed(ebiten.KeyEscape):
			t.state = t.resumeState()
		case t.justPressed(ebiten.KeyPeriod):
			return nil, t.step()
		case t.justPressed(ebiten.KeyQ):
			return nil, scene.ErrQuit
		}
	case state.StateReplayDone:
		if t.justPressed(ebiten.KeyEscape) || t.justPressed(ebiten.KeyQ) {
			return nil, scene.ErrQuit
		}
	}

	return nil, nil // nil = stay on this scene
}

func (t *Training) resumeState() state.GameState {
	if t.replayer != nil {
		return state.StateReplaying
	}
	return state.StatePlaying
}

// step runs one match tick with live or replayed input
func (t *Training) step() error {
	var inputs []input.Buttons
	if t.replayer != nil {
		next, ok := t.replayer.Next()
		if !ok {
			t.finishReplay()
			return nil
		}
		inputs = next
	} else {
		// The dummy gets no input
		inputs = []input.Buttons{t.input.Read()}
		if t.recorder != nil {
			t.recorder.RecordFrame(inputs)
		}
	}

	if err := t.match.Tick(inputs); err != nil {
		return fmt.Errorf("failed to advance match: %w", err)
	}
	return nil
}

func (t *Training) finishReplay() {
	t.state = state.StateReplayDone
	got := replay.FormatDigest(t.match.Digest())
	switch {
	case t.expected == "":
		log.Printf("Replay finished: %d frames, digest %s", t.replayer.TotalFrames(), got)
	case got == t.expected:
		log.Printf("Replay finished: digest %s matches", got)
	default:
		log.Printf("Replay finished: digest %s, recording has %s", got, t.expected)
	}
}

// saveRecording saves the current recording to file
func (t *Training) saveRecording() {
	if t.recorder == nil {
		return
	}

	filename := t.recordPath
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	t.recorder.Finish(t.match.Digest())
	if err := t.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, t.recorder.FrameCount())
	}
}

func (t *Training) restart() {
	t.match.Reset()
	switch {
	case t.replayer != nil:
		t.replayer.Reset()
		t.state = state.StateReplaying
	case t.recordPath != "":
		t.recorder = replay.NewRecorder(t.fighterNames())
		t.state = state.StatePlaying
		log.Printf("Recording restarted (session: %s)", t.recorder.Data().Session)
	default:
		t.state = state.StatePlaying
	}
}

// OnEnter is called when entering this scene
func (t *Training) OnEnter() {}

// OnExit saves any unsaved recording
func (t *Training) OnExit() {
	if t.recorder != nil && t.recorder.IsRecording() && t.recorder.FrameCount() > 0 {
		t.saveRecording()
	}
}

// worldToScreen maps world units (y-up, origin at stage center) to pixels
func (t *Training) worldToScreen(p move.Vec2) (float64, float64) {
	return float64(t.screenW)/2 + p.X*t.ppu, float64(t.screenH)*0.75 - p.Y*t.ppu
}

// screenRect returns the pixel rect of a world-space box
func (t *Training) screenRect(min, max move.Vec2) (x, y, w, h float64) {
	x, y = t.worldToScreen(move.Vec2{X: min.X, Y: max.Y})
	return x, y, (max.X - min.X) * t.ppu, (max.Y - min.Y) * t.ppu
}

func stateColor(s state.FighterState) color.Color {
	switch s {
	case state.Attacking:
		return colorAttacking
	case state.Recovering:
		return colorRecovering
	case state.Stunned:
		return colorStunned
	default:
		return colorIdle
	}
}

// Draw renders the scene
func (t *Training) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	x, y, w, h := t.screenRect(move.Vec2{X: -t.stageHalfWidth, Y: -4}, move.Vec2{X: t.stageHalfWidth, Y: 0})
	ebitenutil.DrawRect(screen, x, y, w, h, colorStage)

	t.drawFighters(screen)
	if t.overlay {
		t.drawRegions(screen)
	}
	t.drawHUD(screen)

	switch t.state {
	case state.StatePaused:
		t.drawBanner(screen, "PAUSED\n\nESC: Resume\n.: Step\nQ: Quit")
	case state.StateReplayDone:
		t.drawBanner(screen, "REPLAY DONE\n\nR: Again\nESC: Quit")
	}
}

func (t *Training) drawFighters(screen *ebiten.Image) {
	world := t.match.World()
	for _, id := range world.Fighters {
		pos := world.Body[id].Pos
		lo, hi := world.Hurtbox[id].Shape.Bounds()
		x, y, w, h := t.screenRect(lo.Add(pos), hi.Add(pos))
		ebitenutil.DrawRect(screen, x, y, w, h, stateColor(state.Of(world, id)))

		// Facing marker
		fx, fy := t.worldToScreen(pos.Add(move.Vec2{X: world.Fighter[id].Facing.Sign() * (hi.X - lo.X) / 2}))
		ebitenutil.DrawRect(screen, fx-1, fy-1, 3, 3, colorSegment)
	}
}

func (t *Training) drawRegions(screen *ebiten.Image) {
	world := t.match.World()
	for _, id := range t.match.Space().Live() {
		ref, ok := world.Regions.Lookup(id)
		if !ok {
			continue
		}
		origin := world.Body[ecs.EntityID(ref.Owner)].Pos
		for _, shape := range ref.Shapes {
			lo, hi := shape.Bounds()
			x, y, w, h := t.screenRect(lo.Add(origin), hi.Add(origin))
			ebitenutil.DrawRect(screen, x, y, w, h, colorRegion)

			a, b, _ := shape.Segment()
			ax, ay := t.worldToScreen(a.Add(origin))
			bx, by := t.worldToScreen(b.Add(origin))
			ebitenutil.DrawLine(screen, ax, ay, bx, by, colorSegment)
		}
	}
}

func (t *Training) drawHUD(screen *ebiten.Image) {
	for i, line := range t.hudLines() {
		ebitenutil.DebugPrintAt(screen, line, 8, 8+i*14)
	}
}

// hudLines returns one status line per fighter and a frame line
func (t *Training) hudLines() []string {
	world := t.match.World()
	lines := []string{fmt.Sprintf("frame %d  %s", t.match.Frame(), t.state)}
	for _, id := range world.Fighters {
		f := world.Fighter[id]
		attack := "-"
		if a := world.Attacking(id); a != nil {
			attack = a.Name()
		}
		lines = append(lines, fmt.Sprintf("%s  %.1f%%  stocks %d  %s  %s", f.Name, f.Damage, f.Stocks, state.Of(world, id), attack))
	}
	return lines
}

func (t *Training) drawBanner(screen *ebiten.Image, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(t.screenW), float64(t.screenH), colorOverlay)
	ebitenutil.DebugPrintAt(screen, text, t.screenW/2-50, t.screenH/2-30)
}
