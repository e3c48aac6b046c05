// Package game provides the ebiten loop that drives the current Scene.
package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/brawl/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	ticks   int
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initial scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initial,
		screenW: screenW,
		screenH: screenH,
	}
	g.current.OnEnter()
	return g
}

// Update runs one tick of the current scene and handles scene transitions.
// A scene returning scene.ErrQuit ends the loop without an error.
func (g *Game) Update() error {
	next, err := g.current.Update()
	if errors.Is(err, scene.ErrQuit) {
		g.current.OnExit()
		return ebiten.Termination
	}
	if err != nil {
		return err
	}
	g.ticks++

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// Ticks returns the number of successful updates
func (g *Game) Ticks() int {
	return g.ticks
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}
