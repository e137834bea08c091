// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	"math"
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/glecs/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Game implements ebiten.Game by updating a scene once per Ebiten tick inside
// an ImGui frame, then drawing the ImGui overlay.
type Game struct {
	scene   *ecs.Scene
	backend ImguiBackend
	last    time.Time

	// DrawScene draws game content beneath the ImGui overlay.
	DrawScene func(screen *ebiten.Image)
}

var _ ebiten.Game = (*Game)(nil)

func NewGame(scene *ecs.Scene, backend ImguiBackend) *Game {
	return &Game{scene: scene, backend: backend}
}

// Update runs the scene's systems with the milliseconds elapsed since the
// previous tick.
func (g *Game) Update() error {
	now := time.Now()
	dt := frameDelta(g.last, now, ebiten.TPS())
	g.last = now

	g.backend.BeginFrame()
	err := g.scene.Update(dt)
	g.backend.EndFrame()
	return err
}

// frameDelta returns the milliseconds between last and now. The first tick
// assumes one tick at tps. The result is never zero.
func frameDelta(last, now time.Time, tps int) float64 {
	var dt float64
	switch {
	case !last.IsZero():
		dt = float64(now.Sub(last)) / float64(time.Millisecond)
	case tps > 0:
		dt = 1000.0 / float64(tps)
	}
	if dt <= 0 {
		dt = math.SmallestNonzeroFloat64
	}
	return dt
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.DrawScene != nil {
		g.DrawScene(screen)
	}
	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
