package window

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/scene"
)

const (
	defaultWidth  = 1024
	defaultHeight = 768
	hudMargin     = 4
)

// ebiten key names differ from keymap tokens for paging keys
var tokenAliases = map[string]string{
	"pgup": "pageup",
	"pgdn": "pagedown",
}

// keyForToken resolves a keymap token to an ebiten key
func keyForToken(tok string) (ebiten.Key, error) {
	if alias, ok := tokenAliases[tok]; ok {
		tok = alias
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(tok)); err != nil {
		return 0, err
	}
	return k, nil
}

// Options configures the window backend
// Cancelling Context closes the window on the next update
type Options struct {
	Context context.Context
	TPS     int
	Title   string
	Keymap  input.Keymap
}

// Game adapts the updater to ebiten's fixed-rate Update/Draw cycle
type Game struct {
	ctx      context.Context
	u        *engine.Updater
	dt       float64
	bindings [input.KeyCount][]ebiten.Key
	quitKey  bool // q quits unless the keymap claims it
	width    int
	height   int
}

// NewGame resolves keymap tokens to ebiten keys
func NewGame(u *engine.Updater, opts Options) (*Game, error) {
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	km := opts.Keymap
	if km == nil {
		km = input.DefaultKeymap()
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	g := &Game{
		ctx:     ctx,
		u:       u,
		dt:      1 / float64(opts.TPS),
		quitKey: true,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	for k := input.Key(0); k < input.KeyCount; k++ {
		for _, tok := range km[k] {
			if tok == "q" {
				g.quitKey = false
			}
			ek, err := keyForToken(tok)
			if err != nil {
				return nil, fmt.Errorf("bind %s: %w", k, err)
			}
			g.bindings[k] = append(g.bindings[k], ek)
		}
	}
	return g, nil
}

// Poll implements input.Source from the live keyboard and wheel state
func (g *Game) Poll() input.Snapshot {
	var s input.Snapshot
	for k := input.Key(0); k < input.KeyCount; k++ {
		for _, ek := range g.bindings[k] {
			if ebiten.IsKeyPressed(ek) {
				s.Set(k, true)
				break
			}
		}
	}
	_, s.Scroll = ebiten.Wheel()
	return s
}

// Update ticks the simulation by one fixed step
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || (g.quitKey && ebiten.IsKeyPressed(ebiten.KeyQ)) {
		return ebiten.Termination
	}
	g.u.PollAndTick(g, g.dt)
	return nil
}

// Draw paints every visible body as a lit disc, far to near
func (g *Game) Draw(screen *ebiten.Image) {
	sc := g.u.Scene
	screen.Fill(sc.Background)

	vp := scene.NewViewport(g.width, g.height, 1)
	for _, p := range sc.DrawOrder(vp) {
		c := sc.Meshes[p.Index].Color
		cx, cy, r := float32(p.X), float32(p.Y), float32(p.RadiusY)
		if r < 1 {
			r = 1
		}

		if render.Emissive(p.Index) {
			vector.DrawFilledCircle(screen, cx, cy, r, c, true)
			continue
		}
		// Dark limb, then a lit cap offset toward the light overhead
		base, _ := render.Shade(c, 0, 0.95)
		lit, _ := render.Shade(c, 0, -0.6)
		vector.DrawFilledCircle(screen, cx, cy, r, base, true)
		vector.DrawFilledCircle(screen, cx, cy-r*0.2, r*0.75, render.Blend(base, lit, 0.8), true)
	}

	ebitenutil.DebugPrintAt(screen, render.StatusOf(g.u).Line(), hudMargin, hudMargin)
	ebitenutil.DebugPrintAt(screen, render.HelpLine, hudMargin, g.height-16-hudMargin)
}

// Layout tracks the window size one-to-one
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it closes
func Run(u *engine.Updater, opts Options) error {
	g, err := NewGame(u, opts)
	if err != nil {
		return err
	}

	title := opts.Title
	if title == "" {
		title = "orrery"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(defaultWidth, defaultHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(1/g.dt + 0.5))

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

var _ input.Source = (*Game)(nil)
