package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/scene"
)

const (
	hudRows    = 2
	cellAspect = 2.0 // terminal cells are about twice as tall as wide

	discRune = '█'
	dotRune  = '•'
)

// Renderer rasterizes a scene as shaded discs onto a tcell screen
type Renderer struct {
	screen tcell.Screen
	status render.Status
	help   string
}

// NewRenderer wraps an initialized screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, help: render.HelpLine}
}

// SetStatus sets the HUD contents for the next Draw
func (r *Renderer) SetStatus(s render.Status) {
	r.status = s
}

// Viewport returns the drawable area above the HUD
func (r *Renderer) Viewport() scene.Viewport {
	w, h := r.screen.Size()
	return scene.NewViewport(w, max(0, h-hudRows), cellAspect)
}

// Draw implements scene.Renderer
func (r *Renderer) Draw(sc *scene.Scene) error {
	w, h := r.screen.Size()
	viewH := max(0, h-hudRows)

	bg := rgb(sc.Background)
	bgStyle := tcell.StyleDefault.Background(bg)
	r.screen.SetStyle(bgStyle)
	r.screen.Clear()

	vp := r.Viewport()
	for _, p := range sc.DrawOrder(vp) {
		m := sc.Meshes[p.Index]
		r.drawDisc(p, m.Color, render.Emissive(p.Index), bg, w, viewH)
	}

	hudStyle := tcell.StyleDefault.Background(tcell.ColorBlack)
	r.fillRow(viewH, w, hudStyle)
	r.fillRow(viewH+1, w, hudStyle)
	r.writeStr(1, viewH, r.status.Line(), hudStyle.Foreground(tcell.NewRGBColor(220, 220, 230)))
	r.writeStr(1, viewH+1, r.help, hudStyle.Foreground(tcell.NewRGBColor(100, 100, 110)))

	r.screen.Show()
	return nil
}

func (r *Renderer) drawDisc(p scene.Projected, c color.RGBA, flat bool, bg tcell.Color, w, viewH int) {
	// Sub-cell discs still show as a dot so distant bodies stay visible
	if p.RadiusY < 0.5 {
		x, y := int(p.X), int(p.Y)
		if x >= 0 && x < w && y >= 0 && y < viewH {
			r.screen.SetContent(x, y, dotRune, nil, tcell.StyleDefault.Foreground(rgb(c)).Background(bg))
		}
		return
	}

	minX := max(0, int(math.Floor(p.X-p.RadiusX)))
	maxX := min(w-1, int(math.Ceil(p.X+p.RadiusX)))
	minY := max(0, int(math.Floor(p.Y-p.RadiusY)))
	maxY := min(viewH-1, int(math.Ceil(p.Y+p.RadiusY)))

	for y := minY; y <= maxY; y++ {
		dy := (float64(y) + 0.5 - p.Y) / p.RadiusY
		for x := minX; x <= maxX; x++ {
			dx := (float64(x) + 0.5 - p.X) / p.RadiusX
			shaded, ok := render.Shade(c, dx, dy)
			if !ok {
				continue
			}
			if flat {
				shaded = c
			}
			r.screen.SetContent(x, y, discRune, nil, tcell.StyleDefault.Foreground(rgb(shaded)).Background(bg))
		}
	}
}

func (r *Renderer) fillRow(y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (r *Renderer) writeStr(x, y int, s string, style tcell.Style) {
	w, _ := r.screen.Size()
	for _, ch := range s {
		if x >= w {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

var _ scene.Renderer = (*Renderer)(nil)
