package term

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/render"
)

// Options configures the terminal frame loop
type Options struct {
	TPS   int
	MaxDt float64 // seconds; longer frame gaps are clamped
}

// Run drives u at opts.TPS until ctx is cancelled, the user quits, or the
// screen closes. Events are read on a separate goroutine and drained on the
// frame goroutine, so the updater is only touched from here.
func Run(ctx context.Context, screen tcell.Screen, u *engine.Updater, tr *Translator, opts Options) error {
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	if opts.MaxDt <= 0 {
		opts.MaxDt = 0.1
	}

	screen.EnableMouse()
	r := NewRenderer(screen)
	events := startEventReader(screen)

	ticker := time.NewTicker(time.Second / time.Duration(opts.TPS))
	defer ticker.Stop()

	lastTick := time.Now()
	r.SetStatus(render.StatusOf(u))
	if err := r.Draw(u.Scene); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				screen.Sync()
				continue
			}
			if tr.Handle(ev) {
				return nil
			}

		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(lastTick).Seconds()
			lastTick = now
			if dt > opts.MaxDt {
				dt = opts.MaxDt
			}

			u.PollAndTick(tr, dt)

			r.SetStatus(render.StatusOf(u))
			if err := r.Draw(u.Scene); err != nil {
				log.Printf("draw: %v", err)
			}
		}
	}
}

// startEventReader pumps PollEvent into a channel; it closes when the screen is finalized
func startEventReader(screen tcell.Screen) <-chan tcell.Event {
	ch := make(chan tcell.Event, 64)
	go func() {
		defer close(ch)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			// Drop on a full queue rather than block after Run returns
			select {
			case ch <- ev:
			default:
			}
		}
	}()
	return ch
}
