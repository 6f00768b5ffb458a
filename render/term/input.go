package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/input"
)

// namedKeys maps tcell special keys to keymap tokens
var namedKeys = map[tcell.Key]string{
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyEnter:      "enter",
	tcell.KeyTab:        "tab",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
}

// Translator turns tcell events into held-key state
// Terminals report presses and auto-repeat only, so a key counts as held
// for the hold window after its last press
type Translator struct {
	lookup map[string]input.Key
	hold   *input.HoldTracker
}

// NewTranslator binds keymap tokens to keys
func NewTranslator(km input.Keymap, hold *input.HoldTracker) *Translator {
	if hold == nil {
		hold = input.NewHoldTracker(input.DefaultHoldWindow)
	}
	return &Translator{lookup: km.Lookup(), hold: hold}
}

// Token returns the keymap token for a key event, or "" if it has none
func Token(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		if ev.Rune() == ' ' {
			return "space"
		}
		return string(ev.Rune())
	}
	return namedKeys[ev.Key()]
}

// Handle records ev and reports whether it asks to quit
func (t *Translator) Handle(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true
		}
		tok := Token(ev)
		if k, ok := t.lookup[tok]; ok {
			t.hold.Press(k)
			return false
		}
		return tok == "q"

	case *tcell.EventMouse:
		btn := ev.Buttons()
		if btn&tcell.WheelUp != 0 {
			t.hold.Scroll(1)
		}
		if btn&tcell.WheelDown != 0 {
			t.hold.Scroll(-1)
		}
	}
	return false
}

// Poll implements input.Source
func (t *Translator) Poll() input.Snapshot {
	return t.hold.Poll()
}

var _ input.Source = (*Translator)(nil)
