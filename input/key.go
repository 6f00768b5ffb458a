package input

// Key is one of the fixed set of polled keys
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyF
	KeyR

	KeyCount
)

var keyNames = [KeyCount]string{
	KeyUp:    "up",
	KeyDown:  "down",
	KeyLeft:  "left",
	KeyRight: "right",
	KeyW:     "w",
	KeyA:     "a",
	KeyS:     "s",
	KeyD:     "d",
	KeySpace: "space",
	KeyF:     "f",
	KeyR:     "r",
}

func (k Key) String() string {
	if k < KeyCount {
		return keyNames[k]
	}
	return "unknown"
}

// Action aliases accepted in config files next to the key names
var actionNames = map[string]Key{
	"pan_forward": KeyW,
	"pan_left":    KeyA,
	"pan_back":    KeyS,
	"pan_right":   KeyD,
	"fast":        KeySpace,
	"reset":       KeyF,
	"banish":      KeyR,
}

// KeyByName resolves a key or action name as used in config files
func KeyByName(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name {
			return Key(k), true
		}
	}
	k, ok := actionNames[name]
	return k, ok
}
