package input

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Named tokens for non-printable keys; single characters are tokens too
var namedTokens = map[string]struct{}{
	"up": {}, "down": {}, "left": {}, "right": {},
	"space": {}, "enter": {}, "tab": {}, "backspace": {},
	"home": {}, "end": {}, "pgup": {}, "pgdn": {},
}

// Keymap binds each Key to one or more backend-neutral tokens
// A token is either a single character ("w") or a named key ("up", "space")
type Keymap map[Key][]string

// DefaultKeymap returns arrows, WASD, space, f and r
func DefaultKeymap() Keymap {
	return Keymap{
		KeyUp:    {"up"},
		KeyDown:  {"down"},
		KeyLeft:  {"left"},
		KeyRight: {"right"},
		KeyW:     {"w"},
		KeyA:     {"a"},
		KeyS:     {"s"},
		KeyD:     {"d"},
		KeySpace: {"space"},
		KeyF:     {"f"},
		KeyR:     {"r"},
	}
}

// Clone returns a deep copy
func (km Keymap) Clone() Keymap {
	out := make(Keymap, len(km))
	for k, toks := range km {
		out[k] = append([]string(nil), toks...)
	}
	return out
}

// Lookup returns a reverse index from token to Key
// Later keys win on duplicate tokens, in Key order
func (km Keymap) Lookup() map[string]Key {
	idx := make(map[string]Key)
	for k := Key(0); k < KeyCount; k++ {
		for _, tok := range km[k] {
			idx[tok] = k
		}
	}
	return idx
}

// NormalizeToken lowercases named tokens and validates the result
// Single characters keep their case so "W" and "w" stay distinct
func NormalizeToken(tok string) (string, error) {
	tok = strings.TrimSpace(tok)
	if utf8.RuneCountInString(tok) == 1 {
		return tok, nil
	}
	lower := strings.ToLower(tok)
	if _, ok := namedTokens[lower]; ok {
		return lower, nil
	}
	return "", fmt.Errorf("invalid key token %q (expected single character or named key)", tok)
}

// IsNamedToken reports whether tok names a non-printable key
func IsNamedToken(tok string) bool {
	_, ok := namedTokens[tok]
	return ok
}
