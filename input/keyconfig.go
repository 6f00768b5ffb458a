package input

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// LoadKeyConfig parses a TOML keymap file of `name = "token"` or
// `name = ["token", ...]` lines and merges it over the default keymap
func LoadKeyConfig(data []byte) (Keymap, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}
	return ParseKeymap(DefaultKeymap(), raw)
}

// ParseKeymap overrides base with bindings from a decoded TOML table
// A key listed in raw replaces all of its default bindings. A token taken by
// an override is removed from the keys raw does not mention; two overrides
// claiming the same token, or the same key, are an error.
func ParseKeymap(base Keymap, raw map[string]any) (Keymap, error) {
	result := base.Clone()
	owner := make(map[string]Key)
	overridden := make(map[Key]string)

	for name, val := range raw {
		k, ok := KeyByName(name)
		if !ok {
			return nil, fmt.Errorf("keymap: unknown key name %q", name)
		}
		if prev, dup := overridden[k]; dup {
			return nil, fmt.Errorf("keymap %q: key %s already bound by %q", name, k, prev)
		}

		var toks []string
		switch v := val.(type) {
		case string:
			toks = []string{v}
		case []any:
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("keymap %q: array items must be strings, got %T", name, item)
				}
				toks = append(toks, s)
			}
		case []string:
			toks = append([]string(nil), v...)
		default:
			return nil, fmt.Errorf("keymap %q: value must be string or array, got %T", name, val)
		}

		if len(toks) == 0 {
			return nil, fmt.Errorf("keymap %q: no bindings", name)
		}
		for i, tok := range toks {
			norm, err := NormalizeToken(tok)
			if err != nil {
				return nil, fmt.Errorf("keymap %q: %w", name, err)
			}
			if other, taken := owner[norm]; taken && other != k {
				return nil, fmt.Errorf("keymap %q: token %q already bound to %s", name, norm, other)
			}
			owner[norm] = k
			toks[i] = norm
		}
		overridden[k] = name
		result[k] = toks
	}

	// Untouched keys give up tokens claimed by an override
	for k, toks := range result {
		if _, ok := overridden[k]; ok {
			continue
		}
		kept := toks[:0]
		for _, tok := range toks {
			if _, taken := owner[tok]; !taken {
				kept = append(kept, tok)
			}
		}
		result[k] = kept
	}

	return result, nil
}
