package body

import (
	"errors"
	"fmt"
)

var (
	ErrMissingPeriod = errors.New("non-root body has no orbital period")
	ErrBadPeriod     = errors.New("orbital period must be positive and finite")
	ErrBadDiameter   = errors.New("diameter must be positive and finite")
	ErrBadDay        = errors.New("day length must be positive and finite")
	ErrBadColor      = errors.New("color must be #rrggbb")
	ErrNoScene       = errors.New("nil scene")
)

// ConfigError reports an invalid body definition at construction time
// Path is the slash-joined chain of names from the root to the offending body
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("body %q: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
