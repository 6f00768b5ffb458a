package body

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

const defaultDayHours = 24

// Spec is the literal definition of a body and its satellites
// Period of zero means absent and is only legal on the root
type Spec struct {
	Name     string     `toml:"name" json:"name"`
	Diameter float64    `toml:"diameter" json:"diameter"`
	Position [3]float64 `toml:"position" json:"position"`
	Day      float64    `toml:"day" json:"day"`
	Period   float64    `toml:"period" json:"period"`
	Color    string     `toml:"color" json:"color"`
	Children []Spec     `toml:"children" json:"children,omitempty"`
}

// Validate checks the whole tree rooted at s
func (s Spec) Validate() error {
	return s.validate("", true)
}

func (s Spec) validate(prefix string, root bool) error {
	path := s.Name
	if prefix != "" {
		path = prefix + "/" + s.Name
	}

	if !positiveFinite(s.Diameter) {
		return &ConfigError{Path: path, Err: ErrBadDiameter}
	}
	if s.Day != 0 && !positiveFinite(s.Day) {
		return &ConfigError{Path: path, Err: ErrBadDay}
	}
	if !root {
		if s.Period == 0 {
			return &ConfigError{Path: path, Err: ErrMissingPeriod}
		}
		if !positiveFinite(s.Period) {
			return &ConfigError{Path: path, Err: ErrBadPeriod}
		}
	}
	if _, err := parseColor(s.Color); err != nil {
		return &ConfigError{Path: path, Err: err}
	}

	for _, c := range s.Children {
		if err := c.validate(path, false); err != nil {
			return err
		}
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// parseColor decodes "#rrggbb"; empty yields a neutral grey
func parseColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
