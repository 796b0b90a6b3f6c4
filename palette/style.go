// Package palette resolves the three gradient colours of a render and
// builds the gradient that maps blended escape values to pixels.
package palette

import (
	"fmt"
	"image/color"
	"strings"
)

// Style selects where the three gradient colours come from.
type Style int

const (
	Bookworm Style = iota
	Jellyfish
	Ten
	Eleven
	Mint
	Greyscale
	Christmas
	Chameleon
	Plasma
	Plasma2
	// Config reads the colours from a CSV file.
	Config
	// Random draws the colours from crypto/rand.
	Random
)

var styleNames = [...]string{
	Bookworm:  "bookworm",
	Jellyfish: "jellyfish",
	Ten:       "ten",
	Eleven:    "eleven",
	Mint:      "mint",
	Greyscale: "greyscale",
	Christmas: "christmas",
	Chameleon: "chameleon",
	Plasma:    "plasma",
	Plasma2:   "plasma2",
	Config:    "config",
	Random:    "random",
}

// Colors are the three gradient stops in domain order.
type Colors [3]color.RGBA

var fixed = map[Style]Colors{
	Bookworm:  {rgb(5, 71, 92), rgb(10, 120, 115), rgb(184, 216, 215)},
	Jellyfish: {rgb(38, 0, 24), rgb(90, 25, 63), rgb(198, 70, 72)},
	Ten:       {rgb(4, 62, 185), rgb(2, 123, 230), rgb(105, 254, 255)},
	Eleven:    {rgb(2, 70, 217), rgb(1, 214, 244), rgb(209, 229, 254)},
	Mint:      {rgb(21, 21, 21), rgb(137, 184, 70), rgb(214, 214, 214)},
	Greyscale: {rgb(255, 255, 255), rgb(127, 127, 127), rgb(0, 0, 0)},
	Christmas: {rgb(31, 56, 35), rgb(209, 27, 79), rgb(250, 219, 82)},
	Chameleon: {rgb(11, 127, 109), rgb(35, 145, 108), rgb(21, 155, 110)},
	Plasma:    {rgb(35, 37, 83), rgb(36, 102, 156), rgb(219, 135, 75)},
	Plasma2:   {rgb(0, 87, 139), rgb(0, 147, 235), rgb(249, 249, 249)},
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 0xff}
}

// Styles returns every style in declaration order.
func Styles() []Style {
	s := make([]Style, len(styleNames))
	for i := range s {
		s[i] = Style(i)
	}
	return s
}

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	return s >= 0 && int(s) < len(styleNames)
}

// Fixed reports whether s is one of the built-in palettes.
func (s Style) Fixed() bool {
	_, ok := fixed[s]
	return ok
}

func (s Style) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

// ParseStyle returns the style with the given name. "file" is accepted as
// an alias of "config".
func ParseStyle(name string) (Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "file" {
		return Config, nil
	}
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color style %q", name)
}

func (s Style) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown color style %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Style) UnmarshalText(b []byte) error {
	v, err := ParseStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
