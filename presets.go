package juliafatou

import (
	"fmt"
	"sort"
)

// Preset is a named Julia constant.
type Preset struct {
	Name string
	C    complex128
}

// Classic Julia constants
var (
	// Default – twin spirals that the stock settings are tuned for
	Default = Preset{Name: "default", C: complex(-0.4, 0.6)}

	// Dendrite – c = i, a tree-like set with no interior
	Dendrite = Preset{Name: "dendrite", C: complex(0, 1)}

	// Douady Rabbit – three-lobed basins circling a period-3 cycle
	Rabbit = Preset{Name: "rabbit", C: complex(-0.123, 0.745)}

	// San Marco – the basilica seen from above, on the real axis
	SanMarco = Preset{Name: "san-marco", C: complex(-0.75, 0)}

	// Siegel Disk – nested rings around an irrationally neutral fixed point
	Siegel = Preset{Name: "siegel", C: complex(-0.391, -0.587)}

	// Dragon – branching filaments near the edge of the main cardioid
	Dragon = Preset{Name: "dragon", C: complex(-0.8, 0.156)}
)

var presets = map[string]Preset{}

func init() {
	for _, p := range []Preset{Default, Dendrite, Rabbit, SanMarco, Siegel, Dragon} {
		presets[p.Name] = p
	}
}

// LookupPreset returns the preset with the given name.
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: unknown preset %q", ErrConfig, name)
	}
	return p, nil
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
