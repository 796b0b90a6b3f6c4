package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DomainMin and DomainMax bound the gradient domain.
	DomainMin = 0.0
	DomainMax = 255.0
)

// Gradient maps values to colours by RGB-linear interpolation between
// three stops placed at 0, 127.5 and 255. Values outside the domain are
// mirrored back into it.
//
// A Gradient is immutable and safe for concurrent use.
type Gradient struct {
	stops [3]colorful.Color
	pos   [3]float64
}

// NewGradient builds a gradient from c.
func NewGradient(c Colors) *Gradient {
	g := &Gradient{
		pos: [3]float64{DomainMin, (DomainMin + DomainMax) / 2, DomainMax},
	}
	for i, col := range c {
		g.stops[i] = colorful.Color{R: float64(col.R) / 255, G: float64(col.G) / 255, B: float64(col.B) / 255}
	}
	return g
}

// At returns the colour for v. Non-finite values map to the domain start.
func (g *Gradient) At(v float64) color.RGBA {
	t := reflect((v - DomainMin) / (DomainMax - DomainMin))
	v = DomainMin + t*(DomainMax-DomainMin)

	i := 0
	if v > g.pos[1] {
		i = 1
	}
	lt := (v - g.pos[i]) / (g.pos[i+1] - g.pos[i])
	r, gr, b := g.stops[i].BlendRgb(g.stops[i+1], lt).RGB255()
	return color.RGBA{r, gr, b, 0xff}
}

// reflect folds t into [0, 1], mirroring at every integer boundary.
func reflect(t float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	t = math.Mod(math.Abs(t), 2)
	if t > 1 {
		t = 2 - t
	}
	return t
}
