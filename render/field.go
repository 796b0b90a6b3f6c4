package render

import (
	"github.com/marben/juliafatou"
	"github.com/marben/juliafatou/palette"
)

// Field blends two Julia sets whose constants differ by the job's
// divergence into one scalar per pixel.
type Field struct {
	mapping            Mapping
	width              int
	power              uint
	primary, secondary complex128
	factor, intensity  float64
	invert             bool
}

// NewField prepares the field for job. The job must be valid.
func NewField(job juliafatou.Job) *Field {
	primary, secondary := job.Constants()
	return &Field{
		mapping:   NewMapping(job.Viewport),
		width:     job.Width,
		power:     job.Power,
		primary:   primary,
		secondary: secondary,
		factor:    job.Factor,
		intensity: job.Intensity,
		invert:    job.Invert,
	}
}

// Mix returns the weighted blend of both escape values for a pixel,
// before inversion and intensity. Bounded orbits count as 0.
func (f *Field) Mix(row, col int) float64 {
	z := f.mapping.Point(row, col)
	a, _ := Escape(z, f.primary, juliafatou.MaxIter, f.power)
	b, _ := Escape(z, f.secondary, juliafatou.MaxIter, f.power)
	return (a + b*f.factor) / (1 + f.factor)
}

// Value returns the gradient input for a pixel. It is not clamped;
// the gradient reflects values outside its domain.
func (f *Field) Value(row, col int) float64 {
	x := f.Mix(row, col)
	if f.invert {
		x = 255 - x
	}
	return x * f.intensity
}

// fill shades the rows of band b into dst, which holds exactly those rows.
func (f *Field) fill(dst []byte, b Band, g *palette.Gradient) {
	stride := f.width * 3
	for r := 0; r < b.Rows; r++ {
		line := dst[r*stride : (r+1)*stride]
		row := b.Top + r
		for col := 0; col < f.width; col++ {
			c := g.At(f.Value(row, col))
			line[col*3+0] = c.R
			line[col*3+1] = c.G
			line[col*3+2] = c.B
		}
	}
}
