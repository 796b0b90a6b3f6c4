package render

import "github.com/marben/juliafatou"

// Mapping converts pixel coordinates to points of the complex plane.
type Mapping struct {
	// Step is the distance between neighbouring pixels, equal on both axes.
	Step float64
	// OffsetX and OffsetY are the effective offsets, with Pad already
	// folded into OffsetX so that the origin sits in the middle of the image.
	OffsetX, OffsetY float64
	Pad              float64
}

// NewMapping derives the mapping for v.
func NewMapping(v juliafatou.Viewport) Mapping {
	pad := v.Scale / 2
	ratio := float64(v.Width) / float64(v.Height)
	return Mapping{
		Step:    v.Scale / float64(v.Height),
		OffsetX: (v.OffsetX - pad) + pad*ratio,
		OffsetY: v.OffsetY,
		Pad:     pad,
	}
}

// Point returns the complex starting point of the pixel in the given row
// and column. The column selects the real part and the row the imaginary part.
func (m Mapping) Point(row, col int) complex128 {
	return complex(
		float64(col)*m.Step-(m.Pad+m.OffsetX),
		float64(row)*m.Step-(m.Pad+m.OffsetY),
	)
}
