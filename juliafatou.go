// Package juliafatou holds the shared types of the Julia/Fatou renderer:
// the viewport onto the complex plane, the field parameters of the two
// blended Julia sets and the render job tying them together.
//
// The computation itself lives in the render package, colours in palette
// and encoding in output.
package juliafatou

import (
	"fmt"
	"math"

	"github.com/marben/juliafatou/palette"
)

const (
	// MaxIter is the escape iteration limit.
	MaxIter = 1024

	// EscapeRadius2 is the squared magnitude above which an orbit has escaped.
	EscapeRadius2 = 5.0

	// NoBlur is the blur sigma that disables post-render blurring.
	// It is a sentinel; a real Gaussian with sigma 1 is never applied.
	NoBlur float32 = 1.0
)

// Viewport selects the rectangle of the complex plane that is rendered.
type Viewport struct {
	Width, Height int
	// Scale is the height of the viewport in the complex plane.
	Scale float64
	// OffsetX and OffsetY move the viewport; 0,0 keeps the origin centered.
	OffsetX, OffsetY float64
}

// Validate reports whether the viewport can be rendered.
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrConfig, v.Width, v.Height)
	}
	if v.Width > math.MaxInt/3/v.Height {
		return fmt.Errorf("%w: dimensions %dx%d are too large", ErrConfig, v.Width, v.Height)
	}
	if !(v.Scale > 0) || math.IsInf(v.Scale, 0) {
		return fmt.Errorf("%w: scale must be a positive number, got %v", ErrConfig, v.Scale)
	}
	if isBad(v.OffsetX) || isBad(v.OffsetY) {
		return fmt.Errorf("%w: offset must be finite, got %v,%v", ErrConfig, v.OffsetX, v.OffsetY)
	}
	return nil
}

// Pixels returns the number of bytes of the RGB8 buffer for this viewport.
func (v Viewport) Pixels() int {
	return v.Width * v.Height * 3
}

// Params are the parameters of the two blended Julia fields.
type Params struct {
	// Power is the exponent in z^Power + c.
	Power uint
	// C is the constant of the primary field.
	C complex128
	// Diverge shifts the constant of the secondary field by (Diverge, -Diverge).
	Diverge float64
	// Factor weights the secondary field; negative values subtract it.
	Factor float64
	// Intensity multiplies the blended value before the gradient lookup.
	Intensity float64
	// Invert flips the blended value around 255.
	Invert bool
}

// Validate reports whether the parameters describe a renderable field.
func (p Params) Validate() error {
	if p.Power < 1 {
		return fmt.Errorf("%w: power must be at least 1", ErrConfig)
	}
	if p.Factor == -1 {
		return fmt.Errorf("%w: factor must not be -1", ErrConfig)
	}
	if isBad(real(p.C)) || isBad(imag(p.C)) {
		return fmt.Errorf("%w: complex constant must be finite, got %v", ErrConfig, p.C)
	}
	for name, f := range map[string]float64{"factor": p.Factor, "diverge": p.Diverge, "intensity": p.Intensity} {
		if isBad(f) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrConfig, name, f)
		}
	}
	return nil
}

// Constants returns the primary and secondary field constants.
func (p Params) Constants() (primary, secondary complex128) {
	return p.C, complex(real(p.C)+p.Diverge, imag(p.C)-p.Diverge)
}

// Job is a complete render request. It is read-only once rendering starts.
type Job struct {
	Viewport
	Params

	// Style picks the three gradient colours.
	Style palette.Style
	// ColorFile is read when Style is palette.Config.
	// Empty means palette.DefaultColorFile.
	ColorFile string

	// Threads is the number of render workers; 0 uses the available parallelism.
	Threads int
	// Blur is the Gaussian sigma applied after rendering; NoBlur skips it.
	Blur float32
	// Output is the file written by render.SaveFile.
	Output string
}

// DefaultJob returns a job with the stock settings.
func DefaultJob() Job {
	return Job{
		Viewport: Viewport{
			Width:  1200,
			Height: 1200,
			Scale:  3.0,
		},
		Params: Params{
			Power:     2,
			C:         Default.C,
			Diverge:   0.01,
			Factor:    -0.25,
			Intensity: 3.0,
		},
		Style:  palette.Greyscale,
		Blur:   NoBlur,
		Output: "output.png",
	}
}

// Validate checks the whole job before any rendering work starts.
func (j Job) Validate() error {
	if err := j.Viewport.Validate(); err != nil {
		return err
	}
	if err := j.Params.Validate(); err != nil {
		return err
	}
	if !j.Style.Valid() {
		return fmt.Errorf("%w: unknown color style %d", ErrConfig, j.Style)
	}
	if j.Threads < 0 {
		return fmt.Errorf("%w: threads must not be negative, got %d", ErrConfig, j.Threads)
	}
	if j.Blur < 0 || isBad(float64(j.Blur)) {
		return fmt.Errorf("%w: blur must be a non-negative number, got %v", ErrConfig, j.Blur)
	}
	return nil
}

func isBad(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
