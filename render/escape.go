package render

import (
	"math"

	"github.com/marben/juliafatou"
)

// Escape iterates z = z^power + c from z, at most limit times.
// Once |z|² exceeds juliafatou.EscapeRadius2 it returns the smoothed escape
// value and true. Orbits that stay bounded return 0 and false.
//
// power must be at least 1; callers validate it.
func Escape(z, c complex128, limit int, power uint) (float64, bool) {
	for i := range limit {
		if n := norm(z); n > juliafatou.EscapeRadius2 {
			return smooth(n, i), true
		}
		z = powu(z, power) + c
	}
	return 0, false
}

// smooth renormalizes an integer escape count so that neighbouring counts
// blend without bands. n is |z|² at escape.
func smooth(n float64, i int) float64 {
	return float64(i) + 2 - math.Log(math.Log(n))/math.Ln2
}

func norm(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// powu raises z to a non-negative integer power by squaring.
func powu(z complex128, p uint) complex128 {
	switch p {
	case 1:
		return z
	case 2:
		return z * z
	}
	r := complex(1, 0)
	for p > 0 {
		if p&1 == 1 {
			r *= z
		}
		p >>= 1
		if p > 0 {
			z *= z
		}
	}
	return r
}
