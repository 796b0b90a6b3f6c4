// Package output post-processes rendered images and writes them out.
package output

import (
	"math"

	"github.com/anthonynsimon/bild/convolution"

	"github.com/marben/juliafatou"
)

// Blur returns img blurred with a Gaussian of the given sigma.
//
// sigma == juliafatou.NoBlur is the "no blur" setting and returns img
// itself, unchanged; so does a sigma of zero.
func Blur(img *juliafatou.RGB, sigma float32) *juliafatou.RGB {
	if sigma == juliafatou.NoBlur || sigma <= 0 {
		return img
	}

	k := GaussianKernel(float64(sigma))
	juliafatou.Logger().Debug("blur", "sigma", sigma, "kernel", k.Width)

	// bild truncates to uint8 after each pass; a single 2D pass with a
	// 0.5 bias rounds exactly once.
	opts := &convolution.Options{Bias: 0.5, Wrap: false, KeepAlpha: true}
	return juliafatou.RGBFromImage(convolution.Convolve(img.ToRGBA(), outer(k), opts))
}

// outer returns the square kernel k^T k of a horizontal kernel k.
func outer(k *convolution.Kernel) *convolution.Kernel {
	n := k.Width
	sq := convolution.NewKernel(n, n)
	for y := range n {
		for x := range n {
			sq.Matrix[y*n+x] = k.Matrix[x] * k.Matrix[y]
		}
	}
	return sq
}

// GaussianKernel returns a normalized horizontal Gaussian kernel spanning
// three standard deviations on each side.
func GaussianKernel(sigma float64) *convolution.Kernel {
	half := int(math.Ceil(sigma * 3))
	size := half*2 + 1
	k := convolution.NewKernel(size, 1)

	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := range size {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		k.Matrix[i] = v
		sum += v
	}
	for i := range k.Matrix {
		k.Matrix[i] /= sum
	}
	return k
}
