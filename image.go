package juliafatou

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// RGB is an in-memory image of 8-bit RGB pixels without alpha.
// Pix holds the pixels row by row, three bytes per pixel.
type RGB struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

// NewRGB returns a black image of the given size.
func NewRGB(w, h int) *RGB {
	return &RGB{
		Pix:    make([]byte, w*h*3),
		Stride: w * 3,
		Rect:   image.Rect(0, 0, w, h),
	}
}

// RGBFromPix wraps pix as a w×h image without copying.
// It fails with ErrImageSize if len(pix) is not w*h*3.
func RGBFromPix(w, h int, pix []byte) (*RGB, error) {
	if w <= 0 || h <= 0 || w > math.MaxInt/3/h || len(pix) != w*h*3 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrImageSize, len(pix), w, h)
	}
	return &RGB{Pix: pix, Stride: w * 3, Rect: image.Rect(0, 0, w, h)}, nil
}

func (p *RGB) ColorModel() color.Model { return color.RGBAModel }

func (p *RGB) Bounds() image.Rectangle { return p.Rect }

func (p *RGB) At(x, y int) color.Color {
	return p.RGBAAt(x, y)
}

// RGBAAt returns the opaque colour at (x, y).
func (p *RGB) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	return color.RGBA{s[0], s[1], s[2], 0xff}
}

// SetRGB sets the pixel at (x, y). Alpha is ignored.
func (p *RGB) SetRGB(x, y int, c color.RGBA) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	s[0], s[1], s[2] = c.R, c.G, c.B
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p *RGB) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

// ToRGBA converts the image to an opaque *image.RGBA.
func (p *RGB) ToRGBA() *image.RGBA {
	dst := image.NewRGBA(p.Rect)
	w, h := p.Rect.Dx(), p.Rect.Dy()
	for y := 0; y < h; y++ {
		src := p.Pix[y*p.Stride : y*p.Stride+w*3]
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for x := 0; x < w; x++ {
			row[x*4+0] = src[x*3+0]
			row[x*4+1] = src[x*3+1]
			row[x*4+2] = src[x*3+2]
			row[x*4+3] = 0xff
		}
	}
	return dst
}

// RGBFromImage copies any image into a new RGB image, dropping alpha.
func RGBFromImage(src image.Image) *RGB {
	b := src.Bounds()
	dst := NewRGB(b.Dx(), b.Dy())
	if rgba, ok := src.(*image.RGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+b.Dx()*4]
			out := dst.Pix[y*dst.Stride : y*dst.Stride+b.Dx()*3]
			for x := 0; x < b.Dx(); x++ {
				out[x*3+0] = row[x*4+0]
				out[x*3+1] = row[x*4+1]
				out[x*3+2] = row[x*4+2]
			}
		}
		return dst
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(src.At(x, y)).(color.RGBA)
			dst.SetRGB(x-b.Min.X, y-b.Min.Y, c)
		}
	}
	return dst
}
