package output

import (
	"image"

	"github.com/anthonynsimon/bild/transform"

	"github.com/marben/juliafatou"
)

// Thumbnail scales img down so that neither side exceeds maxSide, keeping
// the aspect ratio. Images that already fit are only converted.
func Thumbnail(img *juliafatou.RGB, maxSide int) *image.RGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img.ToRGBA()
	}

	tw, th := maxSide, maxSide
	if w >= h {
		th = max(h*maxSide/w, 1)
	} else {
		tw = max(w*maxSide/h, 1)
	}
	return transform.Resize(img.ToRGBA(), tw, th, transform.Linear)
}
