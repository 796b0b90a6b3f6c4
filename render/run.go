package render

import (
	"fmt"
	"io"

	"github.com/marben/juliafatou"
	"github.com/marben/juliafatou/output"
)

// Image renders job and applies its blur.
func Image(job juliafatou.Job, opts ...Option) (*juliafatou.RGB, error) {
	pix, err := Pixels(job, opts...)
	if err != nil {
		return nil, err
	}
	img, err := juliafatou.RGBFromPix(job.Width, job.Height, pix)
	if err != nil {
		return nil, err
	}
	return output.Blur(img, job.Blur), nil
}

// SaveToBuffer renders job and writes it to w as PNG.
// Any io.WriteSeeker, such as an in-memory buffer or a file, may be used.
func SaveToBuffer(job juliafatou.Job, w io.Writer, opts ...Option) error {
	img, err := Image(job, opts...)
	if err != nil {
		return err
	}
	return output.Encode(w, img)
}

// SaveFile renders job and writes it to job.Output. The format follows
// the file extension and falls back to PNG.
func SaveFile(job juliafatou.Job, opts ...Option) error {
	if job.Output == "" {
		return fmt.Errorf("%w: no output file", juliafatou.ErrConfig)
	}
	img, err := Image(job, opts...)
	if err != nil {
		return err
	}
	return output.Save(job.Output, img)
}

// Renderer renders jobs in-process.
type Renderer struct {
	opts []Option
}

// NewRenderer returns a Renderer applying opts to every render.
func NewRenderer(opts ...Option) *Renderer {
	return &Renderer{opts: opts}
}

// GetImage implements juliafatou.ImageProvider.
func (r *Renderer) GetImage(job juliafatou.Job) (*juliafatou.RGB, error) {
	return Image(job, r.opts...)
}

var _ juliafatou.ImageProvider = (*Renderer)(nil)
