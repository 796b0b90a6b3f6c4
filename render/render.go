// Package render computes Julia/Fatou images. Rendering is a fork-join over
// disjoint horizontal bands of one RGB8 buffer: every worker owns its band
// exclusively and only reads the shared job and gradient.
package render

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/marben/juliafatou"
	"github.com/marben/juliafatou/palette"
)

// Option configures a render.
type Option func(*options)

type options struct {
	bandDone func(Band)
	colors   *palette.Colors
}

// WithBandDone registers fn to be called after each band is finished.
// fn runs on the worker goroutine and must be safe for concurrent use.
func WithBandDone(fn func(Band)) Option {
	return func(o *options) {
		o.bandDone = fn
	}
}

// WithColors renders with c instead of resolving the job's style.
func WithColors(c palette.Colors) Option {
	return func(o *options) {
		o.colors = &c
	}
}

// Workers returns the number of workers used for n requested threads.
func Workers(n int) int {
	if n > 0 {
		return n
	}
	return max(runtime.GOMAXPROCS(0), 1)
}

// ResolveColors resolves the job's colour style into three colours. File
// and random styles are read here, once, before any worker starts.
func ResolveColors(job juliafatou.Job) (palette.Colors, error) {
	src, err := job.Style.Source(job.ColorFile)
	if err != nil {
		return palette.Colors{}, fmt.Errorf("%w: %w", juliafatou.ErrConfig, err)
	}
	c, err := src.Colors()
	if err != nil {
		return palette.Colors{}, fmt.Errorf("%w: %w", juliafatou.ErrConfig, err)
	}

	log := juliafatou.Logger()
	switch job.Style {
	case palette.Config:
		log.Info("colors read from file", "path", job.ColorFile)
	case palette.Random:
		var csv strings.Builder
		_ = palette.WriteColors(&csv, c)
		log.Info("random colors", "csv", csv.String())
	}
	return c, nil
}

// Pixels renders job into a new width*height*3 RGB8 buffer.
//
// The job is validated first and the palette resolved before any worker is
// started. If any worker fails the whole render fails and no buffer is
// returned.
func Pixels(job juliafatou.Job, opts ...Option) ([]byte, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var colors palette.Colors
	if o.colors != nil {
		colors = *o.colors
	} else {
		var err error
		if colors, err = ResolveColors(job); err != nil {
			return nil, err
		}
	}
	grad := palette.NewGradient(colors)
	field := NewField(job)

	pix := make([]byte, job.Viewport.Pixels())
	workers := Workers(job.Threads)
	bands := Split(job.Width, job.Height, workers)
	if err := checkPartition(bands, len(pix), job.Width*3); err != nil {
		return nil, err
	}

	juliafatou.Logger().Debug("rendering",
		"width", job.Width,
		"height", job.Height,
		"workers", workers,
		"bands", len(bands),
		"rows_per_band", job.Height/workers+1,
	)

	err := runBands(pix, bands, func(b Band, dst []byte) {
		field.fill(dst, b, grad)
		if o.bandDone != nil {
			o.bandDone(b)
		}
	})
	if err != nil {
		return nil, err
	}
	return pix, nil
}

// runBands runs work once per band on its own goroutine and waits for all
// of them. Each call only sees its band's bytes; the slice capacity is
// capped so that appends cannot spill into a neighbour.
//
// A panicking worker is recovered and reported; the errors of all failed
// bands are joined.
func runBands(pix []byte, bands []Band, work func(Band, []byte)) error {
	errs := make([]error, len(bands))

	var wg sync.WaitGroup
	for i, b := range bands {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("band %d (rows %d-%d): %v", b.Index, b.Top, b.Top+b.Rows-1, r)
				}
			}()
			work(b, pix[b.Start:b.End:b.End])
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", juliafatou.ErrRender, err)
	}
	return nil
}
