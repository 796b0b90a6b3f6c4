package render

import (
	"fmt"

	"github.com/marben/juliafatou"
)

// Band is a run of whole rows of the pixel buffer handled by one worker.
type Band struct {
	Index int
	// Top is the first image row of the band; Rows may be less than the
	// nominal band height for the last band.
	Top, Rows int
	// Start and End are byte offsets into the pixel buffer.
	Start, End int
}

// Split partitions a width×height RGB8 buffer into bands for the given
// number of workers. Every band except possibly the last holds
// height/workers+1 rows; empty bands are not returned, so fewer bands than
// workers come back when workers does not divide height or exceeds it.
func Split(width, height, workers int) []Band {
	if workers < 1 {
		workers = 1
	}
	rowsPerBand := height/workers + 1
	stride := width * 3
	chunk := rowsPerBand * stride
	total := height * stride

	var bands []Band
	for start := 0; start < total; start += chunk {
		end := min(start+chunk, total)
		bands = append(bands, Band{
			Index: len(bands),
			Top:   start / stride,
			Rows:  (end - start) / stride,
			Start: start,
			End:   end,
		})
	}
	return bands
}

// checkPartition verifies that bands cover [0, size) exactly once, in
// order, on row boundaries.
func checkPartition(bands []Band, size, stride int) error {
	next := 0
	for _, b := range bands {
		switch {
		case b.Start != next:
			return fmt.Errorf("%w: band %d starts at %d, want %d", juliafatou.ErrRender, b.Index, b.Start, next)
		case b.End <= b.Start:
			return fmt.Errorf("%w: band %d is empty", juliafatou.ErrRender, b.Index)
		case b.Start%stride != 0 || b.End%stride != 0:
			return fmt.Errorf("%w: band %d is not row aligned", juliafatou.ErrRender, b.Index)
		case (b.End-b.Start)/stride != b.Rows || b.Start/stride != b.Top:
			return fmt.Errorf("%w: band %d rows do not match its byte range", juliafatou.ErrRender, b.Index)
		}
		next = b.End
	}
	if next != size {
		return fmt.Errorf("%w: bands cover %d of %d bytes", juliafatou.ErrRender, next, size)
	}
	return nil
}
