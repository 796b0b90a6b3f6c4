package juliafatou

import "errors"

var (
	// ErrConfig marks configuration errors reported before rendering starts.
	ErrConfig = errors.New("invalid configuration")

	// ErrImageSize is returned when a pixel buffer does not match its dimensions.
	ErrImageSize = errors.New("pixel buffer size mismatch")

	// ErrRender is returned when a render worker fails.
	ErrRender = errors.New("render failed")
)
