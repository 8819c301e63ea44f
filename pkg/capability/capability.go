// Package capability abstracts whether native image decode, encode and
// resize support is available on the running host.
//
// Every engine component receives a Capability by injection and owns a
// documented fallback for the unavailable case, so a host without image
// support degrades instead of crashing. There is no global handle to
// check for nil.
package capability

import (
	"errors"
	"image"
	"image/color"
)

// ErrUnavailable is returned by the Unavailable implementation for any
// operation that needs pixel access.
var ErrUnavailable = errors.New("image capability unavailable")

// Probe holds the cheaply inspected properties of an encoded image. Only
// the header is decoded.
type Probe struct {
	Width  int
	Height int
	Format string
}

// Capability is the seam between the engine and the host's image support.
type Capability interface {
	// Available reports whether pixel operations can be performed.
	// When it returns false every other method is a stub and callers
	// must take their degraded path.
	Available() bool

	// Inspect decodes only the header of an encoded image.
	Inspect(data []byte) (Probe, error)

	// Decode decodes an encoded image into memory.
	Decode(data []byte) (image.Image, error)

	// Encode serialises an image to the given format ("jpg", "png" or
	// "webp") at the given quality (1-100, ignored for png).
	Encode(img image.Image, format string, quality int) ([]byte, error)

	// Resize stretches an image to exactly width x height, ignoring
	// the source aspect ratio.
	Resize(img image.Image, width, height int) image.Image

	// Fill cover-fits an image to exactly width x height using a
	// centered crop. No letterboxing.
	Fill(img image.Image, width, height int) image.Image

	// Canvas returns a new solid-color image of the given size.
	Canvas(width, height int, c color.Color) *image.NRGBA

	// Paste draws src over dst with its top-left corner at (x, y).
	Paste(dst, src image.Image, x, y int) *image.NRGBA

	// PasteCenter draws src centered over dst.
	PasteCenter(dst, src image.Image) *image.NRGBA

	// AdjustBrightness changes brightness by a percentage in
	// [-100, 100].
	AdjustBrightness(img image.Image, percentage float64) *image.NRGBA

	// AdjustSaturation changes saturation by a percentage, where 0 is
	// no change and 100 doubles it.
	AdjustSaturation(img image.Image, percentage float64) *image.NRGBA
}
