// Package stitcher composites two or more photos into one image using
// horizontal, vertical or panoramic layouts.
package stitcher

import (
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/tourweave/panoengine/pkg/capability"
	"github.com/tourweave/panoengine/pkg/types"
)

// Supported layouts.
const (
	LayoutHorizontal = "horizontal"
	LayoutVertical   = "vertical"
	LayoutPanoramic  = "panoramic"
)

// ErrTooFewImages is the message returned when fewer than two images are
// supplied.
const ErrTooFewImages = "At least 2 images required for stitching"

// Options controls how photos are composited.
type Options struct {
	// Layout is one of horizontal, vertical or panoramic. Empty or
	// unknown values stitch horizontally.
	Layout string `json:"layout"`
	// Overlap is the fraction of each image's extent that the next
	// image overlaps, in [0, 1).
	Overlap float64 `json:"overlap"`
	// Quality is the JPEG output quality, 1-100.
	Quality int `json:"quality"`
}

// DefaultOptions returns the options the upload layer uses when the client
// sends none.
func DefaultOptions() Options {
	return Options{Layout: LayoutHorizontal, Overlap: 0.2, Quality: 85}
}

// Result is the outcome of a stitch. Failures are result-typed, never
// returned as Go errors: Success is false and Error holds the reason.
type Result struct {
	Success    bool             `json:"success"`
	Bytes      []byte           `json:"-"`
	Dimensions types.Dimensions `json:"dimensions"`
	Method     string           `json:"method"`
	Error      string           `json:"error,omitempty"`
}

// Stitcher composites photos.
type Stitcher struct {
	cap capability.Capability
	log *zap.Logger
}

// New creates a Stitcher.
func New(cap capability.Capability) *Stitcher {
	return &Stitcher{cap: cap, log: zap.NewNop()}
}

// SetLogger attaches a structured logger.
func (s *Stitcher) SetLogger(log *zap.Logger) {
	if log != nil {
		s.log = log
	}
}

// Stitch composites two or more encoded photos into one image. All
// failures, including too few inputs, come back in Result.Error.
//
// Without an image capability no pixel math is attempted: the first
// image's bytes are returned verbatim under a "_fallback" method name
// while the canonical panorama dimensions are still claimed. The
// dimension/bytes mismatch is a long-standing contract the upload layer
// depends on.
func (s *Stitcher) Stitch(images [][]byte, opts Options) Result {
	if len(images) < 2 {
		return Result{Error: ErrTooFewImages}
	}

	opts = s.normalize(opts)

	if !s.cap.Available() {
		s.log.Warn("image capability unavailable, returning first image as stitch fallback",
			zap.String("layout", opts.Layout),
			zap.Int("images", len(images)))
		return Result{
			Success:    true,
			Bytes:      images[0],
			Dimensions: types.Dimensions{Width: types.PanoramaWidth, Height: types.PanoramaHeight},
			Method:     opts.Layout + "_fallback",
		}
	}

	decoded := make([]image.Image, 0, len(images))
	for i, data := range images {
		img, err := s.cap.Decode(data)
		if err != nil {
			return Result{Error: fmt.Sprintf("failed to decode image %d: %v", i+1, err)}
		}
		decoded = append(decoded, img)
	}

	switch opts.Layout {
	case LayoutVertical:
		return s.encode(s.composeVertical(decoded, opts.Overlap), LayoutVertical, opts.Quality)
	case LayoutPanoramic:
		return s.stitchPanoramic(decoded, opts)
	default:
		return s.encode(s.composeHorizontal(decoded, opts.Overlap), LayoutHorizontal, opts.Quality)
	}
}

func (s *Stitcher) normalize(opts Options) Options {
	if opts.Layout == "" {
		opts.Layout = LayoutHorizontal
	}
	if opts.Overlap < 0 || opts.Overlap >= 1 {
		opts.Overlap = 0
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		opts.Quality = DefaultOptions().Quality
	}
	return opts
}

// composeHorizontal places images left to right, each advanced by the
// previous image's width times (1 - overlap) and vertically centered. The
// canvas width adds the last image's overlapped extent back so the final
// image is never truncated.
func (s *Stitcher) composeHorizontal(images []image.Image, overlap float64) image.Image {
	canvasWidth, canvasHeight := 0.0, 0
	for _, img := range images {
		b := img.Bounds()
		canvasWidth += float64(b.Dx()) * (1 - overlap)
		if b.Dy() > canvasHeight {
			canvasHeight = b.Dy()
		}
	}
	canvasWidth += float64(images[len(images)-1].Bounds().Dx()) * overlap

	var out image.Image = s.cap.Canvas(int(canvasWidth), canvasHeight, color.NRGBA{A: 255})
	offset := 0.0
	for _, img := range images {
		b := img.Bounds()
		out = s.cap.Paste(out, img, int(offset), (canvasHeight-b.Dy())/2)
		offset += float64(b.Dx()) * (1 - overlap)
	}
	return out
}

// composeVertical is composeHorizontal with the axes swapped: images stack
// top to bottom, horizontally centered.
func (s *Stitcher) composeVertical(images []image.Image, overlap float64) image.Image {
	canvasWidth, canvasHeight := 0, 0.0
	for _, img := range images {
		b := img.Bounds()
		canvasHeight += float64(b.Dy()) * (1 - overlap)
		if b.Dx() > canvasWidth {
			canvasWidth = b.Dx()
		}
	}
	canvasHeight += float64(images[len(images)-1].Bounds().Dy()) * overlap

	var out image.Image = s.cap.Canvas(canvasWidth, int(canvasHeight), color.NRGBA{A: 255})
	offset := 0.0
	for _, img := range images {
		b := img.Bounds()
		out = s.cap.Paste(out, img, (canvasWidth-b.Dx())/2, int(offset))
		offset += float64(b.Dy()) * (1 - overlap)
	}
	return out
}

// stitchPanoramic stitches horizontally and then stretches the result to
// panorama proportions: width at least the canonical 4096 and height
// exactly half the width. The stretch is non-uniform; the distortion is a
// known limitation of this layout.
func (s *Stitcher) stitchPanoramic(images []image.Image, opts Options) Result {
	composite := s.composeHorizontal(images, opts.Overlap)

	width := composite.Bounds().Dx()
	if width < types.PanoramaWidth {
		width = types.PanoramaWidth
	}
	stretched := s.cap.Resize(composite, width, width/2)

	return s.encode(stretched, LayoutPanoramic, opts.Quality)
}

func (s *Stitcher) encode(img image.Image, method string, quality int) Result {
	data, err := s.cap.Encode(img, "jpg", quality)
	if err != nil {
		return Result{Error: fmt.Sprintf("failed to encode stitched image: %v", err)}
	}

	b := img.Bounds()
	s.log.Debug("stitched images",
		zap.String("method", method),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()))

	return Result{
		Success:    true,
		Bytes:      data,
		Dimensions: types.Dimensions{Width: b.Dx(), Height: b.Dy()},
		Method:     method,
	}
}
