// Package panoengine converts ordinary photographs into equirectangular
// panoramas for 360 degree virtual tours.
//
// The engine validates candidate photos, renders them onto the canonical
// 4096x2048 equirectangular canvas with a choice of projection methods,
// composites several photos into one image, and generates small preview
// thumbnails. It exposes a pure in-process function-call surface: the
// upload and tour HTTP layers hand it byte buffers and consume structured
// results, and all persistence stays with the caller.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//		"os"
//
//		"github.com/tourweave/panoengine"
//	)
//
//	func main() {
//		engine := panoengine.New()
//
//		photo, err := os.ReadFile("room.jpg")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		report := engine.Validate(photo)
//		if !report.IsValid {
//			log.Fatalf("photo rejected: %v", report.Issues)
//		}
//
//		result, err := engine.Convert(photo, "perspective")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		if err := os.WriteFile("room_pano.jpg", result.Bytes, 0644); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of five components:
//
// 1. Capability (pkg/capability): host image support abstraction with a
// degraded no-op fallback
// 2. Validator (pkg/validator): structured validation reports
// 3. Projection (pkg/projection): panorama conversion, method catalog and
// method advisor
// 4. Stitcher (pkg/stitcher): multi-image composition
// 5. Thumbnail (pkg/thumbnail): fixed-size previews
//
// Every component degrades gracefully when the host has no image support:
// nothing throws on a missing capability, operations fall back to their
// documented degraded behavior and log a warning.
package panoengine

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/tourweave/panoengine/pkg/capability"
	"github.com/tourweave/panoengine/pkg/projection"
	"github.com/tourweave/panoengine/pkg/stitcher"
	"github.com/tourweave/panoengine/pkg/thumbnail"
	"github.com/tourweave/panoengine/pkg/types"
	"github.com/tourweave/panoengine/pkg/validator"
)

// Version of the panorama engine library
const Version = "1.0.0"

// Engine provides a high-level interface over the conversion pipeline.
// Each call is a stateless unit of work; concurrent calls need no
// coordination. Note the engine imposes no admission control, so callers
// running many large conversions at once own the memory ceiling.
type Engine struct {
	cap       capability.Capability
	validator *validator.Validator
	converter *projection.Converter
	stitcher  *stitcher.Stitcher
	thumbs    *thumbnail.Generator
}

// New creates an Engine with the native image capability and default
// limits.
func New() *Engine {
	return NewWithCapability(capability.NewNative())
}

// NewWithCapability creates an Engine on the given capability. Pass
// capability.NewUnavailable() on hosts without image support.
func NewWithCapability(cap capability.Capability) *Engine {
	return NewWithLimits(cap, validator.DefaultLimits())
}

// NewWithLimits creates an Engine with custom validation limits.
func NewWithLimits(cap capability.Capability, limits validator.Limits) *Engine {
	return &Engine{
		cap:       cap,
		validator: validator.NewWithLimits(cap, limits),
		converter: projection.New(cap),
		stitcher:  stitcher.New(cap),
		thumbs:    thumbnail.New(cap),
	}
}

// SetLogger attaches a structured logger to every component.
func (e *Engine) SetLogger(log *zap.Logger) {
	e.validator.SetLogger(log)
	e.converter.SetLogger(log)
	e.stitcher.SetLogger(log)
	e.thumbs.SetLogger(log)
}

// SetConversionQuality overrides the converter's JPEG output quality.
func (e *Engine) SetConversionQuality(quality int) {
	e.converter.SetQuality(quality)
}

// Available reports whether the engine runs with real image support.
func (e *Engine) Available() bool {
	return e.cap.Available()
}

// Validate inspects a candidate source photo.
func (e *Engine) Validate(data []byte) types.ValidationReport {
	return e.validator.Validate(data)
}

// Convert renders one photo onto the equirectangular canvas.
func (e *Engine) Convert(data []byte, method string) (projection.Result, error) {
	return e.converter.Convert(data, method)
}

// Recommend suggests conversion methods for a validated photo.
func (e *Engine) Recommend(report types.ValidationReport) []projection.Recommendation {
	return projection.Recommend(report)
}

// Methods returns the static conversion method catalog.
func (e *Engine) Methods() []projection.MethodDescriptor {
	return projection.Methods()
}

// Stitch composites two or more photos into one image.
func (e *Engine) Stitch(images [][]byte, opts stitcher.Options) stitcher.Result {
	return e.stitcher.Stitch(images, opts)
}

// Thumbnail generates a default-size (400x200) preview.
func (e *Engine) Thumbnail(data []byte) ([]byte, error) {
	return e.thumbs.Generate(data, thumbnail.DefaultWidth, thumbnail.DefaultHeight)
}

// ThumbnailSized generates a preview at a custom size.
func (e *Engine) ThumbnailSized(data []byte, width, height int) ([]byte, error) {
	return e.thumbs.Generate(data, width, height)
}

// Export re-encodes an engine output buffer to the given format ("jpg",
// "png" or "webp") at the given quality for persistence. Engine output is
// already JPEG-encoded, so JPEG passes through untouched; in degraded
// mode the bytes also pass through, matching the other fallbacks.
func (e *Engine) Export(data []byte, format string, quality int) ([]byte, error) {
	f := strings.ToLower(format)
	if f == "" || f == "jpg" || f == "jpeg" {
		return data, nil
	}
	if !e.cap.Available() {
		return data, nil
	}

	img, err := e.cap.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s export failed: %w", f, err)
	}
	out, err := e.cap.Encode(img, f, quality)
	if err != nil {
		return nil, fmt.Errorf("%s export failed: %w", f, err)
	}
	return out, nil
}

// ProcessPhotoFile is a convenience that loads a photo from disk,
// validates it, converts it and writes the panorama to outputPath. Hard
// validation failures abort before any pixel work.
func (e *Engine) ProcessPhotoFile(inputPath, outputPath, method string) (projection.Result, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return projection.Result{}, fmt.Errorf("failed to read photo: %w", err)
	}

	report := e.Validate(data)
	if !report.IsValid {
		return projection.Result{}, fmt.Errorf("photo validation failed: %v", report.Issues)
	}

	result, err := e.Convert(data, method)
	if err != nil {
		return projection.Result{}, err
	}

	if err := os.WriteFile(outputPath, result.Bytes, 0644); err != nil {
		return projection.Result{}, fmt.Errorf("failed to write panorama: %w", err)
	}

	return result, nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
