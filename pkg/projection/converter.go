// Package projection renders single photos onto the canonical 4096x2048
// equirectangular canvas using a small set of fixed pixel strategies, and
// carries the static method catalog plus the method advisor.
package projection

import (
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/tourweave/panoengine/pkg/capability"
	"github.com/tourweave/panoengine/pkg/types"
)

// Canvas dimensions of every generated panorama.
const (
	CanvasWidth  = types.PanoramaWidth
	CanvasHeight = types.PanoramaHeight
)

// Result describes a finished conversion. Bytes holds the encoded
// panorama; persisting it to storage is the caller's concern.
type Result struct {
	Success    bool             `json:"success"`
	Method     string           `json:"method"`
	Dimensions types.Dimensions `json:"dimensions"`
	Message    string           `json:"message"`
	Bytes      []byte           `json:"-"`
}

// Converter renders photos onto the equirectangular canvas.
type Converter struct {
	cap     capability.Capability
	quality int
	log     *zap.Logger
}

// New creates a Converter with the default JPEG output quality.
func New(cap capability.Capability) *Converter {
	return &Converter{cap: cap, quality: 90, log: zap.NewNop()}
}

// SetQuality overrides the JPEG output quality (1-100).
func (c *Converter) SetQuality(quality int) {
	if quality >= 1 && quality <= 100 {
		c.quality = quality
	}
}

// SetLogger attaches a structured logger.
func (c *Converter) SetLogger(log *zap.Logger) {
	if log != nil {
		c.log = log
	}
}

// Convert renders one photo onto the 4096x2048 canvas using the given
// method. Unknown method ids fall back to perspective. Pixel failures are
// returned as errors of the form "<method> conversion failed: <cause>";
// everything else succeeds with the encoded panorama in Result.Bytes.
//
// Without an image capability the source bytes come back unmodified under
// a "_fallback" method name with the canonical dimensions still claimed,
// matching the stitcher's degraded contract.
func (c *Converter) Convert(data []byte, method string) (Result, error) {
	if !c.cap.Available() {
		c.log.Warn("image capability unavailable, returning source unmodified",
			zap.String("method", method))
		return Result{
			Success:    true,
			Method:     method + "_fallback",
			Dimensions: types.Dimensions{Width: CanvasWidth, Height: CanvasHeight},
			Message:    "image capability unavailable: source returned unmodified",
			Bytes:      data,
		}, nil
	}

	render, reported := c.renderer(method)

	src, err := c.cap.Decode(data)
	if err != nil {
		return Result{}, fmt.Errorf("%s conversion failed: %w", reported, err)
	}

	out, err := c.cap.Encode(render(src), "jpg", c.quality)
	if err != nil {
		return Result{}, fmt.Errorf("%s conversion failed: %w", reported, err)
	}

	c.log.Debug("converted photo to panorama",
		zap.String("method", reported),
		zap.Int("output_bytes", len(out)))

	return Result{
		Success:    true,
		Method:     reported,
		Dimensions: types.Dimensions{Width: CanvasWidth, Height: CanvasHeight},
		Message:    fmt.Sprintf("converted using %s projection", reported),
		Bytes:      out,
	}, nil
}

// renderer resolves a method id to its pixel strategy and the method name
// to report. ai_depth deliberately renders as perspective while keeping
// its own name: depth-aware conversion is a product placeholder, and the
// upload layer depends on it reporting success.
func (c *Converter) renderer(method string) (func(image.Image) image.Image, string) {
	switch method {
	case MethodCylindrical:
		return c.renderCylindrical, MethodCylindrical
	case MethodTileRepeat:
		return c.renderTileRepeat, MethodTileRepeat
	case MethodAIDepth:
		return c.renderPerspective, MethodAIDepth
	case MethodPerspective:
		return c.renderPerspective, MethodPerspective
	default:
		return c.renderPerspective, MethodPerspective
	}
}

// renderPerspective cover-fits the photo into the central third of the
// canvas width and central half of its height, on black.
func (c *Converter) renderPerspective(src image.Image) image.Image {
	region := c.cap.Fill(src, CanvasWidth/3, CanvasHeight/2)
	canvas := c.cap.Canvas(CanvasWidth, CanvasHeight, color.NRGBA{A: 255})
	return c.cap.PasteCenter(canvas, region)
}

// renderCylindrical cover-fits the photo to the full canvas width and half
// its height on mid-gray, then warms the whole canvas (~1.1x brightness,
// ~1.2x saturation) to suggest a wrap.
func (c *Converter) renderCylindrical(src image.Image) image.Image {
	region := c.cap.Fill(src, CanvasWidth, CanvasHeight/2)
	canvas := c.cap.Canvas(CanvasWidth, CanvasHeight, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	out := c.cap.PasteCenter(canvas, region)
	out = c.cap.AdjustBrightness(out, 10)
	return c.cap.AdjustSaturation(out, 20)
}

// renderTileRepeat stretches the photo to exactly a quarter of the canvas
// width at full height and paints that tile four times side by side, so
// the four vertical strips of the output are pixel-identical.
func (c *Converter) renderTileRepeat(src image.Image) image.Image {
	tileWidth := CanvasWidth / 4
	tile := c.cap.Resize(src, tileWidth, CanvasHeight)
	var out image.Image = c.cap.Canvas(CanvasWidth, CanvasHeight, color.NRGBA{A: 255})
	for i := 0; i < 4; i++ {
		out = c.cap.Paste(out, tile, i*tileWidth, 0)
	}
	return out
}
