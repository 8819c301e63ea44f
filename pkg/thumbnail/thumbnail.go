// Package thumbnail downsamples finished panoramas and composites to small
// fixed-size previews.
package thumbnail

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tourweave/panoengine/pkg/capability"
)

// Default preview size used by the tour scene list.
const (
	DefaultWidth  = 400
	DefaultHeight = 200
)

// Generator produces preview thumbnails.
type Generator struct {
	cap     capability.Capability
	quality int
	log     *zap.Logger
}

// New creates a Generator.
func New(cap capability.Capability) *Generator {
	return &Generator{cap: cap, quality: 80, log: zap.NewNop()}
}

// SetLogger attaches a structured logger.
func (g *Generator) SetLogger(log *zap.Logger) {
	if log != nil {
		g.log = log
	}
}

// Generate cover-fits the source to exactly width x height regardless of
// its aspect ratio. Zero or negative dimensions use the defaults.
//
// Without an image capability the source bytes come back unchanged, so in
// degraded mode callers must not assume the result matches the requested
// dimensions.
func (g *Generator) Generate(data []byte, width, height int) ([]byte, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	if !g.cap.Available() {
		g.log.Warn("image capability unavailable, returning source bytes as thumbnail")
		return data, nil
	}

	img, err := g.cap.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("thumbnail conversion failed: %w", err)
	}

	out, err := g.cap.Encode(g.cap.Fill(img, width, height), "jpg", g.quality)
	if err != nil {
		return nil, fmt.Errorf("thumbnail conversion failed: %w", err)
	}

	g.log.Debug("generated thumbnail",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("output_bytes", len(out)))

	return out, nil
}
