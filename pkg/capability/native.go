package capability

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Native implements Capability with pure-Go image libraries.
type Native struct{}

// NewNative creates the full native capability.
func NewNative() *Native {
	return &Native{}
}

func (n *Native) Available() bool {
	return true
}

// Inspect reads only the image header, so it stays cheap even for large
// uploads.
func (n *Native) Inspect(data []byte) (Probe, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Probe{}, fmt.Errorf("failed to inspect image: %w", err)
	}
	return Probe{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// Decode tries the registered decoders first and falls back to an explicit
// WebP decode for files that slip past format sniffing.
func (n *Native) Decode(data []byte) (image.Image, error) {
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("image: unknown or unsupported format")
}

func (n *Native) Encode(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode png: %w", err)
		}
	case "webp":
		opts := &webp.Options{Quality: float32(quality)}
		if err := webp.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("failed to encode webp: %w", err)
		}
	default: // jpg/jpeg
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode jpeg: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func (n *Native) Resize(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

func (n *Native) Fill(img image.Image, width, height int) image.Image {
	return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
}

func (n *Native) Canvas(width, height int, c color.Color) *image.NRGBA {
	return imaging.New(width, height, c)
}

func (n *Native) Paste(dst, src image.Image, x, y int) *image.NRGBA {
	return imaging.Paste(dst, src, image.Pt(x, y))
}

func (n *Native) PasteCenter(dst, src image.Image) *image.NRGBA {
	return imaging.PasteCenter(dst, src)
}

func (n *Native) AdjustBrightness(img image.Image, percentage float64) *image.NRGBA {
	return imaging.AdjustBrightness(img, percentage)
}

func (n *Native) AdjustSaturation(img image.Image, percentage float64) *image.NRGBA {
	return imaging.AdjustSaturation(img, percentage)
}
