package capability

import (
	"image"
	"image/color"
)

// Unavailable is the degraded no-op capability used when the host has no
// working image support. Codec operations fail with ErrUnavailable; pure
// transforms return their input untouched so a caller that missed the
// Available check still gets a usable value back instead of a panic.
type Unavailable struct{}

// NewUnavailable creates the degraded capability stub.
func NewUnavailable() *Unavailable {
	return &Unavailable{}
}

func (u *Unavailable) Available() bool {
	return false
}

func (u *Unavailable) Inspect(data []byte) (Probe, error) {
	return Probe{}, ErrUnavailable
}

func (u *Unavailable) Decode(data []byte) (image.Image, error) {
	return nil, ErrUnavailable
}

func (u *Unavailable) Encode(img image.Image, format string, quality int) ([]byte, error) {
	return nil, ErrUnavailable
}

func (u *Unavailable) Resize(img image.Image, width, height int) image.Image {
	return img
}

func (u *Unavailable) Fill(img image.Image, width, height int) image.Image {
	return img
}

func (u *Unavailable) Canvas(width, height int, c color.Color) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, 0, 0))
}

func (u *Unavailable) Paste(dst, src image.Image, x, y int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, 0, 0))
}

func (u *Unavailable) PasteCenter(dst, src image.Image) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, 0, 0))
}

func (u *Unavailable) AdjustBrightness(img image.Image, percentage float64) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, 0, 0))
}

func (u *Unavailable) AdjustSaturation(img image.Image, percentage float64) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, 0, 0))
}
