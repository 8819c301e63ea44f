package capability

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// createTestImage creates a simple gradient test image
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 128, 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestNativeAvailable(t *testing.T) {
	if !NewNative().Available() {
		t.Error("Native capability should report available")
	}
}

func TestNativeInspect(t *testing.T) {
	cap := NewNative()
	data := encodePNG(t, createTestImage(320, 240))

	probe, err := cap.Inspect(data)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	if probe.Width != 320 || probe.Height != 240 {
		t.Errorf("Expected 320x240, got %dx%d", probe.Width, probe.Height)
	}

	if probe.Format != "png" {
		t.Errorf("Expected format png, got %s", probe.Format)
	}
}

func TestNativeInspectBadData(t *testing.T) {
	cap := NewNative()
	if _, err := cap.Inspect([]byte("not an image")); err == nil {
		t.Error("Inspect should fail on garbage input")
	}
}

func TestNativeDecodeEncodeRoundTrip(t *testing.T) {
	cap := NewNative()
	data := encodePNG(t, createTestImage(100, 80))

	img, err := cap.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	for _, format := range []string{"jpg", "png"} {
		out, err := cap.Encode(img, format, 85)
		if err != nil {
			t.Fatalf("Encode %s failed: %v", format, err)
		}

		probe, err := cap.Inspect(out)
		if err != nil {
			t.Fatalf("Inspect of %s output failed: %v", format, err)
		}
		if probe.Width != 100 || probe.Height != 80 {
			t.Errorf("%s round trip changed dimensions: got %dx%d", format, probe.Width, probe.Height)
		}
	}
}

func TestNativeResizeStretches(t *testing.T) {
	cap := NewNative()
	out := cap.Resize(createTestImage(400, 300), 200, 50)

	b := out.Bounds()
	if b.Dx() != 200 || b.Dy() != 50 {
		t.Errorf("Expected 200x50, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestNativeFillCoverFits(t *testing.T) {
	cap := NewNative()

	// Cover-fit must hit the exact target regardless of source ratio
	for _, size := range [][2]int{{100, 100}, {300, 50}, {50, 300}} {
		out := cap.Fill(createTestImage(400, 300), size[0], size[1])
		b := out.Bounds()
		if b.Dx() != size[0] || b.Dy() != size[1] {
			t.Errorf("Fill to %dx%d produced %dx%d", size[0], size[1], b.Dx(), b.Dy())
		}
	}
}

func TestNativeCanvasAndPaste(t *testing.T) {
	cap := NewNative()

	canvas := cap.Canvas(50, 40, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if got := canvas.NRGBAAt(25, 20); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("Canvas fill color wrong: %v", got)
	}

	patch := cap.Canvas(10, 10, color.NRGBA{R: 255, A: 255})
	out := cap.Paste(canvas, patch, 20, 15)

	if got := out.NRGBAAt(25, 20); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("Paste did not land at expected position: %v", got)
	}
	if got := out.NRGBAAt(5, 5); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("Paste overwrote pixels outside the patch: %v", got)
	}
}

func TestUnavailable(t *testing.T) {
	cap := NewUnavailable()

	if cap.Available() {
		t.Error("Unavailable capability should not report available")
	}

	if _, err := cap.Inspect([]byte{1, 2, 3}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Inspect should return ErrUnavailable, got %v", err)
	}

	if _, err := cap.Decode([]byte{1, 2, 3}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Decode should return ErrUnavailable, got %v", err)
	}

	if _, err := cap.Encode(createTestImage(10, 10), "jpg", 85); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Encode should return ErrUnavailable, got %v", err)
	}

	// Pure transforms pass the input through untouched
	img := createTestImage(10, 10)
	if cap.Resize(img, 5, 5) != img {
		t.Error("Resize should return the input image unchanged")
	}
	if cap.Fill(img, 5, 5) != img {
		t.Error("Fill should return the input image unchanged")
	}
}
