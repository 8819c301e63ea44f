package projection

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/tourweave/panoengine/pkg/capability"
)

// createTestImage creates a gradient image so resized regions carry
// distinguishable pixel content
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8((x * 255) / width), uint8((y * 255) / height), 90, 255})
		}
	}
	return img
}

func photoBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, createTestImage(width, height)); err != nil {
		t.Fatalf("failed to encode test photo: %v", err)
	}
	return buf.Bytes()
}

func decodeResult(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode conversion output: %v", err)
	}
	return img
}

func TestConvertCanvasDimensions(t *testing.T) {
	c := New(capability.NewNative())
	photo := photoBytes(t, 1024, 768)

	tests := []struct {
		method   string
		reported string
	}{
		{MethodPerspective, MethodPerspective},
		{MethodCylindrical, MethodCylindrical},
		{MethodTileRepeat, MethodTileRepeat},
		{MethodAIDepth, MethodAIDepth},
		{"does_not_exist", MethodPerspective}, // unknown falls back
		{"", MethodPerspective},
	}

	for _, test := range tests {
		result, err := c.Convert(photo, test.method)
		if err != nil {
			t.Fatalf("Convert(%q) failed: %v", test.method, err)
		}

		if !result.Success {
			t.Errorf("Convert(%q) reported failure", test.method)
		}
		if result.Method != test.reported {
			t.Errorf("Convert(%q) reported method %q, expected %q",
				test.method, result.Method, test.reported)
		}
		if result.Dimensions.Width != CanvasWidth || result.Dimensions.Height != CanvasHeight {
			t.Errorf("Convert(%q) claimed %dx%d, expected %dx%d", test.method,
				result.Dimensions.Width, result.Dimensions.Height, CanvasWidth, CanvasHeight)
		}

		out := decodeResult(t, result.Bytes)
		if out.Bounds().Dx() != CanvasWidth || out.Bounds().Dy() != CanvasHeight {
			t.Errorf("Convert(%q) produced %dx%d pixels, expected %dx%d", test.method,
				out.Bounds().Dx(), out.Bounds().Dy(), CanvasWidth, CanvasHeight)
		}
	}
}

func TestPerspectiveBorders(t *testing.T) {
	c := New(capability.NewNative())

	result, err := c.Convert(photoBytes(t, 1024, 768), MethodPerspective)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	out := decodeResult(t, result.Bytes)

	// Outside the central third x central half the canvas is black
	corners := []image.Point{
		{10, 10},
		{CanvasWidth - 10, 10},
		{10, CanvasHeight - 10},
		{CanvasWidth - 10, CanvasHeight - 10},
	}
	for _, pt := range corners {
		r, g, b, _ := out.At(pt.X, pt.Y).RGBA()
		// JPEG noise allowance
		if r>>8 > 8 || g>>8 > 8 || b>>8 > 8 {
			t.Errorf("Expected near-black border at %v, got r=%d g=%d b=%d",
				pt, r>>8, g>>8, b>>8)
		}
	}
}

func TestTileRepeatStripsIdentical(t *testing.T) {
	c := New(capability.NewNative())

	// Check the composed canvas before encoding: exact equality
	src := createTestImage(640, 480)
	canvas := c.renderTileRepeat(src)
	nrgba, ok := canvas.(*image.NRGBA)
	if !ok {
		t.Fatalf("expected NRGBA canvas, got %T", canvas)
	}

	tileWidth := CanvasWidth / 4
	for y := 0; y < CanvasHeight; y += 7 {
		for x := 0; x < tileWidth; x += 7 {
			first := nrgba.NRGBAAt(x, y)
			for strip := 1; strip < 4; strip++ {
				if got := nrgba.NRGBAAt(x+strip*tileWidth, y); got != first {
					t.Fatalf("Strip %d differs at (%d,%d): %v vs %v", strip, x, y, got, first)
				}
			}
		}
	}

	// The encoded output keeps the property: identical source blocks are
	// aligned to the JPEG MCU grid, so decoded strips match exactly
	result, err := c.Convert(photoBytes(t, 640, 480), MethodTileRepeat)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	out := decodeResult(t, result.Bytes)
	for y := 0; y < CanvasHeight; y += 31 {
		for x := 0; x < tileWidth; x += 31 {
			r0, g0, b0, _ := out.At(x, y).RGBA()
			for strip := 1; strip < 4; strip++ {
				r, g, b, _ := out.At(x+strip*tileWidth, y).RGBA()
				if r != r0 || g != g0 || b != b0 {
					t.Fatalf("Encoded strip %d differs at (%d,%d)", strip, x, y)
				}
			}
		}
	}
}

func TestAIDepthMatchesPerspective(t *testing.T) {
	c := New(capability.NewNative())
	photo := photoBytes(t, 800, 600)

	depth, err := c.Convert(photo, MethodAIDepth)
	if err != nil {
		t.Fatalf("ai_depth conversion failed: %v", err)
	}
	perspective, err := c.Convert(photo, MethodPerspective)
	if err != nil {
		t.Fatalf("perspective conversion failed: %v", err)
	}

	// ai_depth is a placeholder: same pixels, its own method name
	if !bytes.Equal(depth.Bytes, perspective.Bytes) {
		t.Error("ai_depth output should be pixel-identical to perspective")
	}
	if depth.Method != MethodAIDepth {
		t.Errorf("ai_depth should report its own method, got %q", depth.Method)
	}
	if !depth.Success {
		t.Error("ai_depth must report success")
	}
}

func TestConvertBadData(t *testing.T) {
	c := New(capability.NewNative())

	_, err := c.Convert([]byte("not an image"), MethodPerspective)
	if err == nil {
		t.Fatal("Convert should fail on garbage input")
	}
	if !strings.Contains(err.Error(), "perspective conversion failed") {
		t.Errorf("Expected method-tagged failure, got %q", err.Error())
	}
}

func TestConvertDegraded(t *testing.T) {
	c := New(capability.NewUnavailable())
	photo := []byte{0xff, 0xd8, 0xff, 0x00} // content never inspected

	result, err := c.Convert(photo, MethodPerspective)
	if err != nil {
		t.Fatalf("Degraded conversion must not error: %v", err)
	}

	if !result.Success {
		t.Error("Degraded conversion must report success")
	}
	if result.Method != "perspective_fallback" {
		t.Errorf("Expected method perspective_fallback, got %q", result.Method)
	}
	// Claimed dimensions intentionally do not describe the returned
	// bytes; the fallback hands the source back verbatim.
	if result.Dimensions.Width != CanvasWidth || result.Dimensions.Height != CanvasHeight {
		t.Errorf("Fallback should claim canonical dimensions, got %dx%d",
			result.Dimensions.Width, result.Dimensions.Height)
	}
	if !bytes.Equal(result.Bytes, photo) {
		t.Error("Fallback must return the source bytes unmodified")
	}
}

func BenchmarkConvertPerspective(b *testing.B) {
	c := New(capability.NewNative())
	var buf bytes.Buffer
	if err := png.Encode(&buf, createTestImage(1024, 768)); err != nil {
		b.Fatal(err)
	}
	photo := buf.Bytes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Convert(photo, MethodPerspective); err != nil {
			b.Fatal(err)
		}
	}
}
