package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	apperrors "go-photo-feedback/internal/errors"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 100, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_ValidPNG(t *testing.T) {
	l := NewImageLoader(1600)

	img, err := l.Decode(encodePNG(t, 320, 240))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 320 || bounds.Dy() != 240 {
		t.Errorf("expected 320x240, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestDecode_DownscalesOversized(t *testing.T) {
	l := NewImageLoader(200)

	img, err := l.Decode(encodePNG(t, 800, 400))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > 200 || bounds.Dy() > 200 {
		t.Errorf("expected downscale to fit 200, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	// Aspect ratio preserved within rounding.
	if bounds.Dx() != 200 || bounds.Dy() != 100 {
		t.Errorf("expected 200x100, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestDecode_CorruptBytes(t *testing.T) {
	l := NewImageLoader(1600)

	_, err := l.Decode([]byte("definitely not an image"))
	if err == nil {
		t.Fatal("expected decode error for corrupt bytes")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeDecode) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestDecode_EmptyPayload(t *testing.T) {
	l := NewImageLoader(1600)

	_, err := l.Decode(nil)
	if err == nil {
		t.Fatal("expected decode error for empty payload")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeDecode) {
		t.Errorf("expected decode error, got %v", err)
	}
}
