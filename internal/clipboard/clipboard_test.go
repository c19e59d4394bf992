package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	data, err := encode(img)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		t.Fatalf("expected png data: %v", err)
	}
	got, err := decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Fatalf("expected %v, got %v", img.Bounds(), got.Bounds())
	}
	r, g, b, _ := got.At(2, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("unexpected pixel %v", got.At(2, 1))
	}
}

func TestDecodeEmpty(t *testing.T) {
	if _, err := decode(nil); !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
	if _, err := decode([]byte("text")); !errors.Is(err, image.ErrFormat) {
		t.Fatalf("expected image.ErrFormat, got %v", err)
	}
}

func TestEncodeEmpty(t *testing.T) {
	if _, err := encode(image.NewRGBA(image.Rectangle{})); err == nil {
		t.Fatal("expected error for empty image")
	}
}
