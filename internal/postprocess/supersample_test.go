package postprocess

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDownsampleSize(t *testing.T) {
	out := Downsample(solid(130, 100, color.NRGBA{10, 20, 30, 255}), 65, 50)
	if b := out.Bounds(); b.Dx() != 65 || b.Dy() != 50 {
		t.Fatalf("size = %v, want 65x50", b)
	}
}

func TestDownsamplePreservesSolidColor(t *testing.T) {
	c := color.NRGBA{102, 102, 102, 255}
	out := Downsample(solid(40, 40, c), 20, 20)
	got := out.NRGBAAt(10, 10)
	if got != c {
		t.Errorf("pixel = %v, want %v", got, c)
	}
}

func TestDownsampleNoopWhenSmall(t *testing.T) {
	in := solid(10, 10, color.NRGBA{1, 2, 3, 255})
	if out := Downsample(in, 10, 10); out != in {
		t.Error("expected the input image back")
	}
}

func TestUpscale(t *testing.T) {
	in := solid(3, 2, color.NRGBA{9, 8, 7, 255})
	out := Upscale(in, 2)
	if b := out.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
		t.Fatalf("size = %v", b)
	}
	if out.NRGBAAt(5, 3) != (color.NRGBA{9, 8, 7, 255}) {
		t.Errorf("pixel = %v", out.NRGBAAt(5, 3))
	}
	if Upscale(in, 1) != in {
		t.Error("factor 1 should return input")
	}
}
