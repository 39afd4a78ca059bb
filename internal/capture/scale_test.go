package capture

import (
	"image"
	"testing"

	"github.com/bryanchriswhite/snapsource/internal/source"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		name      string
		native    source.Size
		requested source.Size
		want      source.Size
	}{
		{"zero request returns native", source.Size{Width: 1920, Height: 1080}, source.Size{}, source.Size{Width: 1920, Height: 1080}},
		{"zero native returns native", source.Size{}, source.Size{Width: 640, Height: 480}, source.Size{}},
		{"exact match", source.Size{Width: 640, Height: 480}, source.Size{Width: 640, Height: 480}, source.Size{Width: 640, Height: 480}},
		{"upscale fit keeps aspect", source.Size{Width: 800, Height: 600}, source.Size{Width: 1920, Height: 1080}, source.Size{Width: 1440, Height: 1080}},
		{"downscale fit keeps aspect", source.Size{Width: 1920, Height: 1080}, source.Size{Width: 640, Height: 480}, source.Size{Width: 640, Height: 360}},
		{"width bound", source.Size{Width: 1000, Height: 500}, source.Size{Width: 100, Height: 400}, source.Size{Width: 100, Height: 50}},
		{"tiny target clamps to one pixel", source.Size{Width: 4000, Height: 2}, source.Size{Width: 10, Height: 10}, source.Size{Width: 10, Height: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FitSize(tc.native, tc.requested)
			if got != tc.want {
				t.Fatalf("FitSize(%v, %v) = %v, want %v", tc.native, tc.requested, got, tc.want)
			}
		})
	}
}

func TestFitSizeNeverExceedsRequest(t *testing.T) {
	natives := []source.Size{
		{Width: 1920, Height: 1080},
		{Width: 1080, Height: 1920},
		{Width: 3, Height: 7},
		{Width: 2560, Height: 1440},
	}
	requested := source.Size{Width: 300, Height: 200}
	for _, native := range natives {
		got := FitSize(native, requested)
		if got.Width > requested.Width || got.Height > requested.Height {
			t.Fatalf("FitSize(%v, %v) = %v exceeds the requested bounds", native, requested, got)
		}
		if got.Width < 1 || got.Height < 1 {
			t.Fatalf("FitSize(%v, %v) = %v collapsed below one pixel", native, requested, got)
		}
	}
}

func TestScaleRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for i := range src.Pix {
		src.Pix[i] = byte(i)
	}

	t.Run("same size returns input", func(t *testing.T) {
		got := ScaleRGBA(src, source.Size{Width: 8, Height: 4})
		if got != src {
			t.Fatalf("expected the input image back for a matching size")
		}
	})

	t.Run("resizes to target bounds", func(t *testing.T) {
		got := ScaleRGBA(src, source.Size{Width: 4, Height: 2})
		b := got.Bounds()
		if b.Dx() != 4 || b.Dy() != 2 {
			t.Fatalf("scaled bounds = %dx%d, want 4x2", b.Dx(), b.Dy())
		}
	})
}
