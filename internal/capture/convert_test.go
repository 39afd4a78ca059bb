package capture

import (
	"image/color"
	"testing"
)

func TestConvertImageData(t *testing.T) {
	// Two pixels of 32bpp ZPixmap data, byte order B G R x.
	data := []byte{
		0x10, 0x20, 0x30, 0x00, // (48, 32, 16)
		0xFF, 0x00, 0x80, 0x7F, // (128, 0, 255)
	}

	for _, depth := range []int{24, 32} {
		img := convertImageData(data, 2, 1, depth)
		want := []color.RGBA{
			{R: 0x30, G: 0x20, B: 0x10, A: 0xFF},
			{R: 0x80, G: 0x00, B: 0xFF, A: 0xFF},
		}
		for x, w := range want {
			if got := img.RGBAAt(x, 0); got != w {
				t.Fatalf("depth %d pixel %d = %v, want %v", depth, x, got, w)
			}
		}
	}
}

func TestConvertImageDataUnsupportedDepth(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	img := convertImageData(data, 1, 1, 16)
	if got := img.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Fatalf("depth 16 must produce an untouched image, got %v", got)
	}
}

func TestConvertImageDataShortBuffer(t *testing.T) {
	// Only the first pixel is backed by data; the rest stays zero instead
	// of reading past the buffer.
	data := []byte{0x01, 0x02, 0x03, 0x00}
	img := convertImageData(data, 2, 2, 24)

	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 0x03, G: 0x02, B: 0x01, A: 0xFF}) {
		t.Fatalf("first pixel = %v", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{}) {
		t.Fatalf("unbacked pixel must stay zero, got %v", got)
	}
}
