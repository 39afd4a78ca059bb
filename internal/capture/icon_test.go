package capture

import (
	"image/color"
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/bryanchriswhite/snapsource/internal/source"
)

func iconEntry(w, h uint) ewmh.WmIcon {
	return ewmh.WmIcon{Width: w, Height: h, Data: make([]uint, w*h)}
}

func TestPickIcon(t *testing.T) {
	icons := []ewmh.WmIcon{
		iconEntry(16, 16),
		iconEntry(48, 48),
		iconEntry(128, 128),
	}

	t.Run("smallest covering size wins", func(t *testing.T) {
		got := pickIcon(icons, source.Size{Width: 32, Height: 32})
		if got == nil || got.Width != 48 {
			t.Fatalf("picked %+v, want the 48x48 entry", got)
		}
	})

	t.Run("oversized request falls back to largest", func(t *testing.T) {
		got := pickIcon(icons, source.Size{Width: 512, Height: 512})
		if got == nil || got.Width != 128 {
			t.Fatalf("picked %+v, want the 128x128 entry", got)
		}
	})

	t.Run("malformed entries are skipped", func(t *testing.T) {
		bad := []ewmh.WmIcon{
			{Width: 64, Height: 64, Data: []uint{0}}, // truncated payload
			iconEntry(16, 16),
		}
		got := pickIcon(bad, source.Size{Width: 32, Height: 32})
		if got == nil || got.Width != 16 {
			t.Fatalf("picked %+v, want the intact 16x16 entry", got)
		}
	})

	t.Run("all malformed yields nil", func(t *testing.T) {
		bad := []ewmh.WmIcon{{Width: 8, Height: 8, Data: nil}}
		if got := pickIcon(bad, source.Size{Width: 8, Height: 8}); got != nil {
			t.Fatalf("picked %+v, want nil", got)
		}
	})
}

func TestIconToRGBA(t *testing.T) {
	icon := &ewmh.WmIcon{
		Width:  2,
		Height: 1,
		Data:   []uint{0xFF112233, 0x80FFFFFF},
	}
	img := iconToRGBA(icon)

	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xFF}) {
		t.Fatalf("pixel 0 = %v", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x80}) {
		t.Fatalf("pixel 1 = %v", got)
	}
}
