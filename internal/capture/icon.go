package capture

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/bryanchriswhite/snapsource/internal/source"
)

// Icon extracts a window's _NET_WM_ICON scaled to fit within size. Windows
// without an advertised icon (and displays, which never have one) yield an
// error the enumerator treats as "no icon", not as a failure.
func (c *Capturer) Icon(win xproto.Window, size source.Size) (*source.ImageBuffer, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}

	icons, err := ewmh.WmIconGet(c.conn.XU, win)
	if err != nil {
		return nil, fmt.Errorf("window %d has no icon property: %w", win, err)
	}
	if len(icons) == 0 {
		return nil, fmt.Errorf("window %d advertises no icon sizes", win)
	}

	best := pickIcon(icons, size)
	if best == nil {
		return nil, fmt.Errorf("window %d has only malformed icon entries", win)
	}
	img := iconToRGBA(best)

	actual := FitSize(source.Size{Width: int(best.Width), Height: int(best.Height)}, size)
	return source.FromRGBA(ScaleRGBA(img, actual)), nil
}

// pickIcon prefers the smallest icon that still covers the requested size,
// falling back to the largest available.
func pickIcon(icons []ewmh.WmIcon, size source.Size) *ewmh.WmIcon {
	var best *ewmh.WmIcon
	var largest *ewmh.WmIcon
	for i := range icons {
		icon := &icons[i]
		if icon.Width == 0 || icon.Height == 0 || len(icon.Data) < int(icon.Width*icon.Height) {
			continue
		}
		if largest == nil || icon.Width*icon.Height > largest.Width*largest.Height {
			largest = icon
		}
		covers := int(icon.Width) >= size.Width && int(icon.Height) >= size.Height
		if covers && (best == nil || icon.Width*icon.Height < best.Width*best.Height) {
			best = icon
		}
	}
	if best == nil {
		best = largest
	}
	return best
}

// iconToRGBA converts _NET_WM_ICON ARGB cardinals to an RGBA image.
func iconToRGBA(icon *ewmh.WmIcon) *image.RGBA {
	w, h := int(icon.Width), int(icon.Height)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h && i < len(icon.Data); i++ {
		argb := icon.Data[i]
		o := i * 4
		img.Pix[o] = byte(argb >> 16)   // R
		img.Pix[o+1] = byte(argb >> 8)  // G
		img.Pix[o+2] = byte(argb)       // B
		img.Pix[o+3] = byte(argb >> 24) // A
	}
	return img
}
