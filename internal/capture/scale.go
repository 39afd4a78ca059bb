package capture

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/bryanchriswhite/snapsource/internal/source"
)

// FitSize returns native scaled uniformly (up or down) to fit within
// requested, preserving aspect ratio. This is the engine's fixed scaling
// policy: no letterbox padding is added, so the returned size is the actual
// pixel size of the scaled output. A requested size with a zero dimension
// selects the native size.
func FitSize(native, requested source.Size) source.Size {
	if requested.IsZero() || native.IsZero() {
		return native
	}
	if native == requested {
		return native
	}

	scaleX := float64(requested.Width) / float64(native.Width)
	scaleY := float64(requested.Height) / float64(native.Height)
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	w := int(float64(native.Width)*scale + 0.5)
	h := int(float64(native.Height)*scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return source.Size{Width: w, Height: h}
}

// ScaleRGBA resizes img to target with bilinear interpolation. The input is
// returned unchanged when it already matches.
func ScaleRGBA(img *image.RGBA, target source.Size) *image.RGBA {
	bounds := img.Bounds()
	if bounds.Dx() == target.Width && bounds.Dy() == target.Height {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, target.Width, target.Height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
