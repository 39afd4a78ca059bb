package source

import (
	"fmt"
	"image"
	"image/color"
)

// ImageBuffer is an owned pixel buffer: row-major, top-left origin, no
// padding between rows. Channels is 1 (grayscale), 3 (RGB) or 4 (RGBA).
// Buffers are produced fresh per capture or extraction call and belong
// exclusively to the caller.
type ImageBuffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// NewImageBuffer allocates a zeroed buffer.
func NewImageBuffer(width, height, channels int) (*ImageBuffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("image dimensions must be non-negative, got %dx%d", width, height)
	}
	switch channels {
	case 1, 3, 4:
	default:
		return nil, fmt.Errorf("unsupported channel count %d (want 1, 3 or 4)", channels)
	}
	return &ImageBuffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]byte, width*height*channels),
	}, nil
}

// FromRGBA copies an RGBA image into a 4-channel buffer with tight rows.
func FromRGBA(img *image.RGBA) *ImageBuffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf := &ImageBuffer{
		Width:    w,
		Height:   h,
		Channels: 4,
		Pix:      make([]byte, w*h*4),
	}
	for y := 0; y < h; y++ {
		src := img.Pix[(y+bounds.Min.Y-img.Rect.Min.Y)*img.Stride+(bounds.Min.X-img.Rect.Min.X)*4:]
		copy(buf.Pix[y*w*4:(y+1)*w*4], src[:w*4])
	}
	return buf
}

// Size returns the buffer dimensions.
func (b *ImageBuffer) Size() Size {
	return Size{Width: b.Width, Height: b.Height}
}

// Stride returns the bytes per row.
func (b *ImageBuffer) Stride() int {
	return b.Width * b.Channels
}

// RGBA expands the buffer to a stdlib RGBA image regardless of channel
// count. Grayscale and RGB rows gain an opaque alpha channel.
func (b *ImageBuffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			src := (y*b.Width + x) * b.Channels
			dst := y*img.Stride + x*4
			switch b.Channels {
			case 1:
				v := b.Pix[src]
				img.Pix[dst] = v
				img.Pix[dst+1] = v
				img.Pix[dst+2] = v
				img.Pix[dst+3] = 255
			case 3:
				img.Pix[dst] = b.Pix[src]
				img.Pix[dst+1] = b.Pix[src+1]
				img.Pix[dst+2] = b.Pix[src+2]
				img.Pix[dst+3] = 255
			case 4:
				copy(img.Pix[dst:dst+4], b.Pix[src:src+4])
			}
		}
	}
	return img
}

// Gray collapses the buffer to a single-channel grayscale buffer using the
// stdlib luminance weights.
func (b *ImageBuffer) Gray() *ImageBuffer {
	out := &ImageBuffer{
		Width:    b.Width,
		Height:   b.Height,
		Channels: 1,
		Pix:      make([]byte, b.Width*b.Height),
	}
	for i := 0; i < b.Width*b.Height; i++ {
		src := i * b.Channels
		switch b.Channels {
		case 1:
			out.Pix[i] = b.Pix[src]
		default:
			c := color.GrayModel.Convert(color.RGBA{
				R: b.Pix[src],
				G: b.Pix[src+1],
				B: b.Pix[src+2],
				A: 255,
			}).(color.Gray)
			out.Pix[i] = c.Y
		}
	}
	return out
}

func (b *ImageBuffer) String() string {
	return fmt.Sprintf("ImageBuffer(%dx%d, %d channels)", b.Width, b.Height, b.Channels)
}
