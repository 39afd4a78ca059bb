package capture

import "image"

// convertImageData converts X11 ZPixmap data (32bpp BGRx at depth 24/32) to
// a tightly-packed RGBA image.
func convertImageData(data []byte, width, height, depth int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if depth != 24 && depth != 32 {
		return img
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			if i+3 >= len(data) {
				return img
			}
			o := y*img.Stride + x*4
			img.Pix[o] = data[i+2]   // R
			img.Pix[o+1] = data[i+1] // G
			img.Pix[o+2] = data[i]   // B
			img.Pix[o+3] = 255
		}
	}
	return img
}
