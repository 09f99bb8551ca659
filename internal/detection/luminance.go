package detection

import "math"

// transparentAlpha is the alpha below which a pixel counts as background.
const transparentAlpha = 128

// Luminance reduces an RGBA buffer to one intensity byte per pixel.
//
// Uses ITU-R BT.601 luminance weights: Y = 0.299*R + 0.587*G + 0.114*B,
// rounded to the nearest integer. Pixels with alpha < 128 are reported as
// white (255) whatever their stored colour, so transparent areas of
// composited images behave as background.
//
// The caller must have validated buf.
func Luminance(buf *PixelBuffer) *Intensity {
	n := buf.Width * buf.Height
	out := &Intensity{Width: buf.Width, Height: buf.Height, Pix: make([]uint8, n)}

	for i := 0; i < n; i++ {
		p := buf.Pix[i*4 : i*4+4 : i*4+4]
		out.Pix[i] = luma(p[0], p[1], p[2], p[3])
	}

	return out
}

// luma converts one RGBA sample to its intensity.
func luma(r, g, b, a uint8) uint8 {
	if a < transparentAlpha {
		return 255
	}
	y := math.Round(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
	if y < 0 {
		return 0
	}
	if y > 255 {
		return 255
	}
	return uint8(y)
}
