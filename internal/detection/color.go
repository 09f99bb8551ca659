package detection

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// meanColor returns the average RGB colour of the blob's pixels in buf as a
// lowercase "#rrggbb" string. Alpha is ignored.
func meanColor(buf *PixelBuffer, blob Blob) string {
	if len(blob) == 0 {
		return ""
	}

	var r, g, b float64
	for _, p := range blob {
		i := (p.Y*buf.Width + p.X) * 4
		r += float64(buf.Pix[i])
		g += float64(buf.Pix[i+1])
		b += float64(buf.Pix[i+2])
	}

	n := float64(len(blob)) * 255
	c := colorful.Color{R: r / n, G: g / n, B: b / n}
	return c.Clamped().Hex()
}
