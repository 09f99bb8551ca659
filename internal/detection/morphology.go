package detection

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// closeRadius of 1 gives a 3×3 square structuring element.
const closeRadius = 1

// Close applies one morphological close (dilate then erode) to the mask.
//
// Each pass is a 3×3 max (dilate) or min (erode) filter with edge pixels
// extended outward. Closing bridges one-pixel gaps so that shapes broken up by
// dithering or hatching come back as single components. The input is not
// modified. bild splits the rows across goroutines and joins them before
// returning.
func Close(m *Mask) *Mask {
	closed := effect.Erode(effect.Dilate(m.Image(), closeRadius), closeRadius)
	return maskFromRGBA(closed, m.Width, m.Height)
}

// maskFromRGBA reads the red channel back into a mask. Gray input keeps
// R == G == B through the filters, so one channel is enough.
func maskFromRGBA(img *image.RGBA, width, height int) *Mask {
	out := &Mask{Width: width, Height: height, Pix: make([]uint8, width*height)}
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			if row[x*4] != 0 {
				out.Pix[y*width+x] = 255
			}
		}
	}
	return out
}
