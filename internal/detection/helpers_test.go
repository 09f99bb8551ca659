package detection

import (
	"image"
	"image/color"
	"math"
	"testing"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

func rgba(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// region reports whether the pixel at (x, y) belongs to a drawn shape.
type region func(x, y int) bool

// createCanvas creates a solid color test image
func createCanvas(width, height int, bg color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, bg)
		}
	}
	return img
}

// paint fills every pixel inside r with c.
func paint(img *image.RGBA, r region, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r(x, y) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func toBuffer(t *testing.T, img *image.RGBA) *PixelBuffer {
	t.Helper()
	b := img.Bounds()
	buf, err := NewPixelBuffer(b.Dx(), b.Dy(), img.Pix)
	if err != nil {
		t.Fatalf("NewPixelBuffer failed: %v", err)
	}
	return buf
}

// drawShapes renders black shapes on a white canvas.
func drawShapes(t *testing.T, width, height int, shapes ...region) *PixelBuffer {
	t.Helper()
	img := createCanvas(width, height, white)
	for _, s := range shapes {
		paint(img, s, black)
	}
	return toBuffer(t, img)
}

func disc(cx, cy, r int) region {
	return func(x, y int) bool {
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= r*r
	}
}

// box covers x1 ≤ x < x2, y1 ≤ y < y2.
func box(x1, y1, x2, y2 int) region {
	return func(x, y int) bool {
		return x >= x1 && x < x2 && y >= y1 && y < y2
	}
}

// polygon uses even-odd ray casting, sampling at integer pixel coordinates.
func polygon(pts []PointF) region {
	return func(x, y int) bool {
		px, py := float64(x), float64(y)
		inside := false
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if (a.Y > py) != (b.Y > py) && px < (b.X-a.X)*(py-a.Y)/(b.Y-a.Y)+a.X {
				inside = !inside
			}
		}
		return inside
	}
}

// regularPolygon returns n vertices on a circle, the first pointing up.
func regularPolygon(cx, cy, r float64, n int) []PointF {
	pts := make([]PointF, n)
	for i := range pts {
		a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		pts[i] = PointF{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}

// equilateralTriangle is centred on (cx, cy) with a horizontal base.
func equilateralTriangle(cx, cy, side float64) []PointF {
	h := side * math.Sqrt(3) / 2
	return []PointF{
		{X: cx, Y: cy - h/2},
		{X: cx - side/2, Y: cy + h/2},
		{X: cx + side/2, Y: cy + h/2},
	}
}

// fivePointStar alternates outer and inner radii, first point up.
func fivePointStar(cx, cy, outer, inner float64) []PointF {
	pts := make([]PointF, 10)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		pts[i] = PointF{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}

// newMask builds a mask with the pixels inside r set.
func newMask(width, height int, r region) *Mask {
	m := &Mask{Width: width, Height: height, Pix: make([]uint8, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if r(x, y) {
				m.Pix[y*width+x] = 255
			}
		}
	}
	return m
}

// filledBlob lists the points of r within [0,width)×[0,height) in row-major order.
func filledBlob(width, height int, r region) Blob {
	var b Blob
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if r(x, y) {
				b = append(b, Point{X: x, Y: y})
			}
		}
	}
	return b
}
