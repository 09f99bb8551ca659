package imaging

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/ironsheep/shape-detect-mcp/internal/detection"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPrepareFrame_WholeImage(t *testing.T) {
	img := createPatternImage(100, 80)

	frame, err := PrepareFrame(img, nil, 0)
	if err != nil {
		t.Fatalf("PrepareFrame failed: %v", err)
	}

	b := frame.Image.Bounds()
	if b.Min != (image.Point{}) || b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("frame bounds: got %v, want (0,0)-(100,80)", b)
	}
	if frame.Offset != (image.Point{}) {
		t.Errorf("Offset: got %v, want (0,0)", frame.Offset)
	}
	if frame.Scale != 1 {
		t.Errorf("Scale: got %v, want 1", frame.Scale)
	}
	if frame.SourceWidth != 100 || frame.SourceHeight != 80 {
		t.Errorf("source: got %dx%d, want 100x80", frame.SourceWidth, frame.SourceHeight)
	}
}

func TestPrepareFrame_Region(t *testing.T) {
	img := createPatternImage(100, 100)

	frame, err := PrepareFrame(img, &Region{X1: 50, Y1: 0, X2: 100, Y2: 50}, 0)
	if err != nil {
		t.Fatalf("PrepareFrame failed: %v", err)
	}

	if frame.Image.Bounds().Dx() != 50 || frame.Image.Bounds().Dy() != 50 {
		t.Errorf("dimensions: got %v, want 50x50", frame.Image.Bounds())
	}
	if frame.Offset != image.Pt(50, 0) {
		t.Errorf("Offset: got %v, want (50,0)", frame.Offset)
	}

	// top-right quadrant is green
	c := frame.Image.NRGBAAt(25, 25)
	if c.R != 0 || c.G != 255 || c.B != 0 {
		t.Errorf("frame color: got (%d,%d,%d), want (0,255,0)", c.R, c.G, c.B)
	}
}

func TestPrepareFrame_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name   string
		region Region
	}{
		{"x1 negative", Region{-1, 0, 50, 50}},
		{"y1 negative", Region{0, -1, 50, 50}},
		{"x2 too large", Region{0, 0, 101, 50}},
		{"y2 too large", Region{0, 0, 50, 101}},
		{"all out of bounds", Region{-1, -1, 200, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PrepareFrame(img, &tt.region, 0)
			if err == nil {
				t.Fatal("PrepareFrame should fail for out-of-bounds region")
			}
			if !strings.Contains(err.Error(), "outside image bounds") {
				t.Errorf("error: got %q, want bounds message", err)
			}
		})
	}
}

func TestPrepareFrame_InvalidRegion(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name   string
		region Region
	}{
		{"x1 >= x2", Region{50, 0, 50, 50}},
		{"x1 > x2", Region{60, 0, 50, 50}},
		{"y1 >= y2", Region{0, 50, 50, 50}},
		{"y1 > y2", Region{0, 60, 50, 50}},
		{"zero area", Region{50, 50, 50, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PrepareFrame(img, &tt.region, 0); err == nil {
				t.Error("PrepareFrame should fail for invalid region")
			}
		})
	}
}

func TestPrepareFrame_Downscale(t *testing.T) {
	img := createInMemoryImage(400, 200, color.RGBA{255, 0, 0, 255})

	frame, err := PrepareFrame(img, nil, 100)
	if err != nil {
		t.Fatalf("PrepareFrame failed: %v", err)
	}

	if frame.Image.Bounds().Dx() != 100 || frame.Image.Bounds().Dy() != 50 {
		t.Errorf("dimensions: got %v, want 100x50", frame.Image.Bounds())
	}
	if frame.Scale != 0.25 {
		t.Errorf("Scale: got %v, want 0.25", frame.Scale)
	}
}

func TestPrepareFrame_SmallImageNotUpscaled(t *testing.T) {
	img := createInMemoryImage(40, 30, color.RGBA{0, 0, 0, 255})

	frame, err := PrepareFrame(img, nil, 100)
	if err != nil {
		t.Fatalf("PrepareFrame failed: %v", err)
	}
	if frame.Image.Bounds().Dx() != 40 || frame.Scale != 1 {
		t.Errorf("frame: got width %d scale %v, want 40 and 1", frame.Image.Bounds().Dx(), frame.Scale)
	}
}

func TestToPixelBuffer(t *testing.T) {
	img := createPatternImage(10, 10)

	buf, err := ToPixelBuffer(img)
	if err != nil {
		t.Fatalf("ToPixelBuffer failed: %v", err)
	}
	if buf.Width != 10 || buf.Height != 10 || len(buf.Pix) != 400 {
		t.Fatalf("buffer: got %dx%d with %d bytes, want 10x10 with 400", buf.Width, buf.Height, len(buf.Pix))
	}

	// bottom-left pixel is blue
	i := (9*10 + 0) * 4
	if buf.Pix[i] != 0 || buf.Pix[i+1] != 0 || buf.Pix[i+2] != 255 || buf.Pix[i+3] != 255 {
		t.Errorf("pixel (0,9): got %v, want [0 0 255 255]", buf.Pix[i:i+4])
	}
}

func TestToPixelBuffer_OffsetOrigin(t *testing.T) {
	src := createPatternImage(20, 20)
	sub := src.SubImage(image.Rect(10, 10, 20, 20))

	buf, err := ToPixelBuffer(sub)
	if err != nil {
		t.Fatalf("ToPixelBuffer failed: %v", err)
	}
	if buf.Width != 10 || buf.Height != 10 {
		t.Fatalf("dimensions: got %dx%d, want 10x10", buf.Width, buf.Height)
	}
	// bottom-right quadrant is white
	if buf.Pix[0] != 255 || buf.Pix[1] != 255 || buf.Pix[2] != 255 {
		t.Errorf("pixel (0,0): got %v, want white", buf.Pix[:4])
	}
}

func TestFrame_MapResult(t *testing.T) {
	frame := &Frame{Offset: image.Pt(100, 40), Scale: 0.5, SourceWidth: 800, SourceHeight: 600}
	res := &detection.DetectionResult{
		Shapes: []detection.DetectedShape{{
			Type:     detection.Circle,
			Bounds:   detection.BoundingBox{X: 10, Y: 20, Width: 30, Height: 30},
			Centroid: detection.PointF{X: 25, Y: 35},
			Area:     700,
		}},
		Count:       1,
		ImageWidth:  300,
		ImageHeight: 250,
		Strategy:    detection.StrategyOtsu,
	}

	mapped := frame.MapResult(res)

	s := mapped.Shapes[0]
	wantBounds := detection.BoundingBox{X: 120, Y: 80, Width: 60, Height: 60}
	if s.Bounds != wantBounds {
		t.Errorf("Bounds: got %+v, want %+v", s.Bounds, wantBounds)
	}
	if math.Abs(s.Centroid.X-150) > 1e-9 || math.Abs(s.Centroid.Y-110) > 1e-9 {
		t.Errorf("Centroid: got %+v, want (150,110)", s.Centroid)
	}
	if s.Area != 2800 {
		t.Errorf("Area: got %d, want 2800", s.Area)
	}
	if mapped.ImageWidth != 800 || mapped.ImageHeight != 600 {
		t.Errorf("dimensions: got %dx%d, want 800x600", mapped.ImageWidth, mapped.ImageHeight)
	}
	if mapped.Strategy != detection.StrategyOtsu || mapped.Count != 1 {
		t.Errorf("metadata not carried over: %+v", mapped)
	}

	// input untouched
	if res.Shapes[0].Bounds.X != 10 || res.ImageWidth != 300 {
		t.Errorf("input modified: %+v", res)
	}
}

func TestFrame_DetectRegion(t *testing.T) {
	img := createInMemoryImage(200, 120, color.White)
	for y := 50; y < 90; y++ {
		for x := 130; x < 170; x++ {
			img.Set(x, y, color.Black)
		}
	}

	frame, err := PrepareFrame(img, &Region{X1: 100, Y1: 20, X2: 200, Y2: 120}, 0)
	if err != nil {
		t.Fatalf("PrepareFrame failed: %v", err)
	}
	buf, err := frame.PixelBuffer()
	if err != nil {
		t.Fatalf("PixelBuffer failed: %v", err)
	}
	res, err := detection.Detect(buf)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	mapped := frame.MapResult(res)
	if mapped.Count != 1 {
		t.Fatalf("shape count: got %d, want 1", mapped.Count)
	}
	want := detection.BoundingBox{X: 130, Y: 50, Width: 39, Height: 39}
	if mapped.Shapes[0].Bounds != want {
		t.Errorf("Bounds: got %+v, want %+v", mapped.Shapes[0].Bounds, want)
	}
}
