package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/shape-detect-mcp/internal/detection"
)

// Region is a rectangular area of an image in source pixel coordinates.
// (X1, Y1) is inclusive and (X2, Y2) exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Frame is the part of a source image handed to the detector, together with
// what is needed to map results back onto the source.
type Frame struct {
	// Image is the cropped and possibly downscaled pixels, origin (0,0).
	Image *image.NRGBA

	// Offset is the source coordinate of the frame's top-left pixel.
	Offset image.Point

	// Scale is frame pixels per source pixel; 1 unless the frame was
	// downscaled to fit a maximum dimension.
	Scale float64

	// SourceWidth and SourceHeight are the dimensions of the whole source image.
	SourceWidth  int
	SourceHeight int
}

// PrepareFrame selects the part of img to analyse.
//
// Parameters:
//   - img: The source image.
//   - region: Optional sub-rectangle; nil means the whole image.
//   - maxDimension: If positive, frames wider or taller than this are
//     downscaled (Lanczos) to fit a maxDimension × maxDimension box,
//     preserving aspect ratio. Zero disables downscaling.
//
// Returns an error if the region lies outside the image bounds or is empty.
func PrepareFrame(img image.Image, region *Region, maxDimension int) (*Frame, error) {
	bounds := img.Bounds()

	var framed *image.NRGBA
	offset := bounds.Min
	if region == nil {
		framed = imaging.Clone(img)
	} else {
		if region.X1 < bounds.Min.X || region.Y1 < bounds.Min.Y || region.X2 > bounds.Max.X || region.Y2 > bounds.Max.Y {
			return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
				region.X1, region.Y1, region.X2, region.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
		}
		if region.X1 >= region.X2 || region.Y1 >= region.Y2 {
			return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
		}
		framed = imaging.Crop(img, image.Rect(region.X1, region.Y1, region.X2, region.Y2))
		offset = image.Pt(region.X1, region.Y1)
	}

	scale := 1.0
	if w, h := framed.Bounds().Dx(), framed.Bounds().Dy(); maxDimension > 0 && (w > maxDimension || h > maxDimension) {
		framed = imaging.Fit(framed, maxDimension, maxDimension, imaging.Lanczos)
		scale = float64(framed.Bounds().Dx()) / float64(w)
	}

	return &Frame{
		Image:        framed,
		Offset:       offset,
		Scale:        scale,
		SourceWidth:  bounds.Dx(),
		SourceHeight: bounds.Dy(),
	}, nil
}

// PixelBuffer exposes the frame as detector input.
func (f *Frame) PixelBuffer() (*detection.PixelBuffer, error) {
	return ToPixelBuffer(f.Image)
}

// ToPixelBuffer converts any image to a detector pixel buffer of
// non-premultiplied RGBA samples with a zero origin.
func ToPixelBuffer(img image.Image) (*detection.PixelBuffer, error) {
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != 4*nrgba.Rect.Dx() {
		nrgba = imaging.Clone(img)
	}
	b := nrgba.Bounds()
	buf, err := detection.NewPixelBuffer(b.Dx(), b.Dy(), nrgba.Pix)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	return buf, nil
}

// MapResult rewrites a detection result computed on the frame into source
// image coordinates: positions are divided by Scale and shifted by Offset,
// areas divided by Scale², and the image dimensions become the source's.
// Shape features stay in frame units. The input is not modified.
func (f *Frame) MapResult(res *detection.DetectionResult) *detection.DetectionResult {
	out := *res
	out.ImageWidth = f.SourceWidth
	out.ImageHeight = f.SourceHeight
	out.Shapes = make([]detection.DetectedShape, len(res.Shapes))

	for i, s := range res.Shapes {
		s.Bounds = detection.BoundingBox{
			X:      f.toSource(s.Bounds.X) + f.Offset.X,
			Y:      f.toSource(s.Bounds.Y) + f.Offset.Y,
			Width:  f.toSource(s.Bounds.Width),
			Height: f.toSource(s.Bounds.Height),
		}
		s.Centroid = detection.PointF{
			X: s.Centroid.X/f.Scale + float64(f.Offset.X),
			Y: s.Centroid.Y/f.Scale + float64(f.Offset.Y),
		}
		s.Area = int(math.Round(float64(s.Area) / (f.Scale * f.Scale)))
		out.Shapes[i] = s
	}

	return &out
}

func (f *Frame) toSource(v int) int {
	return int(math.Round(float64(v) / f.Scale))
}
