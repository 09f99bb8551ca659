package detection

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// ErrInvalidDimensions is returned when a pixel buffer's length does not match
// its declared width and height.
var ErrInvalidDimensions = errors.New("invalid image dimensions")

// PixelBuffer is a decoded raster image: Width × Height RGBA samples stored
// row-major, top-to-bottom, 4 bytes per pixel.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer wraps pix as a PixelBuffer after checking that
// len(pix) == width*height*4.
func NewPixelBuffer(width, height int, pix []uint8) (*PixelBuffer, error) {
	buf := &PixelBuffer{Width: width, Height: height, Pix: pix}
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	return buf, nil
}

// Validate reports ErrInvalidDimensions if the buffer violates its length invariant.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidDimensions)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, b.Width, b.Height)
	}
	if want := b.Width * b.Height * 4; len(b.Pix) != want {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d",
			ErrInvalidDimensions, b.Width, b.Height, want, len(b.Pix))
	}
	return nil
}

// Intensity is a single-channel luminance buffer, one byte per pixel.
type Intensity struct {
	Width  int
	Height int
	Pix    []uint8
}

// Image exposes the buffer as an *image.Gray without copying.
func (in *Intensity) Image() *image.Gray {
	return &image.Gray{Pix: in.Pix, Stride: in.Width, Rect: image.Rect(0, 0, in.Width, in.Height)}
}

// Mask is a binary segmentation: 255 marks foreground, 0 background.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// Image exposes the mask as an *image.Gray without copying.
func (m *Mask) Image() *image.Gray {
	return &image.Gray{Pix: m.Pix, Stride: m.Width, Rect: image.Rect(0, 0, m.Width, m.Height)}
}

// Foreground reports whether the pixel at (x, y) is set.
func (m *Mask) Foreground(x, y int) bool {
	return m.Pix[y*m.Width+x] != 0
}

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// PointF is a point with sub-pixel precision, used for centroids.
type PointF struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Blob is one 4-connected set of foreground pixels. The order of its points
// carries no meaning.
type Blob []Point

// BoundingBox is an axis-aligned box. Width and Height are the differences
// between the maximum and minimum coordinates of the enclosed points.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns Width × Height.
func (b BoundingBox) Area() int {
	return b.Width * b.Height
}

// ShapeType names a recognised shape.
type ShapeType string

const (
	Circle    ShapeType = "circle"
	Triangle  ShapeType = "triangle"
	Rectangle ShapeType = "rectangle"
	Pentagon  ShapeType = "pentagon"
	Star      ShapeType = "star"
)

// Features are the geometric measurements the classifier decides on.
type Features struct {
	// Vertices is the length of the simplified hull ring (first point repeated
	// at the end), so a clean triangle measures 4 and a clean quad 5.
	Vertices int `json:"vertices"`

	// Circularity is 4π·area/perimeter² of the hull, capped at 1.
	Circularity float64 `json:"circularity"`

	// AspectRatio is bounding-box width divided by height.
	AspectRatio float64 `json:"aspect_ratio"`

	// Extent is hull area divided by bounding-box area.
	Extent float64 `json:"extent"`

	// Solidity is blob pixel count divided by hull area, capped at 1.
	// Concave shapes such as stars score low.
	Solidity float64 `json:"solidity"`

	HullArea  float64 `json:"hull_area"`
	Perimeter float64 `json:"perimeter"`
}

// DetectedShape is one classified blob.
type DetectedShape struct {
	// Type is the recognised shape.
	Type ShapeType `json:"type"`

	// Confidence is the rule's score, 0.0 to 0.98.
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box of the blob's convex hull.
	Bounds BoundingBox `json:"bounds"`

	// Centroid is the mean of the hull vertices.
	Centroid PointF `json:"centroid"`

	// Area is the blob's pixel count. For concave shapes this is noticeably
	// smaller than the hull area.
	Area int `json:"area"`

	// FillColor is the mean colour of the blob's pixels as "#rrggbb".
	// Empty when the shape was classified without a source buffer.
	FillColor string `json:"fill_color,omitempty"`

	// Features holds the measurements behind the decision.
	Features Features `json:"features"`
}

// Segmentation strategies reported in DetectionResult.Strategy.
const (
	StrategyOtsu      = "otsu"
	StrategyOtsuClose = "otsu+close"
	StrategyFixed     = "fixed"
	StrategyNone      = "none"
)

// DetectionResult is the output of one pipeline run.
type DetectionResult struct {
	// Shapes are in discovery order: top-to-bottom, left-to-right by the
	// first pixel of each blob.
	Shapes []DetectedShape `json:"shapes"`

	// Count is len(Shapes).
	Count int `json:"count"`

	// ImageWidth and ImageHeight echo the input dimensions.
	ImageWidth  int `json:"image_width"`
	ImageHeight int `json:"image_height"`

	// Strategy names the mask that produced the blobs; StrategyNone when the
	// fallback ladder was exhausted.
	Strategy string `json:"strategy"`

	// Threshold is the intensity threshold of that mask.
	Threshold int `json:"threshold"`

	ProcessingTime   time.Duration `json:"-"`
	ProcessingTimeMs float64       `json:"processing_time_ms"`
}
