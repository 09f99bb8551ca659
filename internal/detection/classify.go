package detection

import "math"

// Classification constants. Changing any of them changes which label a
// borderline blob gets.
const (
	// MinHullArea rejects blobs whose convex hull is smaller than this.
	MinHullArea = 100

	// SimplifyTolerance scales the hull perimeter into the Douglas-Peucker
	// epsilon used to count vertices.
	SimplifyTolerance = 0.025

	// MaxConfidence caps every reported confidence.
	MaxConfidence = 0.98

	triangleCircularityCeiling = 0.60
	rectangleMinExtent         = 0.45
	squareAspectLow            = 0.85
	squareAspectHigh           = 1.15
	strictSquareAspectLow      = 0.90
	strictSquareAspectHigh     = 1.10

	overSegmentedTriangleMaxExtent      = 0.55
	overSegmentedTriangleMaxCircularity = 0.70

	rotatedRectMinExtent      = 0.60
	rotatedRectMaxCircularity = 0.80
	rotatedRectMinSolidity    = 0.85

	pentagonMinCircularity = 0.70
	pentagonMaxCircularity = 0.92
	pentagonMinSolidity    = 0.80

	starMaxSolidity       = 0.70
	starMinCircularity    = 0.35
	starMaxCircularity    = 0.90
	roundMinCircularity   = 0.90
	roundCircleBonusScale = 0.3
	roundCircleBonusCap   = 0.06
	polyCircleMinVertices = 6
	polyCircleMinCirc     = 0.80
)

// rule is one entry of the decision table: if match holds, the blob is
// labelled shape with the given confidence.
type rule struct {
	name       string
	match      func(f Features) bool
	shape      ShapeType
	confidence func(f Features) float64
}

func fixed(c float64) func(Features) float64 {
	return func(Features) float64 { return c }
}

func between(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// classificationRules is evaluated top to bottom; the first match wins.
//
// Vertex count is the primary discriminator, but rasterisation makes it
// noisy, so each count carries secondary tests that steer a miscounted shape
// to the right label before the count-agnostic rules at the end.
var classificationRules = []rule{
	{
		name:       "three vertices, round",
		match:      func(f Features) bool { return f.Vertices == 3 && f.Circularity > triangleCircularityCeiling },
		shape:      Circle,
		confidence: fixed(0.85),
	},
	{
		name: "three vertices, elongated box",
		match: func(f Features) bool {
			return f.Vertices == 3 && f.Extent > rectangleMinExtent && f.Circularity < triangleCircularityCeiling &&
				(f.AspectRatio < squareAspectLow || f.AspectRatio > squareAspectHigh)
		},
		shape:      Rectangle,
		confidence: fixed(0.83),
	},
	{
		name: "three vertices, square box",
		match: func(f Features) bool {
			return f.Vertices == 3 && between(f.AspectRatio, strictSquareAspectLow, strictSquareAspectHigh) &&
				f.Extent > rectangleMinExtent && f.Circularity < triangleCircularityCeiling
		},
		shape:      Rectangle,
		confidence: fixed(0.85),
	},
	{
		name:       "three vertices",
		match:      func(f Features) bool { return f.Vertices == 3 },
		shape:      Triangle,
		confidence: fixed(0.90),
	},
	{
		name: "four vertices, over-segmented triangle",
		match: func(f Features) bool {
			return f.Vertices == 4 && f.Extent < overSegmentedTriangleMaxExtent &&
				f.Circularity < overSegmentedTriangleMaxCircularity
		},
		shape:      Triangle,
		confidence: fixed(0.88),
	},
	{
		name:  "four vertices",
		match: func(f Features) bool { return f.Vertices == 4 && f.Extent > rectangleMinExtent },
		shape: Rectangle,
		confidence: func(f Features) float64 {
			if between(f.AspectRatio, squareAspectLow, squareAspectHigh) {
				return 0.90 + 0.06
			}
			return 0.90 + 0.03
		},
	},
	{
		name: "five vertices, rotated rectangle",
		match: func(f Features) bool {
			return f.Vertices == 5 && f.Extent > rotatedRectMinExtent &&
				f.Circularity < rotatedRectMaxCircularity && f.Solidity > rotatedRectMinSolidity
		},
		shape:      Rectangle,
		confidence: fixed(0.87),
	},
	{
		name: "five to seven vertices",
		match: func(f Features) bool {
			return f.Vertices >= 5 && f.Vertices <= 7 &&
				f.Circularity > pentagonMinCircularity && f.Circularity < pentagonMaxCircularity &&
				f.Solidity > pentagonMinSolidity
		},
		shape:      Pentagon,
		confidence: fixed(0.90),
	},
	{
		name: "concave",
		match: func(f Features) bool {
			return f.Vertices >= 5 && f.Solidity < starMaxSolidity &&
				between(f.Circularity, starMinCircularity, starMaxCircularity)
		},
		shape:      Star,
		confidence: fixed(0.88),
	},
	{
		name:  "round",
		match: func(f Features) bool { return f.Circularity > roundMinCircularity },
		shape: Circle,
		confidence: func(f Features) float64 {
			return 0.92 + math.Min(roundCircleBonusCap, (f.Circularity-roundMinCircularity)*roundCircleBonusScale)
		},
	},
	{
		name: "many vertices",
		match: func(f Features) bool {
			return f.Vertices > polyCircleMinVertices && f.Circularity > polyCircleMinCirc
		},
		shape:      Circle,
		confidence: fixed(0.88),
	},
}

// Classify applies the decision table to a feature vector. It returns false
// when no rule matches.
func Classify(f Features) (ShapeType, float64, bool) {
	r := matchRule(f)
	if r == nil {
		return "", 0, false
	}
	return r.shape, math.Min(MaxConfidence, r.confidence(f)), true
}

func matchRule(f Features) *rule {
	for i := range classificationRules {
		if classificationRules[i].match(f) {
			return &classificationRules[i]
		}
	}
	return nil
}

// measurement is the geometry derived from one blob.
type measurement struct {
	bounds   BoundingBox
	centroid PointF
	features Features
}

// measure derives the hull and features of a blob. It returns false when the
// hull area is below MinHullArea.
func measure(blob Blob) (measurement, bool) {
	hull := ConvexHull(blob)
	area := PolygonArea(hull)
	if area < MinHullArea {
		return measurement{}, false
	}

	bounds := BoundingBoxOf(hull)
	perimeter := Perimeter(hull)

	ring := make([]Point, len(hull)+1)
	copy(ring, hull)
	ring[len(hull)] = hull[0]
	simplified := Simplify(ring, SimplifyTolerance*perimeter)

	f := Features{
		Vertices:    len(simplified),
		Circularity: Circularity(area, perimeter),
		Solidity:    math.Min(1, float64(len(blob))/area),
		HullArea:    area,
		Perimeter:   perimeter,
	}
	if bounds.Height > 0 {
		f.AspectRatio = float64(bounds.Width) / float64(bounds.Height)
	}
	if boxArea := bounds.Area(); boxArea > 0 {
		f.Extent = area / float64(boxArea)
	}

	return measurement{
		bounds:   bounds,
		centroid: Centroid(hull),
		features: f,
	}, true
}

// ComputeFeatures returns the classifier's feature vector for a blob, or false
// if the blob is too small to measure.
func ComputeFeatures(blob Blob) (Features, bool) {
	m, ok := measure(blob)
	return m.features, ok
}

// ClassifyBlob decides whether a blob is a recognisable shape.
//
// Returns false when the hull is too small or when no rule matches. The
// reported area is the blob's pixel count, not the hull area. FillColor is
// left empty; Detector fills it from the source buffer.
func ClassifyBlob(blob Blob) (DetectedShape, bool) {
	shape, _, ok := classifyBlob(blob)
	return shape, ok
}

// classifyBlob is ClassifyBlob that also names the matching rule, or the
// reason for rejection.
func classifyBlob(blob Blob) (DetectedShape, string, bool) {
	m, ok := measure(blob)
	if !ok {
		return DetectedShape{}, "hull too small", false
	}

	r := matchRule(m.features)
	if r == nil {
		return DetectedShape{}, "no rule matched", false
	}

	return DetectedShape{
		Type:       r.shape,
		Confidence: math.Min(MaxConfidence, r.confidence(m.features)),
		Bounds:     m.bounds,
		Centroid:   m.centroid,
		Area:       len(blob),
		Features:   m.features,
	}, r.name, true
}
