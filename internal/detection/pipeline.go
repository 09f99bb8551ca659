package detection

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultFixedThresholds is the fallback ladder tried, in order, when neither
// the Otsu mask nor its closed version yields a blob.
var DefaultFixedThresholds = []uint8{100, 127, 150, 180}

// Detector runs the shape detection pipeline. A Detector holds no per-image
// state, so one value may serve concurrent calls.
type Detector struct {
	// FixedThresholds is the fallback ladder. Nil means DefaultFixedThresholds.
	FixedThresholds []uint8

	// Logger receives ladder decisions and per-run summaries at debug level.
	Logger zerolog.Logger
}

// NewDetector returns a Detector with the default ladder that logs to logger
// under component "detector".
func NewDetector(logger zerolog.Logger) *Detector {
	return &Detector{
		FixedThresholds: DefaultFixedThresholds,
		Logger:          logger.With().Str("component", "detector").Logger(),
	}
}

// Detect runs the pipeline with a silent default Detector.
func Detect(buf *PixelBuffer) (*DetectionResult, error) {
	return NewDetector(zerolog.Nop()).Detect(buf)
}

// Detect finds and classifies the shapes in buf.
//
// # Algorithm
//
//  1. Reduce to luminance and binarize with an Otsu threshold.
//  2. Extract 4-connected blobs and filter them by bounding-box area.
//  3. If no blob survives, close the Otsu mask (3×3 dilate then erode) and
//     retry; if still nothing, re-binarize with each fixed threshold in turn
//     and stop at the first that yields a blob.
//  4. Classify every surviving blob; rejected blobs are skipped.
//
// An image with no shapes is a successful, empty result. The only error is
// ErrInvalidDimensions when buf violates its length invariant.
func (d *Detector) Detect(buf *PixelBuffer) (*DetectionResult, error) {
	start := time.Now()

	if err := buf.Validate(); err != nil {
		return nil, err
	}

	w, h := buf.Width, buf.Height
	in := Luminance(buf)
	hist := Histogram(in)
	otsu := OtsuThreshold(hist)
	light := MeanBrightness(hist) > lightBackgroundMean

	mask := threshold(in, otsu, light)
	blobs := FilterBlobs(ExtractBlobs(mask), w, h)
	strategy, used := StrategyOtsu, otsu

	if len(blobs) == 0 {
		d.Logger.Debug().Int("threshold", int(otsu)).Msg("otsu mask empty, closing")
		blobs = FilterBlobs(ExtractBlobs(Close(mask)), w, h)
		strategy = StrategyOtsuClose
	}

	if len(blobs) == 0 {
		for _, t := range d.thresholds() {
			blobs = FilterBlobs(ExtractBlobs(threshold(in, t, light)), w, h)
			if len(blobs) > 0 {
				strategy, used = StrategyFixed, t
				break
			}
			d.Logger.Debug().Int("threshold", int(t)).Msg("fixed threshold empty")
		}
	}

	if len(blobs) == 0 {
		strategy = StrategyNone
	}

	shapes := make([]DetectedShape, 0, len(blobs))
	for i, blob := range blobs {
		shape, reason, ok := classifyBlob(blob)
		if !ok {
			d.Logger.Debug().Int("blob", i).Int("points", len(blob)).Str("reason", reason).Msg("blob rejected")
			continue
		}
		shape.FillColor = meanColor(buf, blob)
		d.Logger.Debug().
			Int("blob", i).
			Str("shape", string(shape.Type)).
			Float64("confidence", shape.Confidence).
			Str("rule", reason).
			Msg("blob classified")
		shapes = append(shapes, shape)
	}

	elapsed := time.Since(start)
	d.Logger.Debug().
		Int("width", w).
		Int("height", h).
		Str("strategy", strategy).
		Int("threshold", int(used)).
		Int("blobs", len(blobs)).
		Int("shapes", len(shapes)).
		Dur("elapsed", elapsed).
		Msg("detection complete")

	return &DetectionResult{
		Shapes:           shapes,
		Count:            len(shapes),
		ImageWidth:       w,
		ImageHeight:      h,
		Strategy:         strategy,
		Threshold:        int(used),
		ProcessingTime:   elapsed,
		ProcessingTimeMs: float64(elapsed.Microseconds()) / 1000,
	}, nil
}

func (d *Detector) thresholds() []uint8 {
	if d.FixedThresholds == nil {
		return DefaultFixedThresholds
	}
	return d.FixedThresholds
}
