package detection

import (
	"github.com/anthonynsimon/bild/histogram"
	"gonum.org/v1/gonum/stat"
)

// lightBackgroundMean is the mean brightness above which an image is treated
// as dark shapes on a light background.
const lightBackgroundMean = 128

// Polarity values reported by ThresholdReport.
const (
	PolarityDarkOnLight = "dark_on_light"
	PolarityLightOnDark = "light_on_dark"
)

// levels holds the intensity value of every histogram bin, for weighted means.
var levels = func() []float64 {
	l := make([]float64, 256)
	for i := range l {
		l[i] = float64(i)
	}
	return l
}()

// Histogram counts the pixels at each of the 256 intensity levels.
func Histogram(in *Intensity) []int {
	return histogram.NewRGBAHistogram(in.Image()).R.Bins
}

// MeanBrightness returns the mean intensity described by a 256-bin histogram.
func MeanBrightness(hist []int) float64 {
	weights := make([]float64, len(hist))
	total := 0
	for i, c := range hist {
		weights[i] = float64(c)
		total += c
	}
	if total == 0 {
		return 0
	}
	return stat.Mean(levels[:len(hist)], weights)
}

// OtsuThreshold selects the threshold that maximises the between-class
// variance wB·wF·(mB−mF)² of a 256-bin histogram, where the background class
// holds intensities ≤ t.
//
// When a run of consecutive thresholds share the maximum (the empty gap
// between two clusters), the middle of that run is returned rather than its
// first element, so clean two-level images split halfway between their levels.
// A histogram with a single populated level returns 0.
func OtsuThreshold(hist []int) uint8 {
	total := 0
	sum := 0.0
	for i, c := range hist {
		total += c
		sum += float64(i * c)
	}

	var sumB float64
	wB := 0
	maxVar := -1.0
	first, last := 0, 0

	for t := 0; t < len(hist); t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}

		sumB += float64(t * hist[t])
		pB := float64(wB) / float64(total)
		pF := float64(wF) / float64(total)
		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)

		between := pB * pF * (mB - mF) * (mB - mF)
		switch {
		case between > maxVar:
			maxVar = between
			first, last = t, t
		case between == maxVar && last == t-1:
			last = t
		}
	}

	return uint8((first + last) / 2)
}

// Binarize segments the intensity buffer with an Otsu threshold and returns
// the mask together with the threshold used.
//
// If the mean brightness is above 128 the image is read as dark shapes on a
// light background and pixels with intensity < t become foreground;
// otherwise pixels with intensity ≥ t do.
func Binarize(in *Intensity) (*Mask, uint8) {
	hist := Histogram(in)
	t := OtsuThreshold(hist)
	return threshold(in, t, MeanBrightness(hist) > lightBackgroundMean), t
}

// BinarizeFixed applies the same polarity rule as Binarize with a
// caller-supplied threshold.
func BinarizeFixed(in *Intensity, t uint8) *Mask {
	return threshold(in, t, MeanBrightness(Histogram(in)) > lightBackgroundMean)
}

func threshold(in *Intensity, t uint8, lightBackground bool) *Mask {
	m := &Mask{Width: in.Width, Height: in.Height, Pix: make([]uint8, len(in.Pix))}
	for i, v := range in.Pix {
		if (lightBackground && v < t) || (!lightBackground && v >= t) {
			m.Pix[i] = 255
		}
	}
	return m
}

// ThresholdReport summarises how an image would be segmented.
type ThresholdReport struct {
	// Threshold is the Otsu threshold (0-255).
	Threshold int `json:"threshold"`

	// MeanBrightness is the mean intensity (0-255).
	MeanBrightness float64 `json:"mean_brightness"`

	// Polarity is "dark_on_light" when mean brightness is above 128,
	// otherwise "light_on_dark".
	Polarity string `json:"polarity"`

	// ForegroundFraction is the share of pixels marked foreground (0.0 to 1.0).
	ForegroundFraction float64 `json:"foreground_fraction"`

	ImageWidth  int `json:"image_width"`
	ImageHeight int `json:"image_height"`
}

// AnalyzeThreshold runs the luminance and Otsu stages only and reports the
// resulting segmentation parameters.
func AnalyzeThreshold(buf *PixelBuffer) (*ThresholdReport, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	in := Luminance(buf)
	hist := Histogram(in)
	t := OtsuThreshold(hist)
	mean := MeanBrightness(hist)
	light := mean > lightBackgroundMean

	mask := threshold(in, t, light)
	fg := 0
	for _, v := range mask.Pix {
		if v != 0 {
			fg++
		}
	}

	polarity := PolarityLightOnDark
	if light {
		polarity = PolarityDarkOnLight
	}

	return &ThresholdReport{
		Threshold:          int(t),
		MeanBrightness:     mean,
		Polarity:           polarity,
		ForegroundFraction: float64(fg) / float64(len(mask.Pix)),
		ImageWidth:         buf.Width,
		ImageHeight:        buf.Height,
	}, nil
}
