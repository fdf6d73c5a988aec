package detector

import (
	"fmt"
	"image"
	"math"
	"os"

	pigo "github.com/esimov/pigo/core"
	"gonum.org/v1/gonum/stat"

	"go-photo-feedback/pkg/models"
)

// qualityThreshold filters weak cascade detections; pigo's leaf scores
// below ~5 are mostly background noise.
const qualityThreshold = 5.0

// PigoDetector is the production FaceDetector: a pigo binary cascade for
// face localization plus a mouth-region heuristic that turns the detected
// face into coarse emotion probabilities.
//
// TODO: replace the mouth-contrast expression heuristic with a dedicated
// expression model once one is hosted alongside the cascade file.
type PigoDetector struct {
	classifier *pigo.Pigo
}

// NewPigoDetector loads and unpacks the binary cascade file. This is the
// explicit initialization step the scoring engine does not own: callers
// create the detector once at process start and inject it.
func NewPigoDetector(cascadePath string) (*PigoDetector, error) {
	cascade, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("reading cascade file: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpacking cascade file: %w", err)
	}
	return &PigoDetector{classifier: classifier}, nil
}

// Detect runs the cascade over the photo and returns expression
// probabilities for the strongest detected face, or (nil, nil) when no
// face clears the quality threshold.
func (d *PigoDetector) Detect(img image.Image) (*models.FaceExpression, error) {
	src := pigo.ImgToNRGBA(img)
	pixels := pigo.RgbToGrayscale(src)
	cols, rows := src.Bounds().Max.X, src.Bounds().Max.Y
	if cols < 20 || rows < 20 {
		// Smaller than the minimum detection window: no face by definition.
		return nil, nil
	}

	cParams := pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     max(cols, rows),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(cParams, 0.0)
	dets = d.classifier.ClusterDetections(dets, 0.2)

	var best pigo.Detection
	found := false
	for _, det := range dets {
		if det.Q > qualityThreshold && (!found || det.Q > best.Q) {
			best = det
			found = true
		}
	}
	if !found {
		return nil, nil
	}

	return &models.FaceExpression{
		Expressions:    estimateExpressions(pixels, rows, cols, best),
		DetectionScore: math.Min(float64(best.Q)/50.0, 1.0),
	}, nil
}

// estimateExpressions derives coarse emotion probabilities from the mouth
// band of the detected face. A smile reads as strong local contrast there
// (teeth and lip edges against skin); a flat mouth band reads as neutral.
func estimateExpressions(pixels []uint8, rows, cols int, det pigo.Detection) map[string]float64 {
	half := det.Scale / 2

	// Mouth band: lower-middle of the face box.
	top := det.Row + det.Scale/8
	bottom := det.Row + (det.Scale*3)/8
	left := det.Col - half/2
	right := det.Col + half/2

	var values []float64
	for y := top; y < bottom; y++ {
		if y < 0 || y >= rows {
			continue
		}
		for x := left; x < right; x++ {
			if x < 0 || x >= cols {
				continue
			}
			values = append(values, float64(pixels[y*cols+x]))
		}
	}

	happy := 0.0
	if len(values) > 1 {
		happy = math.Min(stat.StdDev(values, nil)/48.0, 1.0)
	}
	residual := 1.0 - happy

	return map[string]float64{
		"happy":     happy,
		"neutral":   residual * 0.8,
		"sad":       residual * 0.1,
		"angry":     residual * 0.05,
		"surprised": residual * 0.05,
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
