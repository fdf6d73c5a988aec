package analyzer

import (
	"image"
	"math"

	apperrors "go-photo-feedback/internal/errors"
	"go-photo-feedback/pkg/models"
)

const (
	warnBlurry = "Photo is blurry; use a sharper, steadier shot"
	warnNoFace = "No face detected; make sure your face is clearly visible"
)

// coreAnalyzer implements PhotoAnalyzer. It holds only the injected face
// detector and the fixed calibration constants, so concurrent calls need
// no coordination.
type coreAnalyzer struct {
	detector FaceDetector
	cal      Calibration
}

// NewPhotoAnalyzer creates the scoring engine with default calibration.
// The face detector is a ready-to-use capability owned by the caller's
// process lifecycle; the engine never initializes or closes it.
func NewPhotoAnalyzer(detector FaceDetector) PhotoAnalyzer {
	return NewPhotoAnalyzerWithCalibration(detector, DefaultCalibration())
}

// NewPhotoAnalyzerWithCalibration creates the engine with custom scoring
// constants.
func NewPhotoAnalyzerWithCalibration(detector FaceDetector, cal Calibration) PhotoAnalyzer {
	return &coreAnalyzer{detector: detector, cal: cal}
}

// ScoreSharpness derives the blur result from Laplacian edge-response
// variance.
func (ca *coreAnalyzer) ScoreSharpness(img image.Image) (models.BlurResult, error) {
	plane, width, height, err := grayscalePlane(img)
	if err != nil {
		return models.BlurResult{}, err
	}
	return scoreSharpness(computeEdgeVariance(plane, width, height), ca.cal), nil
}

// ScoreExposure derives the lighting result from the intensity histogram.
func (ca *coreAnalyzer) ScoreExposure(img image.Image) (models.LightingResult, error) {
	plane, _, _, err := grayscalePlane(img)
	if err != nil {
		return models.LightingResult{}, err
	}
	return scoreExposure(computeHistogram(plane), ca.cal), nil
}

// ScoreExpression runs the face detector and derives the smile result.
// "No face found" is a normal result; a detector failure is surfaced as a
// detection error with no fallback score.
func (ca *coreAnalyzer) ScoreExpression(img image.Image) (models.SmileResult, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return models.SmileResult{}, apperrors.NewInvalidInputError("image has zero width or height", nil)
	}
	face, err := ca.detector.Detect(img)
	if err != nil {
		return models.SmileResult{}, apperrors.NewDetectionError("face detection failed", err)
	}
	return scoreExpression(face, ca.cal), nil
}

// Analyze runs all three scorers over one image and combines them into a
// weighted overall score with ordered human-readable warnings.
func (ca *coreAnalyzer) Analyze(img image.Image) (models.AnalysisResult, error) {
	plane, width, height, err := grayscalePlane(img)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	blur := scoreSharpness(computeEdgeVariance(plane, width, height), ca.cal)
	lighting := scoreExposure(computeHistogram(plane), ca.cal)

	face, err := ca.detector.Detect(img)
	if err != nil {
		return models.AnalysisResult{}, apperrors.NewDetectionError("face detection failed", err)
	}
	smile := scoreExpression(face, ca.cal)

	overall := int(math.Round(clamp(
		ca.cal.BlurWeight*float64(blur.Score)+
			ca.cal.LightingWeight*float64(lighting.Score)+
			ca.cal.SmileWeight*float64(smile.Score), 0, 100)))

	// Warning order is stable: blur first, then lighting, then smile.
	var warnings []string
	if blur.Severity == models.SeverityBlurry || blur.Severity == models.SeverityVeryBlurry {
		warnings = append(warnings, warnBlurry)
	}
	warnings = append(warnings, lighting.Issues...)
	if smile.Confidence == models.ConfidenceNoFace {
		warnings = append(warnings, warnNoFace)
	}

	return models.AnalysisResult{
		Blur:         blur,
		Lighting:     lighting,
		Smile:        smile,
		OverallScore: overall,
		Warnings:     warnings,
	}, nil
}
