package analyzer

import (
	"image"

	"go-photo-feedback/pkg/models"
)

// PhotoAnalyzer is the scoring engine surface exposed to the API handler.
// Every operation is a pure function of its input image (plus the injected
// face detector); the engine keeps no state between calls and never
// performs I/O of its own.
type PhotoAnalyzer interface {
	ScoreSharpness(img image.Image) (models.BlurResult, error)
	ScoreExposure(img image.Image) (models.LightingResult, error)
	ScoreExpression(img image.Image) (models.SmileResult, error)
	Analyze(img image.Image) (models.AnalysisResult, error)
}

// FaceDetector is the injected face/expression classifier. A (nil, nil)
// return means no face was found, which is a valid outcome and not an
// error; a non-nil error means the detector itself failed.
type FaceDetector interface {
	Detect(img image.Image) (*models.FaceExpression, error)
}
