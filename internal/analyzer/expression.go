package analyzer

import (
	"math"

	"go-photo-feedback/pkg/models"
)

// Emotion keys a detector is expected to report. Detectors may report
// more; the scorer only reads these.
const (
	emotionHappy = "happy"
	emotionSad   = "sad"
	emotionAngry = "angry"
)

// scoreExpression derives the smile score from detector output. A nil
// face is a valid terminal outcome, not an error: it forces score 0,
// confidence "no-face" and no expressions map.
func scoreExpression(face *models.FaceExpression, cal Calibration) models.SmileResult {
	if face == nil {
		return models.SmileResult{
			Score:        0,
			HasSmile:     false,
			Confidence:   models.ConfidenceNoFace,
			FaceDetected: false,
		}
	}

	happy := face.Expressions[emotionHappy]
	negative := math.Max(face.Expressions[emotionSad], face.Expressions[emotionAngry])
	score := int(math.Round(clamp((happy-cal.NegativeDamping*negative)*100, 0, 100)))

	expressions := make(map[string]int, len(face.Expressions))
	for name, p := range face.Expressions {
		expressions[name] = int(math.Round(clamp(p, 0, 1) * 100))
	}

	return models.SmileResult{
		Score:        score,
		HasSmile:     score >= 45,
		Confidence:   confidenceForScore(score),
		FaceDetected: true,
		Expressions:  expressions,
	}
}

// confidenceForScore buckets a face-present smile score:
// >=70 clear-smile, 45-69 slight-smile, below that neutral.
func confidenceForScore(score int) models.SmileConfidence {
	switch {
	case score >= 70:
		return models.ConfidenceClearSmile
	case score >= 45:
		return models.ConfidenceSlightSmile
	default:
		return models.ConfidenceNeutral
	}
}
