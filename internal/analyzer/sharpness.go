package analyzer

import (
	"math"

	"go-photo-feedback/pkg/models"
)

// scoreSharpness maps Laplacian edge-response variance to a 0-100 score
// with its severity bucket. Identical variance always yields identical
// output.
func scoreSharpness(variance float64, cal Calibration) models.BlurResult {
	score := int(math.Round(clamp(variance/cal.SharpnessDivisor, 0, 100)))
	severity := severityForScore(score)
	return models.BlurResult{
		Score:    score,
		IsBlurry: severity == models.SeverityBlurry || severity == models.SeverityVeryBlurry,
		Severity: severity,
	}
}

// severityForScore partitions [0,100] with no gaps or overlaps:
// >=50 sharp, 30-49 slight-blur, 15-29 blurry, <15 very-blurry.
func severityForScore(score int) models.BlurSeverity {
	switch {
	case score >= 50:
		return models.SeveritySharp
	case score >= 30:
		return models.SeveritySlightBlur
	case score >= 15:
		return models.SeverityBlurry
	default:
		return models.SeverityVeryBlurry
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
