package analyzer

import (
	"math"

	"go-photo-feedback/pkg/models"
)

// Issue strings are user-facing; brightness complaints are evaluated
// before contrast complaints and the order in Issues reflects that.
const (
	issueTooDark     = "Image is too dark"
	issueTooBright   = "Image is too bright"
	issueLowContrast = "Low contrast"
)

// scoreExposure derives the lighting score from the intensity histogram.
func scoreExposure(hist GrayscaleHistogram, cal Calibration) models.LightingResult {
	brightness := brightnessScore(hist.Mean, cal)
	contrast := contrastScore(hist.StdDev, cal)
	score := int(math.Round(clamp(
		cal.BrightnessWeight*float64(brightness)+cal.ContrastWeight*float64(contrast), 0, 100)))

	var issues []string
	if brightness < cal.SubScoreFloor {
		if hist.Mean < 128 {
			issues = append(issues, issueTooDark)
		} else {
			issues = append(issues, issueTooBright)
		}
	}
	if contrast < cal.SubScoreFloor {
		issues = append(issues, issueLowContrast)
	}

	return models.LightingResult{
		Score:          score,
		IsGoodLighting: score >= 50,
		Brightness:     brightness,
		Contrast:       contrast,
		Issues:         issues,
	}
}

// brightnessScore peaks at 100 for mean intensity inside the calibrated
// plateau and falls linearly to 0 toward pure black and pure white. Not a
// linear map: both near-black and near-white means are penalized.
func brightnessScore(mean float64, cal Calibration) int {
	var raw float64
	switch {
	case mean < cal.BrightnessPlateauLow:
		raw = mean / cal.BrightnessPlateauLow * 100
	case mean > cal.BrightnessPlateauHigh:
		raw = (255 - mean) / (255 - cal.BrightnessPlateauHigh) * 100
	default:
		raw = 100
	}
	return int(math.Round(clamp(raw, 0, 100)))
}

// contrastScore rewards intensity spread; flat, washed-out photos with a
// low standard deviation score near zero.
func contrastScore(stddev float64, cal Calibration) int {
	return int(math.Round(clamp(stddev/cal.ContrastDivisor*100, 0, 100)))
}
