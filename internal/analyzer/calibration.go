package analyzer

// Calibration holds the tunable scoring constants. The bucket boundaries
// (sharp/slight-blur/..., clear-smile/...) are fixed contracts and live in
// the scorers; everything here is a calibration choice that is fixed once
// and documented so scoring stays deterministic.
type Calibration struct {
	// SharpnessDivisor maps Laplacian variance to 0-100:
	// score = clamp(variance / SharpnessDivisor, 0, 100). With 8.0,
	// in-focus portraits (variance 400-800+) land 50-100 and defocused
	// photos (under ~240) land below 30.
	SharpnessDivisor float64

	// Brightness plateau on the 0-255 mean-intensity axis. Means inside
	// [PlateauLow, PlateauHigh] score 100; the score falls linearly to 0
	// toward pure black and pure white.
	BrightnessPlateauLow  float64
	BrightnessPlateauHigh float64

	// ContrastDivisor maps intensity standard deviation to 0-100:
	// score = clamp(stddev / ContrastDivisor * 100, 0, 100).
	ContrastDivisor float64

	// Weights for the composite lighting score. Both sub-scores always
	// contribute.
	BrightnessWeight float64
	ContrastWeight   float64

	// SubScoreFloor is the threshold under which a brightness or contrast
	// sub-score raises a qualitative issue string.
	SubScoreFloor int

	// NegativeDamping reduces the smile score when strong sad/angry
	// probabilities compete with a happy reading, to keep detector noise
	// from producing false smiles:
	// score = clamp((happy - NegativeDamping*max(sad, angry)) * 100, 0, 100).
	NegativeDamping float64

	// Composite weights for the overall score (0.35 / 0.35 / 0.30).
	BlurWeight     float64
	LightingWeight float64
	SmileWeight    float64
}

// DefaultCalibration returns the documented production constants.
func DefaultCalibration() Calibration {
	return Calibration{
		SharpnessDivisor:      8.0,
		BrightnessPlateauLow:  100.0,
		BrightnessPlateauHigh: 180.0,
		ContrastDivisor:       50.0,
		BrightnessWeight:      0.6,
		ContrastWeight:        0.4,
		SubScoreFloor:         40,
		NegativeDamping:       0.35,
		BlurWeight:            0.35,
		LightingWeight:        0.35,
		SmileWeight:           0.30,
	}
}
