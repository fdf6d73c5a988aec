package analyzer

import (
	"testing"
)

func histWith(mean, stddev float64) GrayscaleHistogram {
	return GrayscaleHistogram{Mean: mean, StdDev: stddev}
}

func TestBrightnessScore_PeaksMidRange(t *testing.T) {
	cal := DefaultCalibration()

	testCases := []struct {
		mean float64
		want int
	}{
		{0, 0},
		{50, 50},
		{100, 100},
		{140, 100},
		{180, 100},
		{217.5, 50},
		{255, 0},
	}
	for _, tc := range testCases {
		if got := brightnessScore(tc.mean, cal); got != tc.want {
			t.Errorf("mean %f: expected brightness %d, got %d", tc.mean, tc.want, got)
		}
	}
}

func TestContrastScore(t *testing.T) {
	cal := DefaultCalibration()

	testCases := []struct {
		stddev float64
		want   int
	}{
		{0, 0},
		{10, 20},
		{25, 50},
		{50, 100},
		{120, 100},
	}
	for _, tc := range testCases {
		if got := contrastScore(tc.stddev, cal); got != tc.want {
			t.Errorf("stddev %f: expected contrast %d, got %d", tc.stddev, tc.want, got)
		}
	}
}

func TestScoreExposure_WellLit(t *testing.T) {
	result := scoreExposure(histWith(140, 60), DefaultCalibration())

	if result.Brightness != 100 || result.Contrast != 100 {
		t.Errorf("expected full sub-scores, got brightness=%d contrast=%d", result.Brightness, result.Contrast)
	}
	if result.Score != 100 {
		t.Errorf("expected score 100, got %d", result.Score)
	}
	if !result.IsGoodLighting {
		t.Error("expected good lighting")
	}
	if len(result.Issues) != 0 {
		t.Errorf("expected no issues, got %v", result.Issues)
	}
}

func TestScoreExposure_AllBlack(t *testing.T) {
	result := scoreExposure(histWith(0, 0), DefaultCalibration())

	if result.Score >= 50 {
		t.Errorf("expected low score for all-black image, got %d", result.Score)
	}
	if result.IsGoodLighting {
		t.Error("expected bad lighting for all-black image")
	}
	if len(result.Issues) != 2 {
		t.Fatalf("expected dark + low-contrast issues, got %v", result.Issues)
	}
	if result.Issues[0] != issueTooDark {
		t.Errorf("expected brightness issue first, got %q", result.Issues[0])
	}
	if result.Issues[1] != issueLowContrast {
		t.Errorf("expected contrast issue second, got %q", result.Issues[1])
	}
}

func TestScoreExposure_AllWhite(t *testing.T) {
	result := scoreExposure(histWith(255, 0), DefaultCalibration())

	if result.IsGoodLighting {
		t.Error("expected bad lighting for all-white image")
	}
	if len(result.Issues) == 0 || result.Issues[0] != issueTooBright {
		t.Errorf("expected too-bright issue first, got %v", result.Issues)
	}
}

func TestScoreExposure_LowContrastOnly(t *testing.T) {
	// Good mean, flat spread: only the contrast complaint should fire.
	result := scoreExposure(histWith(140, 5), DefaultCalibration())

	if len(result.Issues) != 1 || result.Issues[0] != issueLowContrast {
		t.Errorf("expected only low-contrast issue, got %v", result.Issues)
	}
}

func TestScoreExposure_GoodLightingInvariant(t *testing.T) {
	cal := DefaultCalibration()

	for mean := 0.0; mean <= 255; mean += 5 {
		for stddev := 0.0; stddev <= 120; stddev += 10 {
			result := scoreExposure(histWith(mean, stddev), cal)
			if result.IsGoodLighting != (result.Score >= 50) {
				t.Fatalf("mean=%f stddev=%f: isGoodLighting=%v inconsistent with score %d",
					mean, stddev, result.IsGoodLighting, result.Score)
			}
			if result.Score < 0 || result.Score > 100 {
				t.Fatalf("score %d out of range", result.Score)
			}
			bothClear := result.Brightness >= cal.SubScoreFloor && result.Contrast >= cal.SubScoreFloor
			if bothClear != (len(result.Issues) == 0) {
				t.Fatalf("mean=%f stddev=%f: issues %v inconsistent with sub-scores %d/%d",
					mean, stddev, result.Issues, result.Brightness, result.Contrast)
			}
		}
	}
}
