package analyzer

import (
	"reflect"
	"testing"

	"go-photo-feedback/pkg/models"
)

func faceWith(happy, neutral, sad, angry, surprised float64) *models.FaceExpression {
	return &models.FaceExpression{
		Expressions: map[string]float64{
			"happy":     happy,
			"neutral":   neutral,
			"sad":       sad,
			"angry":     angry,
			"surprised": surprised,
		},
		DetectionScore: 0.95,
	}
}

func TestScoreExpression_NoFace(t *testing.T) {
	result := scoreExpression(nil, DefaultCalibration())

	if result.Score != 0 {
		t.Errorf("expected score 0, got %d", result.Score)
	}
	if result.HasSmile {
		t.Error("expected hasSmile=false")
	}
	if result.Confidence != models.ConfidenceNoFace {
		t.Errorf("expected no-face confidence, got %s", result.Confidence)
	}
	if result.FaceDetected {
		t.Error("expected faceDetected=false")
	}
	if result.Expressions != nil {
		t.Errorf("expected no expressions map, got %v", result.Expressions)
	}
}

func TestScoreExpression_Table(t *testing.T) {
	cal := DefaultCalibration()

	testCases := []struct {
		name       string
		face       *models.FaceExpression
		wantScore  int
		confidence models.SmileConfidence
		hasSmile   bool
	}{
		{"clear smile", faceWith(0.92, 0.05, 0.01, 0.01, 0.01), 92, models.ConfidenceClearSmile, true},
		{"slight smile", faceWith(0.55, 0.40, 0.02, 0.02, 0.01), 54, models.ConfidenceSlightSmile, true},
		{"neutral face", faceWith(0.10, 0.85, 0.02, 0.02, 0.01), 9, models.ConfidenceNeutral, false},
		{"sad face", faceWith(0.05, 0.15, 0.75, 0.03, 0.02), 0, models.ConfidenceNeutral, false},
		{"noisy happy damped by anger", faceWith(0.60, 0.0, 0.0, 0.80, 0.0), 32, models.ConfidenceNeutral, false},
		{"boundary slight smile", faceWith(0.45, 0.55, 0, 0, 0), 45, models.ConfidenceSlightSmile, true},
		{"boundary clear smile", faceWith(0.70, 0.30, 0, 0, 0), 70, models.ConfidenceClearSmile, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := scoreExpression(tc.face, cal)
			if result.Score != tc.wantScore {
				t.Errorf("expected score %d, got %d", tc.wantScore, result.Score)
			}
			if result.Confidence != tc.confidence {
				t.Errorf("expected confidence %s, got %s", tc.confidence, result.Confidence)
			}
			if result.HasSmile != tc.hasSmile {
				t.Errorf("expected hasSmile=%v, got %v", tc.hasSmile, result.HasSmile)
			}
			if !result.FaceDetected {
				t.Error("expected faceDetected=true")
			}
			if result.HasSmile != (result.Score >= 45) {
				t.Errorf("hasSmile=%v inconsistent with score %d", result.HasSmile, result.Score)
			}
		})
	}
}

func TestScoreExpression_ExpressionsScaled(t *testing.T) {
	face := faceWith(0.92, 0.05, 0.01, 0.01, 0.01)

	result := scoreExpression(face, DefaultCalibration())

	if len(result.Expressions) != len(face.Expressions) {
		t.Fatalf("expected %d expression keys, got %d", len(face.Expressions), len(result.Expressions))
	}
	if result.Expressions["happy"] != 92 {
		t.Errorf("expected happy=92, got %d", result.Expressions["happy"])
	}
	if result.Expressions["neutral"] != 5 {
		t.Errorf("expected neutral=5, got %d", result.Expressions["neutral"])
	}
	for name, v := range result.Expressions {
		if v < 0 || v > 100 {
			t.Errorf("expression %s out of range: %d", name, v)
		}
	}
}

func TestScoreExpression_Deterministic(t *testing.T) {
	cal := DefaultCalibration()
	face := faceWith(0.42, 0.40, 0.10, 0.05, 0.03)

	a := scoreExpression(face, cal)
	b := scoreExpression(face, cal)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical input must yield identical results: %+v vs %+v", a, b)
	}
}
