package models

// BlurSeverity buckets a sharpness score into a user-facing label.
type BlurSeverity string

const (
	SeveritySharp      BlurSeverity = "sharp"
	SeveritySlightBlur BlurSeverity = "slight-blur"
	SeverityBlurry     BlurSeverity = "blurry"
	SeverityVeryBlurry BlurSeverity = "very-blurry"
)

// SmileConfidence buckets a smile score into a user-facing label.
type SmileConfidence string

const (
	ConfidenceNoFace      SmileConfidence = "no-face"
	ConfidenceNeutral     SmileConfidence = "neutral"
	ConfidenceSlightSmile SmileConfidence = "slight-smile"
	ConfidenceClearSmile  SmileConfidence = "clear-smile"
)

// BlurResult is the outcome of sharpness scoring for one photo.
// Severity and IsBlurry are derived from Score, never set independently.
type BlurResult struct {
	Score    int          `json:"score"`
	IsBlurry bool         `json:"is_blurry"`
	Severity BlurSeverity `json:"severity"`
}

// LightingResult is the outcome of exposure scoring for one photo.
// IsGoodLighting is exactly Score >= 50. Issues is ordered: brightness
// complaints before contrast complaints.
type LightingResult struct {
	Score          int      `json:"score"`
	IsGoodLighting bool     `json:"is_good_lighting"`
	Brightness     int      `json:"brightness"`
	Contrast       int      `json:"contrast"`
	Issues         []string `json:"issues,omitempty"`
}

// SmileResult is the outcome of expression scoring for one photo.
// HasSmile is exactly Score >= 45. When no face is detected the score is
// zero, the confidence is "no-face" and Expressions is omitted.
type SmileResult struct {
	Score        int             `json:"score"`
	HasSmile     bool            `json:"has_smile"`
	Confidence   SmileConfidence `json:"confidence"`
	FaceDetected bool            `json:"face_detected"`
	Expressions  map[string]int  `json:"expressions,omitempty"`
}

// FaceExpression is the output of a face detector for a single detected
// face: named emotion probabilities in [0,1] plus the detector's own
// quality score for the detection. A nil *FaceExpression means no face
// was found, which is a normal outcome rather than an error.
type FaceExpression struct {
	Expressions    map[string]float64 `json:"expressions"`
	DetectionScore float64            `json:"detection_score"`
}

// AnalysisResult is the combined feedback for one photo. OverallScore is
// the fixed weighted composite round(0.35*blur + 0.35*lighting +
// 0.30*smile). Warnings are ordered: blur first, then lighting issues,
// then smile.
type AnalysisResult struct {
	Blur         BlurResult     `json:"blur"`
	Lighting     LightingResult `json:"lighting"`
	Smile        SmileResult    `json:"smile"`
	OverallScore int            `json:"overall_score"`
	Warnings     []string       `json:"warnings,omitempty"`
}
