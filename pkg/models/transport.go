package models

// AnalyzeRequest asks for feedback on a single photo by URL.
type AnalyzeRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// BatchAnalyzeRequest asks for feedback on several photos at once, e.g.
// all photos of one profile. Each photo succeeds or fails independently.
type BatchAnalyzeRequest struct {
	URLs []string `json:"urls" binding:"required,min=1,dive,url"`
}

// CritiqueRequest asks for LLM feedback on a profile text prompt.
type CritiqueRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Answer string `json:"answer" binding:"required"`
}

// CritiqueResponse carries the generated text critique.
type CritiqueResponse struct {
	Critique string `json:"critique"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PhotoAnalysisResponse wraps one analysis result with request context.
type PhotoAnalysisResponse struct {
	ID                string         `json:"id,omitempty"`
	PhotoURL          string         `json:"photo_url"`
	Timestamp         string         `json:"timestamp"`
	ProcessingTimeSec float64        `json:"processing_time_sec"`
	Result            AnalysisResult `json:"result"`
}

// BatchItemResponse is one entry of a batch analysis: either a result or
// an error message for that photo, never both.
type BatchItemResponse struct {
	PhotoURL string                 `json:"photo_url"`
	Result   *PhotoAnalysisResponse `json:"result,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// BatchAnalyzeResponse is the per-photo outcome list of a batch request.
type BatchAnalyzeResponse struct {
	Items []BatchItemResponse `json:"items"`
}
