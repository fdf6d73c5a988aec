package repository

import (
	"context"
	"time"

	"go-photo-feedback/pkg/models"
)

// AnalysisRecord is one persisted photo analysis.
type AnalysisRecord struct {
	ID                string                `json:"id"`
	PhotoURL          string                `json:"photo_url"`
	Result            models.AnalysisResult `json:"result"`
	ProcessingTimeSec float64               `json:"processing_time_sec"`
	CreatedAt         time.Time             `json:"created_at"`
}

// AnalysisRepository stores and retrieves analysis results. The scoring
// engine itself never persists anything; the service layer owns this.
type AnalysisRepository interface {
	// Save stores a record and returns its assigned id.
	Save(ctx context.Context, record *AnalysisRecord) (string, error)

	// Get retrieves a stored record by id; ErrAnalysisNotFound if absent.
	Get(ctx context.Context, id string) (*AnalysisRecord, error)

	// ListByPhotoURL retrieves the analysis history for one photo URL,
	// newest first.
	ListByPhotoURL(ctx context.Context, photoURL string) ([]*AnalysisRecord, error)
}
