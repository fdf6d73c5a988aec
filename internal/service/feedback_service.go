package service

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"go-photo-feedback/internal/analyzer"
	apperrors "go-photo-feedback/internal/errors"
	"go-photo-feedback/internal/loader"
	"go-photo-feedback/internal/observer"
	"go-photo-feedback/internal/repository"
	"go-photo-feedback/internal/storage"
	"go-photo-feedback/pkg/models"
	"go-photo-feedback/pkg/validation"
)

// PhotoFeedbackService exposes photo quality feedback operations.
type PhotoFeedbackService interface {
	AnalyzePhoto(ctx context.Context, photoURL string) (*models.PhotoAnalysisResponse, error)
	AnalyzeBatch(ctx context.Context, photoURLs []string) (*models.BatchAnalyzeResponse, error)

	ScoreSharpness(ctx context.Context, photoURL string) (*models.BlurResult, error)
	ScoreExposure(ctx context.Context, photoURL string) (*models.LightingResult, error)
	ScoreExpression(ctx context.Context, photoURL string) (*models.SmileResult, error)

	GetAnalysis(ctx context.Context, id string) (*models.PhotoAnalysisResponse, error)
	ListAnalyses(ctx context.Context, photoURL string) ([]models.PhotoAnalysisResponse, error)

	ValidatePhotoURL(photoURL string) error
}

// photoFeedbackService wires the photo source, decoder, analyzer and
// repository behind the service interface.
type photoFeedbackService struct {
	source    storage.PhotoSource
	loader    loader.ImageLoader
	analyzer  analyzer.PhotoAnalyzer
	repo      repository.AnalysisRepository
	validator *validation.URLValidator
	publisher observer.Subject
	pool      *WorkerPool
}

// NewPhotoFeedbackService creates a new photo feedback service
func NewPhotoFeedbackService(
	source storage.PhotoSource,
	imageLoader loader.ImageLoader,
	photoAnalyzer analyzer.PhotoAnalyzer,
	repo repository.AnalysisRepository,
	validator *validation.URLValidator,
	publisher observer.Subject,
	pool *WorkerPool,
) PhotoFeedbackService {
	return &photoFeedbackService{
		source:    source,
		loader:    imageLoader,
		analyzer:  photoAnalyzer,
		repo:      repo,
		validator: validator,
		publisher: publisher,
		pool:      pool,
	}
}

// AnalyzePhoto fetches, decodes and scores one photo, persists the result
// and returns the stored analysis.
func (s *photoFeedbackService) AnalyzePhoto(ctx context.Context, photoURL string) (*models.PhotoAnalysisResponse, error) {
	start := time.Now()
	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.AnalysisStarted,
		Timestamp: start,
		PhotoURL:  photoURL,
	})

	img, err := s.fetchAndDecode(ctx, photoURL)
	if err != nil {
		s.publishFailure(ctx, photoURL, start, err)
		return nil, err
	}

	result, err := s.analyzer.Analyze(img)
	if err != nil {
		s.publishFailure(ctx, photoURL, start, err)
		return nil, err
	}

	elapsed := time.Since(start)
	record := repository.AnalysisRecord{
		PhotoURL:          photoURL,
		Result:            result,
		ProcessingTimeSec: elapsed.Seconds(),
		CreatedAt:         start.UTC(),
	}
	id, err := s.repo.Save(ctx, &record)
	if err != nil {
		s.publishFailure(ctx, photoURL, start, err)
		return nil, apperrors.NewInternalError("failed to store analysis", err)
	}

	s.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisCompleted,
		Timestamp:      time.Now(),
		PhotoURL:       photoURL,
		ProcessingTime: elapsed,
		OverallScore:   result.OverallScore,
		Success:        true,
	})

	record.ID = id
	response := recordToResponse(record)
	return &response, nil
}

// AnalyzeBatch scores several photos concurrently. Photos fail
// independently: a bad URL or undecodable image yields an error entry for
// that photo while the rest still return results. The response preserves
// the request order.
func (s *photoFeedbackService) AnalyzeBatch(ctx context.Context, photoURLs []string) (*models.BatchAnalyzeResponse, error) {
	if len(photoURLs) == 0 {
		return nil, apperrors.NewValidationError("at least one photo URL is required", nil)
	}

	// Each batch tracks its own completion so concurrent batch requests
	// sharing the pool do not wait on each other's jobs.
	items := make([]models.BatchItemResponse, len(photoURLs))
	var wg sync.WaitGroup
	for i, photoURL := range photoURLs {
		i, photoURL := i, photoURL
		wg.Add(1)
		s.pool.Submit(func() {
			defer wg.Done()
			resp, err := s.AnalyzePhoto(ctx, photoURL)
			item := models.BatchItemResponse{PhotoURL: photoURL}
			if err != nil {
				item.Error = err.Error()
			} else {
				item.Result = resp
			}
			items[i] = item
		})
	}
	wg.Wait()

	return &models.BatchAnalyzeResponse{Items: items}, nil
}

// ScoreSharpness runs only the sharpness scorer for one photo.
func (s *photoFeedbackService) ScoreSharpness(ctx context.Context, photoURL string) (*models.BlurResult, error) {
	img, err := s.fetchAndDecode(ctx, photoURL)
	if err != nil {
		return nil, err
	}
	result, err := s.analyzer.ScoreSharpness(img)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ScoreExposure runs only the exposure scorer for one photo.
func (s *photoFeedbackService) ScoreExposure(ctx context.Context, photoURL string) (*models.LightingResult, error) {
	img, err := s.fetchAndDecode(ctx, photoURL)
	if err != nil {
		return nil, err
	}
	result, err := s.analyzer.ScoreExposure(img)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ScoreExpression runs only the expression scorer for one photo.
func (s *photoFeedbackService) ScoreExpression(ctx context.Context, photoURL string) (*models.SmileResult, error) {
	img, err := s.fetchAndDecode(ctx, photoURL)
	if err != nil {
		return nil, err
	}
	result, err := s.analyzer.ScoreExpression(img)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAnalysis returns a previously stored analysis by its id.
func (s *photoFeedbackService) GetAnalysis(ctx context.Context, id string) (*models.PhotoAnalysisResponse, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAnalysisNotFound) {
			return nil, apperrors.NewNotFoundError("analysis not found", err)
		}
		return nil, apperrors.NewInternalError("failed to load analysis", err)
	}
	response := recordToResponse(*record)
	return &response, nil
}

// ListAnalyses returns all stored analyses for a photo URL, newest first.
func (s *photoFeedbackService) ListAnalyses(ctx context.Context, photoURL string) ([]models.PhotoAnalysisResponse, error) {
	if err := s.ValidatePhotoURL(photoURL); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByPhotoURL(ctx, photoURL)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list analyses", err)
	}
	responses := make([]models.PhotoAnalysisResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, recordToResponse(*record))
	}
	return responses, nil
}

// ValidatePhotoURL validates the photo URL
func (s *photoFeedbackService) ValidatePhotoURL(photoURL string) error {
	return s.validator.Validate(photoURL)
}

func (s *photoFeedbackService) fetchAndDecode(ctx context.Context, photoURL string) (image.Image, error) {
	if err := s.ValidatePhotoURL(photoURL); err != nil {
		return nil, err
	}

	data, err := s.source.FetchPhoto(ctx, photoURL)
	if err != nil {
		s.publish(ctx, observer.AnalysisEvent{
			EventType:    observer.PhotoFetchFailed,
			Timestamp:    time.Now(),
			PhotoURL:     photoURL,
			ErrorMessage: err.Error(),
		})
		return nil, apperrors.NewNetworkError("failed to fetch photo", err)
	}
	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.PhotoFetched,
		Timestamp: time.Now(),
		PhotoURL:  photoURL,
		Success:   true,
	})

	return s.loader.Decode(data)
}

func (s *photoFeedbackService) publish(ctx context.Context, event observer.AnalysisEvent) {
	if s.publisher != nil {
		s.publisher.NotifyObservers(ctx, event)
	}
}

func (s *photoFeedbackService) publishFailure(ctx context.Context, photoURL string, start time.Time, err error) {
	s.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisFailed,
		Timestamp:      time.Now(),
		PhotoURL:       photoURL,
		ProcessingTime: time.Since(start),
		ErrorMessage:   err.Error(),
	})
}

func recordToResponse(record repository.AnalysisRecord) models.PhotoAnalysisResponse {
	return models.PhotoAnalysisResponse{
		ID:                record.ID,
		PhotoURL:          record.PhotoURL,
		Timestamp:         record.CreatedAt.Format(time.RFC3339),
		ProcessingTimeSec: record.ProcessingTimeSec,
		Result:            record.Result,
	}
}
