package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	apperrors "go-photo-feedback/internal/errors"
	"go-photo-feedback/internal/loader"
	"go-photo-feedback/internal/observer"
	"go-photo-feedback/internal/repository"
	"go-photo-feedback/pkg/models"
	"go-photo-feedback/pkg/validation"

	"go-photo-feedback/internal/analyzer"
)

// stubSource serves fixed payloads by URL.
type stubSource struct {
	payloads map[string][]byte
}

func (s *stubSource) FetchPhoto(ctx context.Context, url string) ([]byte, error) {
	data, ok := s.payloads[url]
	if !ok {
		return nil, errors.New("connection refused")
	}
	return data, nil
}

// stubDetector always reports the same face.
type stubDetector struct {
	face *models.FaceExpression
}

func (d *stubDetector) Detect(img image.Image) (*models.FaceExpression, error) {
	return d.face, nil
}

func encodeTestPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			c := uint8(0)
			if x >= 32 {
				c = 255
			}
			img.Set(x, y, color.RGBA{c, c, c, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func newTestService(t *testing.T, source *stubSource) (PhotoFeedbackService, *observer.MetricsObserver, *WorkerPool) {
	t.Helper()
	face := &models.FaceExpression{
		Expressions:    map[string]float64{"happy": 0.9, "neutral": 0.1},
		DetectionScore: 0.8,
	}
	publisher := observer.NewEventPublisher()
	metrics := observer.NewMetricsObserver()
	publisher.Subscribe(metrics)

	pool := NewWorkerPool(2)
	pool.Start()
	t.Cleanup(pool.Close)

	svc := NewPhotoFeedbackService(
		source,
		loader.NewImageLoader(2048),
		analyzer.NewPhotoAnalyzer(&stubDetector{face: face}),
		repository.NewMemoryAnalysisRepository(),
		validation.NewURLValidator(),
		publisher,
		pool,
	)
	return svc, metrics, pool
}

func TestAnalyzePhoto(t *testing.T) {
	source := &stubSource{payloads: map[string][]byte{
		"https://cdn.example.com/p.png": encodeTestPNG(t),
	}}
	svc, metrics, _ := newTestService(t, source)

	resp, err := svc.AnalyzePhoto(context.Background(), "https://cdn.example.com/p.png")
	if err != nil {
		t.Fatalf("AnalyzePhoto() error = %v", err)
	}
	if resp.ID == "" {
		t.Error("expected a persisted analysis id")
	}
	if resp.PhotoURL != "https://cdn.example.com/p.png" {
		t.Errorf("unexpected photo URL %q", resp.PhotoURL)
	}
	if resp.Result.Blur.Severity != models.SeveritySharp {
		t.Errorf("hard-edged test image should score sharp, got %s", resp.Result.Blur.Severity)
	}
	if !resp.Result.Smile.FaceDetected {
		t.Error("stub detector face should be reported as detected")
	}

	got := metrics.GetMetrics()
	if got["successful_analyses"].(int64) != 1 {
		t.Errorf("expected 1 successful analysis in metrics, got %v", got["successful_analyses"])
	}

	// The stored record must round-trip through GetAnalysis.
	stored, err := svc.GetAnalysis(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("GetAnalysis() error = %v", err)
	}
	if stored.Result.OverallScore != resp.Result.OverallScore {
		t.Errorf("stored overall score %d does not match returned %d",
			stored.Result.OverallScore, resp.Result.OverallScore)
	}
}

func TestAnalyzePhotoRejectsBadURL(t *testing.T) {
	svc, _, _ := newTestService(t, &stubSource{})

	_, err := svc.AnalyzePhoto(context.Background(), "ftp://example.com/p.png")
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestAnalyzePhotoFetchFailure(t *testing.T) {
	svc, metrics, _ := newTestService(t, &stubSource{})

	_, err := svc.AnalyzePhoto(context.Background(), "https://cdn.example.com/missing.png")
	if !apperrors.IsType(err, apperrors.ErrorTypeNetwork) {
		t.Errorf("expected network error, got %v", err)
	}
	if metrics.GetMetrics()["failed_analyses"].(int64) != 1 {
		t.Error("fetch failure should be counted as a failed analysis")
	}
}

func TestAnalyzePhotoDecodeFailure(t *testing.T) {
	source := &stubSource{payloads: map[string][]byte{
		"https://cdn.example.com/garbage.png": []byte("not an image"),
	}}
	svc, _, _ := newTestService(t, source)

	_, err := svc.AnalyzePhoto(context.Background(), "https://cdn.example.com/garbage.png")
	if !apperrors.IsType(err, apperrors.ErrorTypeDecode) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestAnalyzeBatchIsolatesFailures(t *testing.T) {
	good := encodeTestPNG(t)
	source := &stubSource{payloads: map[string][]byte{
		"https://cdn.example.com/a.png": good,
		"https://cdn.example.com/c.png": good,
	}}
	svc, _, _ := newTestService(t, source)

	urls := []string{
		"https://cdn.example.com/a.png",
		"https://cdn.example.com/b.png", // fetch fails
		"https://cdn.example.com/c.png",
	}
	resp, err := svc.AnalyzeBatch(context.Background(), urls)
	if err != nil {
		t.Fatalf("AnalyzeBatch() error = %v", err)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("expected 3 batch items, got %d", len(resp.Items))
	}
	for i, url := range urls {
		if resp.Items[i].PhotoURL != url {
			t.Errorf("item %d should preserve request order, got %q", i, resp.Items[i].PhotoURL)
		}
	}
	if resp.Items[0].Result == nil || resp.Items[0].Error != "" {
		t.Error("first photo should succeed")
	}
	if resp.Items[1].Result != nil || resp.Items[1].Error == "" {
		t.Error("second photo should fail with an error entry")
	}
	if !strings.Contains(resp.Items[1].Error, "fetch") {
		t.Errorf("batch error should describe the fetch failure, got %q", resp.Items[1].Error)
	}
	if resp.Items[2].Result == nil {
		t.Error("third photo should succeed despite the second failing")
	}
}

func TestAnalyzeBatchEmpty(t *testing.T) {
	svc, _, _ := newTestService(t, &stubSource{})

	_, err := svc.AnalyzeBatch(context.Background(), nil)
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("expected validation error for empty batch, got %v", err)
	}
}

func TestIndividualScorers(t *testing.T) {
	source := &stubSource{payloads: map[string][]byte{
		"https://cdn.example.com/p.png": encodeTestPNG(t),
	}}
	svc, _, _ := newTestService(t, source)
	ctx := context.Background()
	url := "https://cdn.example.com/p.png"

	blur, err := svc.ScoreSharpness(ctx, url)
	if err != nil {
		t.Fatalf("ScoreSharpness() error = %v", err)
	}
	if blur.Score < 50 {
		t.Errorf("hard-edged image should not be blurry, score %d", blur.Score)
	}

	lighting, err := svc.ScoreExposure(ctx, url)
	if err != nil {
		t.Fatalf("ScoreExposure() error = %v", err)
	}
	if lighting.Contrast != 100 {
		t.Errorf("black/white split should max out contrast, got %d", lighting.Contrast)
	}

	smile, err := svc.ScoreExpression(ctx, url)
	if err != nil {
		t.Fatalf("ScoreExpression() error = %v", err)
	}
	if smile.Confidence != models.ConfidenceClearSmile {
		t.Errorf("0.9 happy should read as clear smile, got %s", smile.Confidence)
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, &stubSource{})

	_, err := svc.GetAnalysis(context.Background(), "missing-id")
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestListAnalysesNewestFirst(t *testing.T) {
	source := &stubSource{payloads: map[string][]byte{
		"https://cdn.example.com/p.png": encodeTestPNG(t),
	}}
	svc, _, _ := newTestService(t, source)
	ctx := context.Background()
	url := "https://cdn.example.com/p.png"

	for i := 0; i < 3; i++ {
		if _, err := svc.AnalyzePhoto(ctx, url); err != nil {
			t.Fatalf("AnalyzePhoto() error = %v", err)
		}
	}

	list, err := svc.ListAnalyses(ctx, url)
	if err != nil {
		t.Fatalf("ListAnalyses() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 analyses, got %d", len(list))
	}
}
