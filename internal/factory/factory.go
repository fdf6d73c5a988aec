package factory

import (
	"fmt"

	"go-photo-feedback/internal/config"
	"go-photo-feedback/internal/storage"
)

// SourceType selects where photos are fetched from
type SourceType string

const (
	// HTTPSource fetches photos over plain HTTP(S)
	HTTPSource SourceType = "http"
	// AzureSource fetches photos from Azure blob storage
	AzureSource SourceType = "azure"
)

// PhotoSourceFactory creates photo source implementations
type PhotoSourceFactory interface {
	CreateSource(sourceType SourceType) (storage.PhotoSource, error)
}

type photoSourceFactory struct {
	cfg *config.Config
}

// NewPhotoSourceFactory creates a new photo source factory
func NewPhotoSourceFactory(cfg *config.Config) PhotoSourceFactory {
	return &photoSourceFactory{cfg: cfg}
}

// CreateSource creates a photo source for the given type
func (f *photoSourceFactory) CreateSource(sourceType SourceType) (storage.PhotoSource, error) {
	switch sourceType {
	case HTTPSource:
		return storage.NewHTTPPhotoSource(f.cfg.PhotoFetchTimeout, f.cfg.MaxRequestBodySize), nil
	case AzureSource:
		return storage.NewAzurePhotoSource(f.cfg.AzureAccountName, f.cfg.AzureAccountKey)
	default:
		return nil, fmt.Errorf("unsupported photo source type: %s", sourceType)
	}
}
