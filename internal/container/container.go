package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-photo-feedback/internal/analyzer"
	"go-photo-feedback/internal/config"
	"go-photo-feedback/internal/critique"
	"go-photo-feedback/internal/detector"
	"go-photo-feedback/internal/factory"
	"go-photo-feedback/internal/loader"
	"go-photo-feedback/internal/logger"
	"go-photo-feedback/internal/observer"
	"go-photo-feedback/internal/repository"
	"go-photo-feedback/internal/service"
	"go-photo-feedback/internal/transport"
	"go-photo-feedback/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	config      *config.Config
	service     service.PhotoFeedbackService
	handler     http.Handler
	mongoClient *mongo.Client
	workerPool  *service.WorkerPool
}

// NewContainer builds the dependency graph from configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	sourceFactory := factory.NewPhotoSourceFactory(cfg)
	source, err := sourceFactory.CreateSource(factory.SourceType(cfg.PhotoSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create photo source: %w", err)
	}

	faceDetector, err := detector.NewPigoDetector(cfg.CascadePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load face cascade: %w", err)
	}

	repo, mongoClient, err := buildRepository(cfg)
	if err != nil {
		return nil, err
	}

	publisher := observer.NewEventPublisher()
	metrics := observer.NewMetricsObserver()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	pool := service.NewWorkerPool(0)
	pool.Start()

	svc := service.NewPhotoFeedbackService(
		source,
		loader.NewImageLoader(cfg.MaxImageDimension),
		analyzer.NewPhotoAnalyzer(faceDetector),
		repo,
		validation.NewURLValidator(),
		publisher,
		pool,
	)

	var critic critique.PromptCritic
	if cfg.OllamaURL != "" {
		critic, err = critique.NewOllamaCritic(cfg.OllamaURL, cfg.CritiqueModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create critique client: %w", err)
		}
	}

	handler := transport.NewHandler(svc, critic, metrics, cfg)

	return &Container{
		config:      cfg,
		service:     svc,
		handler:     handler,
		mongoClient: mongoClient,
		workerPool:  pool,
	}, nil
}

// buildRepository picks Mongo when a URI is configured, otherwise the
// in-memory store.
func buildRepository(cfg *config.Config) (repository.AnalysisRepository, *mongo.Client, error) {
	if cfg.MongoURI == "" {
		logger.Info("MONGO_URI not set, using in-memory analysis store")
		return repository.NewMemoryAnalysisRepository(), nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return repository.NewMongoAnalysisRepository(client, cfg.MongoDatabase), client, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases pooled workers and the database connection.
func (c *Container) Close(ctx context.Context) error {
	c.workerPool.Close()
	if c.mongoClient != nil {
		return c.mongoClient.Disconnect(ctx)
	}
	return nil
}
