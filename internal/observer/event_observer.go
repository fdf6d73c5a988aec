package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// EventType represents the type of analysis lifecycle event
type EventType string

const (
	AnalysisStarted   EventType = "analysis_started"
	AnalysisCompleted EventType = "analysis_completed"
	AnalysisFailed    EventType = "analysis_failed"
	PhotoFetched      EventType = "photo_fetched"
	PhotoFetchFailed  EventType = "photo_fetch_failed"
)

// AnalysisEvent describes one step in a photo's analysis lifecycle.
type AnalysisEvent struct {
	EventType      EventType     `json:"event_type"`
	Timestamp      time.Time     `json:"timestamp"`
	PhotoURL       string        `json:"photo_url"`
	ProcessingTime time.Duration `json:"processing_time"`
	OverallScore   int           `json:"overall_score,omitempty"`
	Success        bool          `json:"success"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// Observer receives analysis lifecycle events.
type Observer interface {
	OnEvent(ctx context.Context, event AnalysisEvent)
	GetObserverName() string
}

// Subject publishes analysis lifecycle events to observers.
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event AnalysisEvent)
}

// LoggingObserver logs analysis events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// OnEvent handles analysis events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"photo_url":       event.PhotoURL,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}
	if event.EventType == AnalysisCompleted {
		fields["overall_score"] = event.OverallScore
	}

	switch event.EventType {
	case AnalysisStarted:
		o.logger.WithFields(fields).Info("Photo analysis started")
	case AnalysisCompleted:
		o.logger.WithFields(fields).Info("Photo analysis completed")
	case AnalysisFailed:
		o.logger.WithFields(fields).Error("Photo analysis failed")
	case PhotoFetched:
		o.logger.WithFields(fields).Debug("Photo fetched")
	case PhotoFetchFailed:
		o.logger.WithFields(fields).Error("Photo fetch failed")
	default:
		o.logger.WithFields(fields).Info("Analysis event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver aggregates counters from analysis events for the
// /metrics endpoint.
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalAnalyses       int64
	successfulAnalyses  int64
	failedAnalyses      int64
	totalProcessingTime time.Duration
	scoreSum            int64
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles analysis events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case AnalysisStarted:
		o.totalAnalyses++
	case AnalysisCompleted:
		o.successfulAnalyses++
		o.totalProcessingTime += event.ProcessingTime
		o.scoreSum += int64(event.OverallScore)
	case AnalysisFailed:
		o.failedAnalyses++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns a snapshot of the current counters
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	avgScore := 0.0
	if o.successfulAnalyses > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.successfulAnalyses)
		avgScore = float64(o.scoreSum) / float64(o.successfulAnalyses)
	}

	return map[string]interface{}{
		"total_analyses":      o.totalAnalyses,
		"successful_analyses": o.successfulAnalyses,
		"failed_analyses":     o.failedAnalyses,
		"avg_processing_time": avgProcessingTime.String(),
		"avg_overall_score":   avgScore,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{observers: make([]Observer, 0)}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers delivers an event to every observer. Delivery is
// synchronous so metrics read back consistently right after a request.
func (p *EventPublisher) NotifyObservers(ctx context.Context, event AnalysisEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
