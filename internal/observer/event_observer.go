package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// AnalysisEvent represents a document or page analysis event
type AnalysisEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	Source         string                 `json:"source"`
	PageIndex      int                    `json:"page_index,omitempty"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of analysis event
type EventType string

const (
	// DocumentAnalysisStarted when document analysis begins
	DocumentAnalysisStarted EventType = "document_analysis_started"
	// DocumentAnalysisCompleted when document analysis finishes successfully
	DocumentAnalysisCompleted EventType = "document_analysis_completed"
	// DocumentAnalysisFailed when document analysis fails
	DocumentAnalysisFailed EventType = "document_analysis_failed"
	// PageAnalysisCompleted when one page verdict is produced
	PageAnalysisCompleted EventType = "page_analysis_completed"
	// PageAnalysisSkipped when one page fails and the document continues
	PageAnalysisSkipped EventType = "page_analysis_skipped"
	// ContentFetched when document bytes are successfully fetched
	ContentFetched EventType = "content_fetched"
	// ContentFetchFailed when the fetch fails
	ContentFetchFailed EventType = "content_fetch_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event AnalysisEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
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
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles analysis events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"source":          event.Source,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}

	if event.PageIndex > 0 {
		fields["page"] = event.PageIndex
	}

	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	for k, v := range event.Metadata {
		fields[k] = v
	}

	switch event.EventType {
	case DocumentAnalysisStarted:
		o.logger.WithFields(fields).Info("Document analysis started")
	case DocumentAnalysisCompleted:
		o.logger.WithFields(fields).Info("Document analysis completed")
	case DocumentAnalysisFailed:
		o.logger.WithFields(fields).Error("Document analysis failed")
	case PageAnalysisCompleted:
		o.logger.WithFields(fields).Debug("Page analysis completed")
	case PageAnalysisSkipped:
		o.logger.WithFields(fields).Warn("Page analysis skipped")
	case ContentFetched:
		o.logger.WithFields(fields).Debug("Content fetched successfully")
	case ContentFetchFailed:
		o.logger.WithFields(fields).Error("Content fetch failed")
	default:
		o.logger.WithFields(fields).Info("Analysis event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects metrics from analysis events
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalDocuments      int64
	successfulDocuments int64
	failedDocuments     int64
	pagesAnalyzed       int64
	pagesSkipped        int64
	totalProcessingTime time.Duration
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
	case DocumentAnalysisStarted:
		o.totalDocuments++
	case DocumentAnalysisCompleted:
		o.successfulDocuments++
		o.totalProcessingTime += event.ProcessingTime
	case DocumentAnalysisFailed:
		o.failedDocuments++
	case PageAnalysisCompleted:
		o.pagesAnalyzed++
	case PageAnalysisSkipped:
		o.pagesSkipped++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.successfulDocuments > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.successfulDocuments)
	}

	return map[string]interface{}{
		"total_documents":       o.totalDocuments,
		"successful_documents":  o.successfulDocuments,
		"failed_documents":      o.failedDocuments,
		"pages_analyzed":        o.pagesAnalyzed,
		"pages_skipped":         o.pagesSkipped,
		"total_processing_time": o.totalProcessingTime,
		"avg_processing_time":   avgProcessingTime,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
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

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event AnalysisEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		go func(obs Observer) {
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
