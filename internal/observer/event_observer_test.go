package observer

import (
	"context"
	"sync"
	"testing"
	"time"
)

// recordingObserver captures events for assertions
type recordingObserver struct {
	mu     sync.Mutex
	name   string
	events []AnalysisEvent
}

func (o *recordingObserver) OnEvent(_ context.Context, event AnalysisEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) GetObserverName() string { return o.name }

func (o *recordingObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.events)
}

func waitForCount(t *testing.T, o *recordingObserver, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if o.count() >= want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("Expected %d events, got %d", want, o.count())
}

func TestEventPublisher_SubscribeAndNotify(t *testing.T) {
	publisher := NewEventPublisher()
	obs := &recordingObserver{name: "recording"}
	publisher.Subscribe(obs)

	publisher.NotifyObservers(context.Background(), AnalysisEvent{
		EventType: DocumentAnalysisStarted,
		Source:    "https://example.com/doc.pdf",
		Timestamp: time.Now(),
	})

	waitForCount(t, obs, 1)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if obs.events[0].EventType != DocumentAnalysisStarted {
		t.Errorf("Expected started event, got %s", obs.events[0].EventType)
	}
	if obs.events[0].Source != "https://example.com/doc.pdf" {
		t.Errorf("Source not carried: %s", obs.events[0].Source)
	}
}

func TestEventPublisher_Unsubscribe(t *testing.T) {
	publisher := NewEventPublisher()
	keep := &recordingObserver{name: "keep"}
	drop := &recordingObserver{name: "drop"}
	publisher.Subscribe(keep)
	publisher.Subscribe(drop)
	publisher.Unsubscribe(drop)

	publisher.NotifyObservers(context.Background(), AnalysisEvent{EventType: ContentFetched})

	waitForCount(t, keep, 1)
	if drop.count() != 0 {
		t.Errorf("Unsubscribed observer must not receive events, got %d", drop.count())
	}
}

type panickingObserver struct{}

func (panickingObserver) OnEvent(context.Context, AnalysisEvent) { panic("boom") }
func (panickingObserver) GetObserverName() string                { return "panicking" }

func TestEventPublisher_SurvivesPanickingObserver(t *testing.T) {
	publisher := NewEventPublisher()
	obs := &recordingObserver{name: "recording"}
	publisher.Subscribe(panickingObserver{})
	publisher.Subscribe(obs)

	publisher.NotifyObservers(context.Background(), AnalysisEvent{EventType: DocumentAnalysisFailed})

	// The panic is recovered in its own goroutine; the healthy observer
	// still gets the event.
	waitForCount(t, obs, 1)
}

func TestMetricsObserver_Counts(t *testing.T) {
	metrics := NewMetricsObserver()
	ctx := context.Background()

	metrics.OnEvent(ctx, AnalysisEvent{EventType: DocumentAnalysisStarted})
	metrics.OnEvent(ctx, AnalysisEvent{EventType: PageAnalysisCompleted})
	metrics.OnEvent(ctx, AnalysisEvent{EventType: PageAnalysisCompleted})
	metrics.OnEvent(ctx, AnalysisEvent{EventType: PageAnalysisSkipped})
	metrics.OnEvent(ctx, AnalysisEvent{EventType: DocumentAnalysisCompleted, ProcessingTime: 2 * time.Second})
	metrics.OnEvent(ctx, AnalysisEvent{EventType: DocumentAnalysisStarted})
	metrics.OnEvent(ctx, AnalysisEvent{EventType: DocumentAnalysisFailed})

	got := metrics.GetMetrics()

	if got["total_documents"].(int64) != 2 {
		t.Errorf("Expected 2 total documents, got %v", got["total_documents"])
	}
	if got["successful_documents"].(int64) != 1 {
		t.Errorf("Expected 1 successful document, got %v", got["successful_documents"])
	}
	if got["failed_documents"].(int64) != 1 {
		t.Errorf("Expected 1 failed document, got %v", got["failed_documents"])
	}
	if got["pages_analyzed"].(int64) != 2 {
		t.Errorf("Expected 2 pages analyzed, got %v", got["pages_analyzed"])
	}
	if got["pages_skipped"].(int64) != 1 {
		t.Errorf("Expected 1 page skipped, got %v", got["pages_skipped"])
	}
	if got["avg_processing_time"].(time.Duration) != 2*time.Second {
		t.Errorf("Expected 2s average, got %v", got["avg_processing_time"])
	}
}

func TestMetricsObserver_EmptyAverage(t *testing.T) {
	metrics := NewMetricsObserver()

	got := metrics.GetMetrics()

	if got["avg_processing_time"].(time.Duration) != 0 {
		t.Errorf("Expected zero average with no documents, got %v", got["avg_processing_time"])
	}
}
