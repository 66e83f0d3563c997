package capability

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "go-doc-inspector/internal/errors"
)

func TestVisionLoader_LoadsOnFirstGet(t *testing.T) {
	loader := NewVisionLoader(NewLaplacianVision, time.Second, time.Millisecond)

	if loader.State() != StateIdle {
		t.Errorf("Expected a fresh loader to be idle, got %s", loader.State())
	}

	vision, err := loader.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if vision == nil {
		t.Fatal("Expected a vision capability")
	}
	if loader.State() != StateReady {
		t.Errorf("Expected the loader to be ready, got %s", loader.State())
	}
}

func TestVisionLoader_ReadyReturnsSameInstance(t *testing.T) {
	loader := NewVisionLoader(NewLaplacianVision, time.Second, time.Millisecond)

	first, err := loader.Get(context.Background())
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	second, err := loader.Get(context.Background())
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if first != second {
		t.Error("Expected both callers to share one capability instance")
	}
}

func TestVisionLoader_FailureIsSticky(t *testing.T) {
	loadErr := errors.New("native backend missing")
	var calls int32
	factory := func(_ context.Context) (Vision, error) {
		atomic.AddInt32(&calls, 1)
		return nil, loadErr
	}
	loader := NewVisionLoader(factory, time.Second, time.Millisecond)

	for i := 0; i < 3; i++ {
		_, err := loader.Get(context.Background())
		if err == nil {
			t.Fatalf("attempt %d: expected an error", i+1)
		}
		if !apperrors.IsType(err, apperrors.ErrorTypeCapabilityUnavailable) {
			t.Errorf("attempt %d: expected capability_unavailable, got %v", i+1, err)
		}
		if !errors.Is(err, loadErr) {
			t.Errorf("attempt %d: expected the factory error in the chain, got %v", i+1, err)
		}
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected the factory to run once, ran %d times", got)
	}
	if loader.State() != StateFailed {
		t.Errorf("Expected the loader to stay failed, got %s", loader.State())
	}
}

func TestVisionLoader_SlowLoadTimesOut(t *testing.T) {
	factory := func(ctx context.Context) (Vision, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	loader := NewVisionLoader(factory, 20*time.Millisecond, time.Millisecond)

	_, err := loader.Get(context.Background())
	if err == nil {
		t.Fatal("Expected a timeout error")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeCapabilityTimeout) {
		t.Errorf("Expected capability_timeout, got %v", err)
	}
}

func TestVisionLoader_CanceledCallerIsTimeout(t *testing.T) {
	factory := func(ctx context.Context) (Vision, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	loader := NewVisionLoader(factory, time.Second, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Get(ctx)
	if err == nil {
		t.Fatal("Expected an error for a canceled caller")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeCapabilityTimeout) {
		t.Errorf("Expected capability_timeout, got %v", err)
	}
}

func TestVisionLoader_ConcurrentCallersShareOneLoad(t *testing.T) {
	var calls int32
	factory := func(_ context.Context) (Vision, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		return &LaplacianVision{}, nil
	}
	loader := NewVisionLoader(factory, time.Second, time.Millisecond)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = loader.Get(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("caller %d: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected one shared factory invocation, got %d", got)
	}
}

func TestState_String(t *testing.T) {
	cases := map[State]string{
		StateIdle:    "idle",
		StateLoading: "loading",
		StateReady:   "ready",
		StateFailed:  "failed",
		State(42):    "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(state), got, want)
		}
	}
}
