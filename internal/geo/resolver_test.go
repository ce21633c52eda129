package geo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestResolveStopsAtAccuracyThreshold(t *testing.T) {
	src := NewChannelSource()
	src.Samples <- Sample{Lat: 55.1, Lng: 37.2, Accuracy: 200}
	src.Samples <- Sample{Lat: 55.11, Lng: 37.21, Accuracy: 80}
	src.Samples <- Sample{Lat: 55.111111, Lng: 37.222222, Accuracy: 40}

	r := NewResolver(50, time.Second)
	got, err := r.Resolve(context.Background(), src)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Accuracy != 40 {
		t.Errorf("Accuracy = %v, want 40 (first sample under threshold)", got.Accuracy)
	}
	if got.Lat != 55.111111 || got.Lng != 37.222222 {
		t.Errorf("coordinates = %v,%v, want 55.111111,37.222222", got.Lat, got.Lng)
	}
	if !src.Stopped() {
		t.Error("watch was not stopped")
	}
}

func TestResolveTimeoutReturnsBestSample(t *testing.T) {
	src := NewChannelSource()
	src.Samples <- Sample{Lat: 55.1, Lng: 37.2, Accuracy: 200}
	src.Samples <- Sample{Lat: 55.2, Lng: 37.3, Accuracy: 75}
	src.Samples <- Sample{Lat: 55.3, Lng: 37.4, Accuracy: 120}

	r := NewResolver(50, 50*time.Millisecond)
	got, err := r.Resolve(context.Background(), src)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Accuracy != 75 {
		t.Errorf("Accuracy = %v, want best-seen 75", got.Accuracy)
	}
	if !src.Stopped() {
		t.Error("watch was not stopped")
	}
}

func TestResolveNoSamplesReturnsErrNoFix(t *testing.T) {
	src := NewChannelSource()

	r := NewResolver(50, 30*time.Millisecond)
	_, err := r.Resolve(context.Background(), src)
	if !errors.Is(err, ErrNoFix) {
		t.Fatalf("Resolve() error = %v, want ErrNoFix", err)
	}
	if !src.Stopped() {
		t.Error("watch was not stopped")
	}
}

func TestResolveDeviceErrorEndsWatch(t *testing.T) {
	src := NewChannelSource()
	src.Errs <- ErrPermissionDenied

	r := NewResolver(50, time.Second)
	_, err := r.Resolve(context.Background(), src)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Resolve() error = %v, want ErrPermissionDenied", err)
	}
	if !src.Stopped() {
		t.Error("watch was not stopped")
	}
}

func TestResolveContextCancel(t *testing.T) {
	src := NewChannelSource()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewResolver(50, time.Second)
	_, err := r.Resolve(ctx, src)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Resolve() error = %v, want context.Canceled", err)
	}
}

func TestResolveSamples(t *testing.T) {
	r := NewResolver(50, time.Second)

	got, err := r.ResolveSamples([]Sample{
		{Lat: 55.1, Lng: 37.2, Accuracy: 200},
		{Lat: 55.2, Lng: 37.3, Accuracy: 45},
		{Lat: 55.3, Lng: 37.4, Accuracy: 10},
	})
	if err != nil {
		t.Fatalf("ResolveSamples() error = %v", err)
	}
	if got.Accuracy != 45 {
		t.Errorf("Accuracy = %v, want first under-threshold sample 45", got.Accuracy)
	}

	got, err = r.ResolveSamples([]Sample{
		{Accuracy: 200}, {Accuracy: 90}, {Accuracy: 150},
	})
	if err != nil {
		t.Fatalf("ResolveSamples() error = %v", err)
	}
	if got.Accuracy != 90 {
		t.Errorf("Accuracy = %v, want best-of-batch 90", got.Accuracy)
	}

	if _, err := r.ResolveSamples(nil); !errors.Is(err, ErrNoFix) {
		t.Fatalf("ResolveSamples(nil) error = %v, want ErrNoFix", err)
	}
}

func TestResolveRoundsToSixDecimals(t *testing.T) {
	src := NewChannelSource()
	src.Samples <- Sample{Lat: 55.7558261234, Lng: 37.6172998765, Accuracy: 10}

	r := NewResolver(50, time.Second)
	got, err := r.Resolve(context.Background(), src)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Lat != 55.755826 || got.Lng != 37.6173 {
		t.Errorf("rounded coordinates = %v,%v, want 55.755826,37.6173", got.Lat, got.Lng)
	}
}
