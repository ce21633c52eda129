// Package geo implements device location acquisition and reverse geocoding.
//
// Acquisition is a best-effort accuracy-convergence loop: a continuous
// high-accuracy watch is sampled until either a sample's accuracy radius
// drops to the satisfaction threshold or the wait budget runs out, in which
// case the best sample seen so far is used.
package geo

import (
	"context"
	"errors"
	"math"
	"time"
)

// Defaults match the thresholds the mobile clients ship with.
const (
	DefaultAccuracyThreshold = 50 // meters
	DefaultMaxWait           = 20 * time.Second
)

var (
	// ErrPermissionDenied means the user refused the location permission.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrPositionUnavailable means the device has no fix at all.
	ErrPositionUnavailable = errors.New("position unavailable")
	// ErrNoFix means the watch produced no sample before the wait budget
	// elapsed. Surfaced explicitly so callers never stall silently.
	ErrNoFix = errors.New("no position fix obtained")
)

// Sample is a single device position report.
type Sample struct {
	Lat      float64
	Lng      float64
	Accuracy float64 // uncertainty radius in meters
}

// PositionSource is a continuous position watch. Start begins delivery of
// samples and device errors; Stop must end it. Implementations must not
// close the returned channels before Stop is called.
type PositionSource interface {
	Start() (<-chan Sample, <-chan error)
	Stop()
}

// Resolver acquires the most accurate coordinate pair achievable within a
// bounded wait.
type Resolver struct {
	AccuracyThreshold float64
	MaxWait           time.Duration
}

func NewResolver(accuracyThreshold float64, maxWait time.Duration) *Resolver {
	if accuracyThreshold <= 0 {
		accuracyThreshold = DefaultAccuracyThreshold
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}
	return &Resolver{AccuracyThreshold: accuracyThreshold, MaxWait: maxWait}
}

// Resolve watches src until a sample meets the accuracy threshold or MaxWait
// elapses, whichever comes first. On timeout the best (lowest accuracy
// radius) sample seen so far is returned; if none ever arrived, ErrNoFix.
// Device errors end the watch immediately and are returned as-is; nothing is
// retried. The watch is always stopped before returning.
func (r *Resolver) Resolve(ctx context.Context, src PositionSource) (Sample, error) {
	samples, errs := src.Start()
	defer src.Stop()

	timer := time.NewTimer(r.MaxWait)
	defer timer.Stop()

	var best *Sample
	for {
		select {
		case s := <-samples:
			if best == nil || s.Accuracy < best.Accuracy {
				cp := s
				best = &cp
			}
			if s.Accuracy <= r.AccuracyThreshold {
				return round(s), nil
			}
		case err := <-errs:
			return Sample{}, err
		case <-timer.C:
			if best != nil {
				return round(*best), nil
			}
			return Sample{}, ErrNoFix
		case <-ctx.Done():
			return Sample{}, ctx.Err()
		}
	}
}

// ResolveSamples applies the same decision rule to a batch the client
// collected itself: the first sample meeting the threshold wins, otherwise
// the best of the batch, otherwise ErrNoFix. Used by the HTTP resolve
// endpoint, where the watch already ran on the device.
func (r *Resolver) ResolveSamples(samples []Sample) (Sample, error) {
	var best *Sample
	for _, s := range samples {
		if s.Accuracy <= r.AccuracyThreshold {
			return round(s), nil
		}
		if best == nil || s.Accuracy < best.Accuracy {
			cp := s
			best = &cp
		}
	}
	if best != nil {
		return round(*best), nil
	}
	return Sample{}, ErrNoFix
}

// round trims coordinates to 6 decimal places (~11cm), the precision the
// clients display and submit.
func round(s Sample) Sample {
	s.Lat = math.Round(s.Lat*1e6) / 1e6
	s.Lng = math.Round(s.Lng*1e6) / 1e6
	return s
}

// ChannelSource adapts a pair of caller-fed channels to a PositionSource.
// Used by device agents that push samples from platform APIs, and by tests.
type ChannelSource struct {
	Samples chan Sample
	Errs    chan error
	stopped chan struct{}
}

func NewChannelSource() *ChannelSource {
	return &ChannelSource{
		Samples: make(chan Sample, 8),
		Errs:    make(chan error, 1),
		stopped: make(chan struct{}),
	}
}

func (c *ChannelSource) Start() (<-chan Sample, <-chan error) {
	return c.Samples, c.Errs
}

func (c *ChannelSource) Stop() {
	select {
	case <-c.stopped:
	default:
		close(c.stopped)
	}
}

// Stopped reports whether the watch was cancelled.
func (c *ChannelSource) Stopped() bool {
	select {
	case <-c.stopped:
		return true
	default:
		return false
	}
}
