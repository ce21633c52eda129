package geo

import (
	"context"
	"time"

	"github.com/myville/backend/internal/metrics"
)

// Fix is an acquired position with its display address.
type Fix struct {
	Lat      float64
	Lng      float64
	Accuracy float64
	Address  string
}

// Locator ties acquisition and reverse geocoding together: resolve the most
// accurate coordinates within budget, then attach a display address.
type Locator struct {
	resolver *Resolver
	geocoder *Geocoder
}

func NewLocator(resolver *Resolver, geocoder *Geocoder) *Locator {
	return &Locator{resolver: resolver, geocoder: geocoder}
}

// Locate acquires a position from src and reverse-geocodes it. Acquisition
// errors are returned unchanged; a geocoding failure never is — the address
// falls back to the raw coordinate pair inside Reverse.
func (l *Locator) Locate(ctx context.Context, src PositionSource) (Fix, error) {
	start := time.Now()
	sample, err := l.resolver.Resolve(ctx, src)
	metrics.GeoResolveDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return Fix{}, err
	}

	return l.describe(ctx, sample), nil
}

// LocateSamples resolves a client-collected batch of watch samples and
// attaches a display address.
func (l *Locator) LocateSamples(ctx context.Context, samples []Sample) (Fix, error) {
	start := time.Now()
	sample, err := l.resolver.ResolveSamples(samples)
	metrics.GeoResolveDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return Fix{}, err
	}
	return l.describe(ctx, sample), nil
}

func (l *Locator) describe(ctx context.Context, sample Sample) Fix {
	return Fix{
		Lat:      sample.Lat,
		Lng:      sample.Lng,
		Accuracy: sample.Accuracy,
		Address:  l.geocoder.Reverse(ctx, sample.Lat, sample.Lng),
	}
}
