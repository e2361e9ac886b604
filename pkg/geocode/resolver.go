package geocode

import (
	"context"
	"fmt"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/rs/zerolog"
)

// Pool runs geocoding lookups off the message delivery path.
type Pool interface {
	Submit(task func())
}

// Resolver resolves addresses asynchronously through a worker pool and
// caches results per coordinate, since a fleet revisits the same spots.
// Lookups never block the caller and never fail: a provider error or a
// missing provider falls back to the raw coordinates.
type Resolver struct {
	provider Provider
	pool     Pool
	cache    cmap.ConcurrentMap[string, string]
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewResolver creates a Resolver. provider may be nil, in which case
// every resolution yields the coordinate fallback.
func NewResolver(provider Provider, pool Pool, timeout time.Duration, logger zerolog.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		pool:     pool,
		cache:    cmap.New[string](),
		timeout:  timeout,
		logger:   logger,
	}
}

// Resolve invokes fn with the address for the coordinates. On a cache
// hit fn runs synchronously before Resolve returns; otherwise it runs
// later on a pool worker.
func (r *Resolver) Resolve(lat, lon float64, fn func(address string)) {
	key := cacheKey(lat, lon)
	if addr, ok := r.cache.Get(key); ok {
		fn(addr)
		return
	}

	r.pool.Submit(func() {
		fn(r.lookup(key, lat, lon))
	})
}

func (r *Resolver) lookup(key string, lat, lon float64) string {
	if r.provider == nil {
		return FormatCoordinates(lat, lon)
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	addr, err := r.provider.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		r.logger.Warn().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("Reverse geocoding failed, falling back to raw coordinates")
		return FormatCoordinates(lat, lon)
	}

	r.cache.Set(key, addr)
	return addr
}

// cacheKey rounds to four decimal places, roughly 11 meters, so nearby
// reports share one lookup.
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}
