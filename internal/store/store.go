package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/srrview/backend/internal/models"
	"github.com/srrview/backend/internal/service"
	"github.com/srrview/backend/internal/sheet"
)

// Store caches the normalized record set with a TTL. Reads within one TTL
// window all observe the same snapshot; the fetch happens under the lock so
// only one is ever in flight.
type Store struct {
	Fetcher    sheet.Fetcher
	Normalizer *service.Normalizer
	TTL        time.Duration
	Logger     zerolog.Logger

	mu       sync.Mutex
	snapshot models.Snapshot
	loaded   bool
}

func New(fetcher sheet.Fetcher, normalizer *service.Normalizer, ttl time.Duration, logger zerolog.Logger) *Store {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &Store{Fetcher: fetcher, Normalizer: normalizer, TTL: ttl, Logger: logger}
}

// Snapshot returns the cached record set, refetching when the cache is cold
// or expired. A fetch failure is returned as-is; the caller sees "no data"
// rather than a silently stale table.
func (s *Store) Snapshot(ctx context.Context) (models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded && time.Since(s.snapshot.FetchedAt) < s.TTL {
		return s.snapshot, nil
	}

	table, err := s.Fetcher.Fetch(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}

	snap := models.Snapshot{
		Records:   s.Normalizer.Normalize(table),
		FetchedAt: time.Now(),
	}
	s.snapshot = snap
	s.loaded = true
	s.Logger.Info().Int("records", len(snap.Records)).Msg("snapshot refreshed")
	return snap, nil
}

// Invalidate drops the cached snapshot so the next read refetches.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
}

// Ping confirms a snapshot can be served, fetching one if needed.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.Snapshot(ctx)
	return err
}

// StartRefresher re-primes the cache on a fixed interval so viewers rarely
// pay the fetch latency. It is a scheduled task, not a blocking loop: each
// tick triggers one refresh and errors only get logged.
func (s *Store) StartRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.TTL
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Invalidate()
				if _, err := s.Snapshot(ctx); err != nil {
					s.Logger.Error().Err(err).Msg("scheduled refresh failed")
				}
			}
		}
	}()
}
