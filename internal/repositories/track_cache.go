package repositories

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunelist/internal/models"
)

// TrackCacheAdapter implements tasks.TrackCacher using TrackRepository.
//
// Tracks without a persisted id are skipped, they have nothing to key on.
type TrackCacheAdapter struct {
	repo *TrackRepository
}

// NewTrackCacheAdapter creates a new TrackCacheAdapter with the given repository
func NewTrackCacheAdapter(repo *TrackRepository) *TrackCacheAdapter {
	return &TrackCacheAdapter{repo: repo}
}

// CacheTracks stores every persisted track and returns how many were written.
func (a *TrackCacheAdapter) CacheTracks(ctx context.Context, tracks []models.Track) (int, error) {
	written := 0
	for _, track := range tracks {
		if !track.Persisted() {
			continue
		}
		if err := a.repo.Upsert(ctx, track); err != nil {
			return written, fmt.Errorf("failed to cache track: %w", err)
		}
		written++
	}
	return written, nil
}
