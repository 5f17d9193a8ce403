package tasks

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/shared"
)

// PlaylistLister is the slice of the playlist gateway the aggregator needs.
type PlaylistLister interface {
	ListForUser(ctx context.Context, userID int64) models.Result[[]models.Playlist]
	ListTracks(ctx context.Context, playlistID int64) models.Result[models.TrackList]
}

// TrackCacher stores tracks seen during aggregation. Errors never fail the aggregation.
type TrackCacher interface {
	CacheTracks(ctx context.Context, tracks []models.Track) (int, error)
}

// Aggregate is the outcome of one aggregation pass.
type Aggregate struct {
	UserID    int64 // owner of the listed playlists
	Playlists []models.Playlist
	Message   string  // failure message of ListForUser, empty on success
	Failed    []int64 // playlists whose tracks fell back to an empty list
}

// OK reports whether the playlist listing itself succeeded.
func (a Aggregate) OK() bool { return a.Message == "" }

// Aggregator loads every playlist of a user together with its tracks.
type Aggregator struct {
	playlists PlaylistLister
	cache     TrackCacher
	limit     int
	logger    *log.Logger
}

// AggregatorOpts configures an [Aggregator].
type AggregatorOpts struct {
	Playlists   PlaylistLister
	Cache       TrackCacher // optional
	Concurrency int         // 0 fires every track request at once
	Logger      *log.Logger
}

// NewAggregator creates an [Aggregator].
func NewAggregator(opts AggregatorOpts) *Aggregator {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	return &Aggregator{
		playlists: opts.Playlists,
		cache:     opts.Cache,
		limit:     opts.Concurrency,
		logger:    opts.Logger,
	}
}

// LoadAll returns the user's playlists with tracks attached, in listing order.
//
// When the listing fails the playlists are empty and the message is the failure message unchanged.
func (a *Aggregator) LoadAll(ctx context.Context, userID int64) ([]models.Playlist, string) {
	agg := a.Load(ctx, userID, nil)
	return agg.Playlists, agg.Message
}

// Load performs one aggregation pass and reports progress on the optional channel.
//
// Track lists are fetched concurrently once the listing completes. A failed or unsuccessful
// fetch yields an empty track list for that playlist; no playlist is ever dropped.
// Every returned playlist is a fresh value.
func (a *Aggregator) Load(ctx context.Context, userID int64, progress chan<- ProgressUpdate) Aggregate {
	sendProgress(progress, fetchPlaylistsUpdate(userID))

	listed := a.playlists.ListForUser(ctx, userID)
	if !listed.Success {
		a.logger.Warn("failed to list playlists", "user", userID, "message", listed.Message)
		agg := Aggregate{UserID: userID, Playlists: []models.Playlist{}, Message: listed.Message}
		sendProgress(progress, completeUpdate(agg))
		return agg
	}

	source := listed.Value()
	total := len(source)
	group := NewGroup[[]models.Track](total, a.limit)

	for i, p := range source {
		group.Go(i, func() ([]models.Track, error) {
			res := a.playlists.ListTracks(ctx, p.ID)
			if !res.Success {
				return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, res.Message)
			}
			return res.Value().Tracks, nil
		})
	}

	outcomes := group.Wait()
	agg := Aggregate{UserID: userID, Playlists: make([]models.Playlist, total)}
	var seen []models.Track

	for i, p := range source {
		out := outcomes[i]
		tracks := make([]models.Track, 0, len(out.Value))

		if out.OK() {
			tracks = append(tracks, out.Value...)
			seen = append(seen, out.Value...)
		} else {
			a.logger.Warn("substituting empty track list", "playlist", p.ID, "error", out.Err)
			agg.Failed = append(agg.Failed, p.ID)
		}

		p.Tracks = tracks
		agg.Playlists[i] = p
		sendProgress(progress, fetchTracksUpdate(i+1, total, p.Title, out.OK()))
	}

	a.cacheTracks(ctx, seen, progress)

	a.logger.Debug("aggregation complete", "user", userID, "playlists", total, "failed", len(agg.Failed))
	sendProgress(progress, completeUpdate(agg))
	return agg
}

func (a *Aggregator) cacheTracks(ctx context.Context, tracks []models.Track, progress chan<- ProgressUpdate) {
	if a.cache == nil || len(tracks) == 0 {
		return
	}

	written, err := a.cache.CacheTracks(ctx, tracks)
	if err != nil {
		a.logger.Debug("track cache write failed", "error", err)
	}
	sendProgress(progress, cacheTracksUpdate(written))
}
