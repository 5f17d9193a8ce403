package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/repositories"
	"github.com/desertthunder/tunelist/internal/shared"
	"github.com/urfave/cli/v3"
)

// MusicSearch searches the catalog, or the local track cache with --offline.
//
// Online results are cached locally when a track repository is available.
func (r *Runner) MusicSearch(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))

	if cmd.Bool("offline") {
		if query == "" {
			return fmt.Errorf("%w: query", shared.ErrMissingArgument)
		}
		if r.tracks == nil {
			return fmt.Errorf("%w: offline search needs the database", shared.ErrStorageUnavailable)
		}
		tracks, err := r.tracks.Search(ctx, query, int(cmd.Int("limit")))
		if err != nil {
			return err
		}
		return r.printTracks(cmd, fmt.Sprintf("Cached results for %q", query), tracks)
	}

	tracks, err := unwrap(r.music.Search(ctx, query))
	if err != nil {
		return err
	}
	r.cache(ctx, tracks)
	return r.printTracks(cmd, fmt.Sprintf("Results for %q", query), tracks)
}

// MusicAll lists the whole catalog.
func (r *Runner) MusicAll(ctx context.Context, cmd *cli.Command) error {
	tracks, err := unwrap(r.music.All(ctx))
	if err != nil {
		return err
	}
	r.cache(ctx, tracks)
	return r.printTracks(cmd, "Catalog", tracks)
}

// MusicTop50 shows the chart.
func (r *Runner) MusicTop50(ctx context.Context, cmd *cli.Command) error {
	tracks, err := unwrap(r.music.Top50(ctx))
	if err != nil {
		return err
	}
	r.cache(ctx, tracks)
	return r.printTracks(cmd, "Top 50", tracks)
}

func (r *Runner) cache(ctx context.Context, tracks []models.Track) {
	if r.tracks == nil {
		return
	}
	n, err := repositories.NewTrackCacheAdapter(r.tracks).CacheTracks(ctx, tracks)
	if err != nil {
		r.logger.Warn("failed to cache songs", "error", err)
		return
	}
	r.logger.Debug("cached songs", "count", n)
}

func (r *Runner) printTracks(cmd *cli.Command, title string, tracks []models.Track) error {
	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}
	r.writePlainHeader(fmt.Sprintf("%s (%d)", title, len(tracks)))
	r.writeTracks(tracks)
	return nil
}
