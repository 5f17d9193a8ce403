package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/tunelist/internal/formatter"
	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistList aggregates every playlist of the signed-in user with its songs.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	stored, err := r.session(ctx)
	if err != nil {
		return err
	}

	agg := r.aggregator().Load(ctx, stored.UserID, nil)
	if !agg.OK() {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, agg.Message)
	}
	for _, id := range agg.Failed {
		r.logger.Warn("songs unavailable for playlist", "playlist", id)
	}

	if cmd.Bool("json") {
		return r.writeJSON(agg.Playlists, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Playlists of %s (%d)", stored.DisplayName, len(agg.Playlists)))
	for _, p := range agg.Playlists {
		r.writePlain("%5d  %-30s %3d songs  %3d min  %s\n",
			p.ID, p.Title, len(p.Tracks), formatter.TotalMinutes(p.Tracks),
			formatter.FormatDate(p.CreatedAt, r.config.UI.Locale, true))
	}
	return nil
}

// loadPlaylist fetches a playlist and fills its songs from the tracks endpoint.
func (r *Runner) loadPlaylist(ctx context.Context, id int64) (models.Playlist, error) {
	playlist, err := unwrap(r.gateways.Playlists.Get(ctx, id))
	if err != nil {
		return models.Playlist{}, err
	}

	list, err := unwrap(r.gateways.Playlists.ListTracks(ctx, id))
	if err != nil {
		r.logger.Warn("failed to load songs", "playlist", id, "error", err)
		list.Tracks = []models.Track{}
	}
	playlist.Tracks = list.Tracks
	if playlist.Tracks == nil {
		playlist.Tracks = []models.Track{}
	}
	return playlist, nil
}

// PlaylistShow prints a playlist with its songs.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	playlist, err := r.loadPlaylist(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlist, cmd.Bool("pretty"))
	}

	r.writePlainHeader(playlist.Title)
	if playlist.Description != "" {
		r.writePlain("%s\n", playlist.Description)
	}
	r.writePlain("%d songs • %d min • %s\n\n", len(playlist.Tracks), formatter.TotalMinutes(playlist.Tracks),
		formatter.FormatDate(playlist.CreatedAt, r.config.UI.Locale, false))
	r.writeTracks(playlist.Tracks)
	return nil
}

// PlaylistCreate creates a playlist.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}

	created, err := unwrap(r.gateways.Playlists.Create(ctx, title, cmd.String("description")))
	if err != nil {
		return err
	}
	return r.writePlain("✓ Created playlist %d: %s\n", created.ID, strings.TrimSpace(title))
}

// PlaylistUpdate replaces a playlist's title and description.
func (r *Runner) PlaylistUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	if _, err := unwrap(r.gateways.Playlists.Update(ctx, id, cmd.String("title"), cmd.String("description"))); err != nil {
		return err
	}
	return r.writePlain("✓ Updated playlist %d\n", id)
}

// PlaylistDelete deletes a playlist.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	if _, err := unwrap(r.gateways.Playlists.Delete(ctx, id)); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted playlist %d\n", id)
}

func membershipArgs(cmd *cli.Command) (int64, models.Track, error) {
	id, err := idArg(cmd, "id")
	if err != nil {
		return 0, models.Track{}, err
	}
	musicNo, err := idArg(cmd, "music")
	if err != nil {
		return 0, models.Track{}, err
	}
	return id, models.Track{ID: &musicNo}, nil
}

// PlaylistAdd adds a persisted song to a playlist.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	id, track, err := membershipArgs(cmd)
	if err != nil {
		return err
	}

	m, err := unwrap(r.gateways.Playlists.AddTrack(ctx, id, track))
	if err != nil {
		return err
	}
	return r.writePlain("✓ Added song %d to playlist %d\n", m.MusicID, id)
}

// PlaylistRemove removes a song from a playlist.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	id, track, err := membershipArgs(cmd)
	if err != nil {
		return err
	}

	if _, err := unwrap(r.gateways.Playlists.RemoveTrack(ctx, id, track)); err != nil {
		return err
	}
	return r.writePlain("✓ Removed song %d from playlist %d\n", *track.ID, id)
}

// PlaylistExport writes a playlist to disk in the requested format.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	playlist, err := r.loadPlaylist(ctx, id)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	r.logger.Info("exporting playlist", "playlist", id, "format", cmd.String("format"))

	switch strings.ToLower(cmd.String("format")) {
	case "csv":
		res, err := formatter.WriteCSVExport(playlist, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Songs: %s\n", res.TracksFile)
		return r.writePlain("✓ Metadata: %s\n", res.MetadataFile)
	case "markdown", "md":
		res, err := formatter.WriteMarkdownExport(playlist, output, cmd.Bool("download"))
		if err != nil {
			return err
		}
		for _, w := range res.Warnings {
			r.logger.Warn(w)
		}
		for _, f := range res.Files {
			r.writePlain("✓ %s\n", f)
		}
		return nil
	case "text", "txt":
		path, err := formatter.WriteTextExport(playlist, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ %s\n", path)
	case "json":
		data, err := formatter.ToMetadataJSON(playlist)
		if err != nil {
			return err
		}
		if output == "" {
			_, err = r.output.Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write metadata file: %w", err)
		}
		return r.writePlain("✓ %s\n", output)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, cmd.String("format"))
	}
}
