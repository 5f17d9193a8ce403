package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/tunelist/internal/formatter"
	"github.com/desertthunder/tunelist/internal/shared"
	"github.com/urfave/cli/v3"
)

// UserProfile prints the signed-in user's profile.
func (r *Runner) UserProfile(ctx context.Context, cmd *cli.Command) error {
	stored, err := r.session(ctx)
	if err != nil {
		return err
	}

	profile, err := unwrap(r.gateways.Users.Profile(ctx, stored.UserID))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(profile, cmd.Bool("pretty"))
	}

	r.writePlainHeader(profile.Nickname)
	r.writePlain("User:   %d\n", profile.UserID)
	r.writePlain("Email:  %s\n", profile.Email)
	return r.writePlain("Joined: %s\n", formatter.FormatDate(profile.CreatedAt, r.config.UI.Locale, false))
}

// UserNickname changes the display name.
func (r *Runner) UserNickname(ctx context.Context, cmd *cli.Command) error {
	stored, err := r.session(ctx)
	if err != nil {
		return err
	}

	nickname := strings.TrimSpace(cmd.StringArg("nickname"))
	if _, err := unwrap(r.gateways.Users.UpdateNickname(ctx, stored.UserID, nickname)); err != nil {
		return err
	}
	return r.writePlain("✓ Nickname changed to %s\n", nickname)
}

// UserDelete deletes the account and signs out. Requires --yes.
func (r *Runner) UserDelete(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: pass --yes to delete your account", shared.ErrMissingArgument)
	}

	stored, err := r.session(ctx)
	if err != nil {
		return err
	}

	if _, err := unwrap(r.gateways.Users.DeleteAccount(ctx, stored.UserID)); err != nil {
		return err
	}
	return r.writePlain("✓ Account %d deleted\n", stored.UserID)
}

// UserStats prints the listening statistics as plain numbers.
func (r *Runner) UserStats(ctx context.Context, cmd *cli.Command) error {
	stored, err := r.session(ctx)
	if err != nil {
		return err
	}

	stats, err := unwrap(r.gateways.Users.Stats(ctx, stored.UserID))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(stats, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Genres")
	for _, g := range stats.Genres {
		r.writePlain("%-20s %3d%%\n", g.Name, g.Value)
	}

	r.writePlainHeader("Weekly activity")
	for _, d := range stats.Weekly {
		r.writePlain("%-4s %3d playlists %4d songs\n", d.Day, d.Playlists, d.Songs)
	}

	f := stats.Features
	r.writePlainHeader("Audio features")
	r.writePlain("Energy:           %3d\n", f.Energy)
	r.writePlain("Danceability:     %3d\n", f.Danceability)
	r.writePlain("Valence:          %3d\n", f.Valence)
	r.writePlain("Acousticness:     %3d\n", f.Acousticness)
	return r.writePlain("Instrumentalness: %3d\n", f.Instrumentalness)
}
