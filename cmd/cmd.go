// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags(pretty bool) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: pretty,
		},
	}
}

// setupCommand writes the config file and prepares the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create the config file and run database migrations",
		Action: r.Setup,
	}
}

// authCommand handles session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "auth",
		Usage:  "Manage the signed-in session",
		Before: r.connect,
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in and store the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
					&cli.StringFlag{Name: "nickname", Aliases: []string{"n"}, Usage: "Display name", Required: true},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Sign out and forget the stored token",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Verify the stored session against the server",
				Action: r.AuthStatus,
			},
		},
	}
}

// playlistCommand handles playlist CRUD and export
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Before:  r.connect,
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List your playlists with their songs",
				Flags:  outputFlags(false),
				Action: r.PlaylistList,
			},
			{
				Name:      "show",
				Usage:     "Show one playlist and its songs",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     outputFlags(true),
				Action:    r.PlaylistShow,
			},
			{
				Name:      "create",
				Usage:     "Create a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "title"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Playlist description"},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:      "update",
				Usage:     "Rename a playlist or change its description",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title", Required: true},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
				},
				Action: r.PlaylistUpdate,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.PlaylistDelete,
			},
			{
				Name:      "add",
				Usage:     "Add a saved song to a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}, &cli.StringArg{Name: "music"}},
				Action:    r.PlaylistAdd,
			},
			{
				Name:      "remove",
				Usage:     "Remove a song from a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}, &cli.StringArg{Name: "music"}},
				Action:    r.PlaylistRemove,
			},
			{
				Name:      "export",
				Usage:     "Export a playlist to CSV, Markdown, text or JSON",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, text or json",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path (base name for csv, directory for markdown)",
					},
					&cli.BoolFlag{
						Name:  "download",
						Usage: "Download the cover image with a markdown export",
					},
				},
				Action: r.PlaylistExport,
			},
		},
	}
}

// musicCommand handles catalog lookups
func musicCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "music",
		Usage:  "Search and browse the music catalog",
		Before: r.connect,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search songs by title or artist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "query"}},
				Flags: append(outputFlags(false),
					&cli.BoolFlag{Name: "offline", Usage: "Search the local track cache instead of the server"},
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of offline results", Value: 25},
				),
				Action: r.MusicSearch,
			},
			{
				Name:   "all",
				Usage:  "List every song in the catalog",
				Flags:  outputFlags(false),
				Action: r.MusicAll,
			},
			{
				Name:   "top50",
				Usage:  "Show the top 50 chart",
				Flags:  outputFlags(false),
				Action: r.MusicTop50,
			},
		},
	}
}

// userCommand handles profile operations for the signed-in user
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "user",
		Usage:  "Profile operations",
		Before: r.connect,
		Commands: []*cli.Command{
			{
				Name:   "profile",
				Usage:  "Show your profile",
				Flags:  outputFlags(true),
				Action: r.UserProfile,
			},
			{
				Name:      "nickname",
				Usage:     "Change your nickname",
				Arguments: []cli.Argument{&cli.StringArg{Name: "nickname"}},
				Action:    r.UserNickname,
			},
			{
				Name:  "delete",
				Usage: "Delete your account",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Usage: "Confirm account deletion"},
				},
				Action: r.UserDelete,
			},
			{
				Name:   "stats",
				Usage:  "Show listening statistics",
				Flags:  outputFlags(true),
				Action: r.UserStats,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive playlist management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive playlist manager",
		Before:  r.connect,
		Action:  r.TUI,
	}
}
