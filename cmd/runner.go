package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunelist/internal/formatter"
	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/repositories"
	"github.com/desertthunder/tunelist/internal/services"
	"github.com/desertthunder/tunelist/internal/shared"
	"github.com/desertthunder/tunelist/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Storage and gateways are wired lazily by [Runner.connect] so that setup can run before a
// database exists.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer

	creds    models.CredentialStore
	tracks   *repositories.TrackRepository
	db       *sql.DB
	messages *shared.Messages
	client   *services.Client
	gateways *services.Gateways
	music    services.MusicService
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	// Credentials replaces the sqlite credential store, mostly for tests.
	Credentials models.CredentialStore
	Tracks      *repositories.TrackRepository
	Logger      *log.Logger
	Output      io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		creds:      opts.Credentials,
		tracks:     opts.Tracks,
	}
}

// SetLogger swaps the logger, e.g. to keep log lines out of the TUI.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) app() *cli.Command {
	configPath := r.configPath
	if configPath == "" {
		configPath = "config.toml"
	}

	return &cli.Command{
		Name:    "tunelist",
		Usage:   "Manage playlists on a remote music service",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   configPath,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "Keep credentials in memory instead of the database",
			},
		},
		Before:   r.loadConfig,
		After:    r.close,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, playlistCommand, musicCommand, userCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig reads the config file when present and applies environment overrides.
func (r *Runner) loadConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	r.configPath = cmd.String("config")
	if _, err := os.Stat(r.configPath); err == nil {
		config, err := shared.LoadConfig(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.logger.Debug("loaded config", "path", r.configPath)
	}

	if err := shared.ApplyEnv(r.config); err != nil {
		return ctx, err
	}
	return ctx, r.config.Validate()
}

// connect opens storage and builds the gateways.
func (r *Runner) connect(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.client != nil {
		return ctx, nil
	}

	if r.creds == nil {
		if cmd.Bool("ephemeral") {
			r.creds = repositories.NewMemoryCredentials()
		} else {
			set, db, err := repositories.Open(r.config.Database)
			if err != nil {
				return ctx, fmt.Errorf("%w: %v", shared.ErrStorageUnavailable, err)
			}
			r.db, r.creds, r.tracks = db, set.Credentials, set.Tracks
		}
	}

	r.messages = shared.NewMessages(r.config.UI.Locale)
	r.client = services.NewClientFromConfig(r.config.API, r.creds, shared.WithLogger(r.logger, "component", "client"), r.messages)
	r.gateways = services.NewGateways(r.client)
	r.music = services.NewCachedMusic(r.gateways.Music, r.config.Cache.TTL())
	return ctx, nil
}

func (r *Runner) close(ctx context.Context, cmd *cli.Command) error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// aggregator builds an [tasks.Aggregator] that caches tracks when a track repository is available.
func (r *Runner) aggregator() *tasks.Aggregator {
	opts := tasks.AggregatorOpts{
		Playlists: r.gateways.Playlists,
		Logger:    shared.WithLogger(r.logger, "component", "aggregator"),
	}
	if r.tracks != nil {
		opts.Cache = repositories.NewTrackCacheAdapter(r.tracks)
	}
	return tasks.NewAggregator(opts)
}

// session returns the stored credentials or [shared.ErrNotAuthenticated].
func (r *Runner) session(ctx context.Context) (models.StoredCredentials, error) {
	stored, ok := r.creds.Read(ctx)
	if !ok || stored.Token == "" {
		return models.StoredCredentials{}, fmt.Errorf("%w: run 'tunelist auth login' first", shared.ErrNotAuthenticated)
	}
	return stored, nil
}

// unwrap converts a failed envelope into an [shared.ErrAPIRequest] error.
func unwrap[T any](res models.Result[T]) (T, error) {
	if !res.Success {
		var zero T
		return zero, fmt.Errorf("%w: %s", shared.ErrAPIRequest, res.Message)
	}
	return res.Value(), nil
}

// idArg parses a positional id argument.
func idArg(cmd *cli.Command, name string) (int64, error) {
	raw := strings.TrimSpace(cmd.StringArg(name))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", shared.ErrInvalidArgument, name, raw)
	}
	return id, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

func (r *Runner) writeTracks(tracks []models.Track) {
	if len(tracks) == 0 {
		r.writePlain("  (no songs)\n")
		return
	}
	for i, t := range tracks {
		id := "-"
		if t.ID != nil {
			id = strconv.FormatInt(*t.ID, 10)
		}
		r.writePlain("%3d. [%s] %s - %s (%s)\n", i+1, id, t.Artist, t.Title, formatter.FormatDuration(t.DurationMs))
	}
}
