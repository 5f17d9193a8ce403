package ui

import (
	"context"
	"strings"
	"time"

	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/services"
	"github.com/desertthunder/tunelist/internal/shared"
	"github.com/desertthunder/tunelist/internal/tasks"
)

// Authenticator is the slice of the auth gateway the controller drives.
type Authenticator interface {
	Login(ctx context.Context, email, password string) models.Result[models.Session]
	Register(ctx context.Context, email, password, nickname string) models.Result[models.Empty]
	Logout(ctx context.Context) models.Result[models.Empty]
}

// Controller performs the side effects behind user intents and reports each outcome as an
// [Action]. It holds no view state; the caller feeds the actions through [Reduce].
type Controller struct {
	auth      Authenticator
	playlists services.PlaylistService
	music     services.MusicService
	loader    tasks.Loader
	messages  *shared.Messages
	now       func() time.Time
}

// ControllerOpts configures a [Controller].
type ControllerOpts struct {
	Auth      Authenticator
	Playlists services.PlaylistService
	Music     services.MusicService
	Loader    tasks.Loader
	Messages  *shared.Messages
}

// NewController creates a [Controller].
func NewController(opts ControllerOpts) *Controller {
	if opts.Messages == nil {
		opts.Messages = shared.NewMessages("en")
	}
	return &Controller{
		auth:      opts.Auth,
		playlists: opts.Playlists,
		music:     opts.Music,
		loader:    opts.Loader,
		messages:  opts.Messages,
		now:       time.Now,
	}
}

func (c *Controller) failure(message string) Action {
	return ShowToast{Text: message, Error: true}
}

// Login signs in and yields [LoginSucceeded] or an error toast.
func (c *Controller) Login(ctx context.Context, email, password string) Action {
	res := c.auth.Login(ctx, email, password)
	if !res.Success || res.Data == nil {
		return c.failure(res.Message)
	}
	return LoginSucceeded{Session: res.Value()}
}

// Register creates an account and returns to the login form on success.
func (c *Controller) Register(ctx context.Context, email, password, nickname string) Action {
	res := c.auth.Register(ctx, email, password, nickname)
	if !res.Success {
		return c.failure(res.Message)
	}
	return RegisterSucceeded{Message: res.Message}
}

// Logout always ends the local session.
func (c *Controller) Logout(ctx context.Context) Action {
	c.auth.Logout(ctx)
	return LoggedOut{}
}

// Reload runs one aggregation pass for the signed-in user.
func (c *Controller) Reload(ctx context.Context, s State) Action {
	if !s.Authenticated() {
		return c.failure(c.messages.Get(shared.MsgNotSignedIn))
	}
	agg := c.loader.Load(ctx, s.UserID(), nil)
	agg.UserID = s.UserID()
	return PlaylistsLoaded{Aggregate: agg}
}

// CreatePlaylist creates a playlist and yields it with an empty track list.
func (c *Controller) CreatePlaylist(ctx context.Context, title, content string) Action {
	res := c.playlists.Create(ctx, title, content)
	if !res.Success || res.Data == nil {
		return c.failure(res.Message)
	}
	return PlaylistCreated{Playlist: models.Playlist{
		ID:          res.Value().ID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(content),
		CreatedAt:   models.Timestamp{Time: c.now()},
		Tracks:      []models.Track{},
	}}
}

func (c *Controller) UpdatePlaylist(ctx context.Context, id int64, title, content string) Action {
	res := c.playlists.Update(ctx, id, title, content)
	if !res.Success {
		return c.failure(res.Message)
	}
	return PlaylistUpdated{ID: id, Title: strings.TrimSpace(title), Description: strings.TrimSpace(content)}
}

func (c *Controller) DeletePlaylist(ctx context.Context, id int64) Action {
	res := c.playlists.Delete(ctx, id)
	if !res.Success {
		return c.failure(res.Message)
	}
	return PlaylistDeleted{ID: id}
}

func (c *Controller) AddTrack(ctx context.Context, playlistID int64, track models.Track) Action {
	if !track.Persisted() {
		return c.failure(c.messages.Get(shared.MsgTrackNotPersisted))
	}
	res := c.playlists.AddTrack(ctx, playlistID, track)
	if !res.Success {
		return c.failure(res.Message)
	}
	return TrackAdded{PlaylistID: playlistID, Track: track}
}

func (c *Controller) RemoveTrack(ctx context.Context, playlistID int64, track models.Track) Action {
	if !track.Persisted() {
		return c.failure(c.messages.Get(shared.MsgTrackNotPersisted))
	}
	res := c.playlists.RemoveTrack(ctx, playlistID, track)
	if !res.Success {
		return c.failure(res.Message)
	}
	return TrackRemoved{PlaylistID: playlistID, MusicID: *track.ID}
}

// Search yields [SearchFinished] for query; failures carry the message and no tracks.
func (c *Controller) Search(ctx context.Context, query string) Action {
	res := c.music.Search(ctx, query)
	if !res.Success {
		return SearchFinished{Query: query, Message: res.Message}
	}
	return SearchFinished{Query: query, Tracks: res.Value()}
}

// Top50 fills the search results with the chart.
func (c *Controller) Top50(ctx context.Context, query string) Action {
	res := c.music.Top50(ctx)
	if !res.Success {
		return SearchFinished{Query: query, Message: res.Message}
	}
	return SearchFinished{Query: query, Tracks: res.Value()}
}
