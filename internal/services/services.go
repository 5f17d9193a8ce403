package services

import (
	"context"

	"github.com/desertthunder/tunelist/internal/models"
)

// MusicService lists and searches the remote music catalog.
type MusicService interface {
	// Search finds tracks whose title or artist matches query.
	Search(ctx context.Context, query string) models.Result[[]models.Track]

	// All lists the full catalog.
	All(ctx context.Context) models.Result[[]models.Track]

	// Top50 lists the chart.
	Top50(ctx context.Context) models.Result[[]models.Track]
}

// PlaylistService performs playlist CRUD and track membership changes.
type PlaylistService interface {
	ListForUser(ctx context.Context, userID int64) models.Result[[]models.Playlist]
	Get(ctx context.Context, playlistID int64) models.Result[models.Playlist]
	Create(ctx context.Context, title, content string) models.Result[models.Created]
	Update(ctx context.Context, playlistID int64, title, content string) models.Result[models.Empty]
	Delete(ctx context.Context, playlistID int64) models.Result[models.Empty]
	AddTrack(ctx context.Context, playlistID int64, track models.Track) models.Result[models.Membership]
	RemoveTrack(ctx context.Context, playlistID int64, track models.Track) models.Result[models.Empty]
	ListTracks(ctx context.Context, playlistID int64) models.Result[models.TrackList]
}

// Verifier checks a bearer token against the auth service.
type Verifier interface {
	Verify(ctx context.Context, token string) Verification
}

// Gateways bundles every gateway built on one [Client].
type Gateways struct {
	Auth      *AuthGateway
	Music     MusicService
	Playlists *PlaylistGateway
	Users     *UserGateway
}

// NewGateways builds all gateways on client.
func NewGateways(client *Client) *Gateways {
	return &Gateways{
		Auth:      NewAuthGateway(client),
		Music:     NewMusicGateway(client),
		Playlists: NewPlaylistGateway(client),
		Users:     NewUserGateway(client),
	}
}
