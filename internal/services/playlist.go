package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/shared"
)

// PlaylistGateway implements [PlaylistService] against the /playlist endpoints.
type PlaylistGateway struct {
	client *Client
}

// NewPlaylistGateway creates a [PlaylistGateway] on client.
func NewPlaylistGateway(client *Client) *PlaylistGateway {
	return &PlaylistGateway{client: client}
}

type playlistBody struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

type membershipBody struct {
	MusicID int64 `json:"music_no"`
}

// ListForUser calls GET /playlist/user/{userID}.
func (p *PlaylistGateway) ListForUser(ctx context.Context, userID int64) models.Result[[]models.Playlist] {
	return call[[]models.Playlist](ctx, p.client, http.MethodGet, fmt.Sprintf("/playlist/user/%d", userID), nil)
}

// Get calls GET /playlist/{playlistID}.
func (p *PlaylistGateway) Get(ctx context.Context, playlistID int64) models.Result[models.Playlist] {
	return call[models.Playlist](ctx, p.client, http.MethodGet, fmt.Sprintf("/playlist/%d", playlistID), nil)
}

// Create calls POST /playlist with the trimmed title and content.
func (p *PlaylistGateway) Create(ctx context.Context, title, content string) models.Result[models.Created] {
	body, ok := newPlaylistBody(title, content)
	if !ok {
		return fail[models.Created](p.client, shared.MsgTitleRequired)
	}
	return call[models.Created](ctx, p.client, http.MethodPost, "/playlist", body)
}

// Update calls PUT /playlist/{playlistID} with the trimmed title and content.
func (p *PlaylistGateway) Update(ctx context.Context, playlistID int64, title, content string) models.Result[models.Empty] {
	body, ok := newPlaylistBody(title, content)
	if !ok {
		return fail[models.Empty](p.client, shared.MsgTitleRequired)
	}
	return call[models.Empty](ctx, p.client, http.MethodPut, fmt.Sprintf("/playlist/%d", playlistID), body)
}

// Delete calls DELETE /playlist/{playlistID}.
func (p *PlaylistGateway) Delete(ctx context.Context, playlistID int64) models.Result[models.Empty] {
	return call[models.Empty](ctx, p.client, http.MethodDelete, fmt.Sprintf("/playlist/%d", playlistID), nil)
}

// AddTrack calls POST /playlist/{playlistID}/music. The track must be persisted.
func (p *PlaylistGateway) AddTrack(ctx context.Context, playlistID int64, track models.Track) models.Result[models.Membership] {
	if !track.Persisted() {
		return fail[models.Membership](p.client, shared.MsgTrackNotPersisted)
	}
	path := fmt.Sprintf("/playlist/%d/music", playlistID)
	return call[models.Membership](ctx, p.client, http.MethodPost, path, membershipBody{MusicID: *track.ID})
}

// RemoveTrack calls DELETE /playlist/{playlistID}/music/{musicID}. The track must be persisted.
func (p *PlaylistGateway) RemoveTrack(ctx context.Context, playlistID int64, track models.Track) models.Result[models.Empty] {
	if !track.Persisted() {
		return fail[models.Empty](p.client, shared.MsgTrackNotPersisted)
	}
	path := fmt.Sprintf("/playlist/%d/music/%d", playlistID, *track.ID)
	return call[models.Empty](ctx, p.client, http.MethodDelete, path, nil)
}

// ListTracks calls GET /playlist/{playlistID}/music.
func (p *PlaylistGateway) ListTracks(ctx context.Context, playlistID int64) models.Result[models.TrackList] {
	return call[models.TrackList](ctx, p.client, http.MethodGet, fmt.Sprintf("/playlist/%d/music", playlistID), nil)
}

func newPlaylistBody(title, content string) (playlistBody, bool) {
	body := playlistBody{Title: strings.TrimSpace(title), Content: strings.TrimSpace(content)}
	return body, body.Title != ""
}
