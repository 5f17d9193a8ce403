package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/shared"
	tu "github.com/desertthunder/tunelist/internal/testing"
)

func musicNo(n int64) *int64 { return &n }

func newPlaylistFixture(t *testing.T) (*tu.FakeAPI, *PlaylistGateway) {
	t.Helper()
	api := tu.NewFakeAPI(t)
	client := NewClient(ClientOpts{BaseURL: api.URL(), Credentials: tu.SignedIn(t, api.Token)})
	return api, NewPlaylistGateway(client)
}

func TestPlaylistGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("ListForUser", func(t *testing.T) {
		api, playlists := newPlaylistFixture(t)
		api.AddPlaylist(1, "Mine")
		api.AddPlaylist(2, "Someone Else")

		res := playlists.ListForUser(ctx, 1)
		if !res.Success {
			t.Fatalf("expected success, got %+v", res)
		}
		got := res.Value()
		if len(got) != 1 || got[0].Title != "Mine" {
			t.Errorf("unexpected playlists %+v", got)
		}
		if got[0].CreatedAt.IsZero() {
			t.Error("expected created_at to decode")
		}
	})

	t.Run("Create And Get", func(t *testing.T) {
		_, playlists := newPlaylistFixture(t)

		created := playlists.Create(ctx, "  Workout  ", "  cardio  ")
		if !created.Success {
			t.Fatalf("expected create to succeed, got %+v", created)
		}

		got := playlists.Get(ctx, created.Value().ID)
		if !got.Success {
			t.Fatalf("expected get to succeed, got %+v", got)
		}
		if got.Value().Title != "Workout" || got.Value().Description != "cardio" {
			t.Errorf("expected trimmed title and content, got %+v", got.Value())
		}
	})

	t.Run("Create Sends Wire Names", func(t *testing.T) {
		var body map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&body)
			envelope(w, http.StatusCreated, `{"success":true,"data":{"playlist_no":7}}`)
		}))
		defer server.Close()

		res := NewPlaylistGateway(NewClient(ClientOpts{BaseURL: server.URL})).Create(ctx, "Road Trip", "")
		if res.Value().ID != 7 {
			t.Errorf("expected playlist_no 7, got %+v", res)
		}
		if body["title"] != "Road Trip" {
			t.Errorf("expected title in body, got %v", body)
		}
		if _, ok := body["content"]; ok {
			t.Errorf("expected empty content to be omitted, got %v", body)
		}
	})

	t.Run("Blank Title Skips Network", func(t *testing.T) {
		api, playlists := newPlaylistFixture(t)

		if res := playlists.Create(ctx, "   ", "x"); res.Success || res.Message != shared.MsgTitleRequired {
			t.Errorf("expected create validation failure, got %+v", res)
		}
		if res := playlists.Update(ctx, 1, "", "x"); res.Success || res.Message != shared.MsgTitleRequired {
			t.Errorf("expected update validation failure, got %+v", res)
		}
		if n := len(api.Requests()); n != 0 {
			t.Errorf("expected no requests, got %d", n)
		}
	})

	t.Run("Update", func(t *testing.T) {
		api, playlists := newPlaylistFixture(t)
		id := api.AddPlaylist(1, "Old")

		if res := playlists.Update(ctx, id, "New", "desc"); !res.Success {
			t.Fatalf("expected update to succeed, got %+v", res)
		}
		if got := playlists.Get(ctx, id).Value(); got.Title != "New" || got.Description != "desc" {
			t.Errorf("expected updated playlist, got %+v", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		api, playlists := newPlaylistFixture(t)
		id := api.AddPlaylist(1, "Doomed")

		if res := playlists.Delete(ctx, id); !res.Success {
			t.Fatalf("expected delete to succeed, got %+v", res)
		}
		if res := playlists.Get(ctx, id); res.Success || res.Message != "playlist not found" {
			t.Errorf("expected deleted playlist to be gone, got %+v", res)
		}
	})

	t.Run("Track Membership", func(t *testing.T) {
		api, playlists := newPlaylistFixture(t)
		api.AddCatalog(models.Track{ID: musicNo(11), Title: "Hype Boy", Artist: "NewJeans"})
		id := api.AddPlaylist(1, "Mix")

		added := playlists.AddTrack(ctx, id, models.Track{ID: musicNo(11)})
		if !added.Success || added.Value().MusicID != 11 || added.Value().PlaylistID != id {
			t.Fatalf("expected membership, got %+v", added)
		}

		tracks := playlists.ListTracks(ctx, id).Value().Tracks
		if len(tracks) != 1 || tracks[0].Title != "Hype Boy" {
			t.Fatalf("expected added track, got %+v", tracks)
		}

		if res := playlists.RemoveTrack(ctx, id, tracks[0]); !res.Success {
			t.Fatalf("expected remove to succeed, got %+v", res)
		}
		if tracks := playlists.ListTracks(ctx, id).Value().Tracks; len(tracks) != 0 {
			t.Errorf("expected empty playlist, got %+v", tracks)
		}
	})

	t.Run("Unpersisted Track Is Rejected", func(t *testing.T) {
		api, playlists := newPlaylistFixture(t)
		id := api.AddPlaylist(1, "Mix")
		draft := models.Track{Title: "Not saved"}

		if res := playlists.RemoveTrack(ctx, id, draft); res.Success || res.Message != shared.MsgTrackNotPersisted {
			t.Errorf("expected remove precondition failure, got %+v", res)
		}
		if res := playlists.AddTrack(ctx, id, draft); res.Success || res.Message != shared.MsgTrackNotPersisted {
			t.Errorf("expected add precondition failure, got %+v", res)
		}
		if n := len(api.Requests()); n != 0 {
			t.Errorf("expected no requests, got %d", n)
		}
	})

	t.Run("Round Trip", func(t *testing.T) {
		_, playlists := newPlaylistFixture(t)

		if res := playlists.Create(ctx, "Workout", ""); !res.Success {
			t.Fatalf("expected create to succeed, got %+v", res)
		}

		found := false
		for _, p := range playlists.ListForUser(ctx, 1).Value() {
			if p.Title == "Workout" {
				found = true
				if tracks := playlists.ListTracks(ctx, p.ID).Value().Tracks; len(tracks) != 0 {
					t.Errorf("expected new playlist to be empty, got %+v", tracks)
				}
			}
		}
		if !found {
			t.Error("expected Workout in the user's playlists")
		}
	})
}
