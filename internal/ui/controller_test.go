package ui

import (
	"context"
	"testing"

	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/repositories"
	"github.com/desertthunder/tunelist/internal/services"
	"github.com/desertthunder/tunelist/internal/shared"
	"github.com/desertthunder/tunelist/internal/tasks"
	tu "github.com/desertthunder/tunelist/internal/testing"
)

func newTestController(t *testing.T) (*Controller, *tu.FakeAPI, models.CredentialStore) {
	t.Helper()
	api := tu.NewFakeAPI(t)
	creds := repositories.NewMemoryCredentials()
	g := services.NewGateways(services.NewClient(services.ClientOpts{BaseURL: api.URL(), Credentials: creds}))
	ctrl := NewController(ControllerOpts{
		Auth:      g.Auth,
		Playlists: g.Playlists,
		Music:     g.Music,
		Loader:    tasks.NewAggregator(tasks.AggregatorOpts{Playlists: g.Playlists}),
	})
	return ctrl, api, creds
}

func login(t *testing.T, ctrl *Controller) State {
	t.Helper()
	a := ctrl.Login(context.Background(), "tester@example.com", "secret")
	if _, ok := a.(LoginSucceeded); !ok {
		t.Fatalf("expected LoginSucceeded, got %#v", a)
	}
	return Reduce(Initial(), a)
}

func expectToast(t *testing.T, a Action) ShowToast {
	t.Helper()
	toast, ok := a.(ShowToast)
	if !ok || !toast.Error {
		t.Fatalf("expected error toast, got %#v", a)
	}
	return toast
}

func TestController(t *testing.T) {
	ctx := context.Background()

	t.Run("Login", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			ctrl, api, creds := newTestController(t)
			s := login(t, ctrl)
			if s.Session.Token != api.Token || s.UserID() != api.UserID {
				t.Errorf("expected session for user %d, got %+v", api.UserID, s.Session)
			}
			if stored, ok := creds.Read(ctx); !ok || stored.Token != api.Token {
				t.Errorf("expected stored token, got %+v", stored)
			}
		})

		t.Run("Wrong Password", func(t *testing.T) {
			ctrl, _, _ := newTestController(t)
			expectToast(t, ctrl.Login(ctx, "tester@example.com", "nope"))
		})

		t.Run("Invalid Input", func(t *testing.T) {
			ctrl, api, _ := newTestController(t)
			toast := expectToast(t, ctrl.Login(ctx, "not-an-email", "secret"))
			if toast.Text != shared.MsgCredentialsRequired {
				t.Errorf("expected %q, got %q", shared.MsgCredentialsRequired, toast.Text)
			}
			if n := api.Count("/auth"); n != 0 {
				t.Errorf("expected no auth requests, got %d", n)
			}
		})
	})

	t.Run("Register", func(t *testing.T) {
		ctrl, _, _ := newTestController(t)
		if a := ctrl.Register(ctx, "new@example.com", "pw", "newbie"); !isType[RegisterSucceeded](a) {
			t.Errorf("expected RegisterSucceeded, got %#v", a)
		}
		expectToast(t, ctrl.Register(ctx, "tester@example.com", "pw", "dup"))
	})

	t.Run("Logout Clears Credentials", func(t *testing.T) {
		ctrl, _, creds := newTestController(t)
		login(t, ctrl)
		if a := ctrl.Logout(ctx); !isType[LoggedOut](a) {
			t.Fatalf("expected LoggedOut, got %#v", a)
		}
		if _, ok := creds.Read(ctx); ok {
			t.Error("expected credentials to be cleared")
		}
	})

	t.Run("Reload", func(t *testing.T) {
		t.Run("Not Signed In", func(t *testing.T) {
			ctrl, _, _ := newTestController(t)
			toast := expectToast(t, ctrl.Reload(ctx, Initial()))
			if toast.Text != shared.MsgNotSignedIn {
				t.Errorf("expected %q, got %q", shared.MsgNotSignedIn, toast.Text)
			}
		})

		t.Run("Loads Playlists With Tracks", func(t *testing.T) {
			ctrl, api, _ := newTestController(t)
			api.AddPlaylist(api.UserID, "Mix", models.Track{ID: musicNo(5), Title: "Five", DurationMs: 60000})
			api.AddPlaylist(api.UserID+1, "Someone Else")
			s := login(t, ctrl)

			a := ctrl.Reload(ctx, s)
			loaded, ok := a.(PlaylistsLoaded)
			if !ok {
				t.Fatalf("expected PlaylistsLoaded, got %#v", a)
			}
			if got := loaded.Aggregate.Playlists; len(got) != 1 || len(got[0].Tracks) != 1 || got[0].Title != "Mix" {
				t.Errorf("expected Mix with one track, got %+v", got)
			}
		})
	})

	t.Run("Playlists", func(t *testing.T) {
		ctrl, api, _ := newTestController(t)
		s := login(t, ctrl)

		a := ctrl.CreatePlaylist(ctx, "  Road Trip  ", " loud ")
		created, ok := a.(PlaylistCreated)
		if !ok {
			t.Fatalf("expected PlaylistCreated, got %#v", a)
		}
		p := created.Playlist
		if p.ID == 0 || p.Title != "Road Trip" || p.Description != "loud" || p.Tracks == nil || len(p.Tracks) != 0 {
			t.Errorf("unexpected created playlist %+v", p)
		}
		s = Reduce(s, a)

		toast := expectToast(t, ctrl.CreatePlaylist(ctx, "   ", ""))
		if toast.Text != shared.MsgTitleRequired {
			t.Errorf("expected %q, got %q", shared.MsgTitleRequired, toast.Text)
		}

		if a := ctrl.UpdatePlaylist(ctx, p.ID, "Road", ""); !isType[PlaylistUpdated](a) {
			t.Errorf("expected PlaylistUpdated, got %#v", a)
		}

		track := models.Track{ID: musicNo(42), Title: "Answer"}
		api.AddCatalog(track)
		a = ctrl.AddTrack(ctx, p.ID, track)
		if !isType[TrackAdded](a) {
			t.Fatalf("expected TrackAdded, got %#v", a)
		}
		s = Reduce(s, a)
		if got, _ := s.Playlist(p.ID); len(got.Tracks) != 1 {
			t.Errorf("expected one track after add, got %+v", got.Tracks)
		}

		toast = expectToast(t, ctrl.AddTrack(ctx, p.ID, models.Track{Title: "Draft"}))
		if toast.Text != shared.MsgTrackNotPersisted {
			t.Errorf("expected %q, got %q", shared.MsgTrackNotPersisted, toast.Text)
		}

		a = ctrl.RemoveTrack(ctx, p.ID, track)
		if removed, ok := a.(TrackRemoved); !ok || removed.MusicID != 42 {
			t.Fatalf("expected TrackRemoved for 42, got %#v", a)
		}
		s = Reduce(s, a)
		if got, _ := s.Playlist(p.ID); len(got.Tracks) != 0 {
			t.Errorf("expected no tracks after remove, got %+v", got.Tracks)
		}

		if a := ctrl.DeletePlaylist(ctx, p.ID); !isType[PlaylistDeleted](a) {
			t.Errorf("expected PlaylistDeleted, got %#v", a)
		}
		expectToast(t, ctrl.DeletePlaylist(ctx, 9999))
	})

	t.Run("Search", func(t *testing.T) {
		ctrl, api, _ := newTestController(t)
		login(t, ctrl)
		api.AddCatalog(models.Track{ID: musicNo(1), Title: "Lovesick", Artist: "X"}, models.Track{ID: musicNo(2), Title: "Other", Artist: "Y"})

		a := ctrl.Search(ctx, "love")
		done, ok := a.(SearchFinished)
		if !ok || done.Query != "love" || len(done.Tracks) != 1 || done.Message != "" {
			t.Errorf("expected one result for love, got %#v", a)
		}

		blank, _ := ctrl.Search(ctx, "  ").(SearchFinished)
		if blank.Message != shared.MsgQueryRequired || len(blank.Tracks) != 0 {
			t.Errorf("expected query required message, got %#v", blank)
		}

		chart, _ := ctrl.Top50(ctx, "love").(SearchFinished)
		if chart.Query != "love" || len(chart.Tracks) != 2 {
			t.Errorf("expected the chart under the current query, got %#v", chart)
		}
	})
}

// acceptingPlaylists reports success for every membership change.
type acceptingPlaylists struct {
	services.PlaylistService
	calls int
}

func (a *acceptingPlaylists) AddTrack(context.Context, int64, models.Track) models.Result[models.Membership] {
	a.calls++
	return models.Ok(models.Membership{})
}

func (a *acceptingPlaylists) RemoveTrack(context.Context, int64, models.Track) models.Result[models.Empty] {
	a.calls++
	return models.Ok(models.Empty{})
}

func TestControllerUnpersistedTrack(t *testing.T) {
	ctx := context.Background()
	playlists := &acceptingPlaylists{}
	ctrl := NewController(ControllerOpts{Playlists: playlists})
	draft := models.Track{Title: "Draft"}

	for name, a := range map[string]Action{
		"Remove": ctrl.RemoveTrack(ctx, 1, draft),
		"Add":    ctrl.AddTrack(ctx, 1, draft),
	} {
		t.Run(name, func(t *testing.T) {
			toast := expectToast(t, a)
			if toast.Text != shared.MsgTrackNotPersisted {
				t.Errorf("expected %q, got %q", shared.MsgTrackNotPersisted, toast.Text)
			}
		})
	}
	if playlists.calls != 0 {
		t.Errorf("expected no service calls, got %d", playlists.calls)
	}

	if a := ctrl.RemoveTrack(ctx, 1, models.Track{ID: musicNo(3)}); !isType[TrackRemoved](a) {
		t.Errorf("expected TrackRemoved for a saved track, got %#v", a)
	}
}

func isType[T Action](a Action) bool {
	_, ok := a.(T)
	return ok
}
