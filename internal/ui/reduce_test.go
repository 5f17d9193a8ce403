package ui

import (
	"testing"
	"time"

	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/tasks"
)

func musicNo(n int64) *int64 { return &n }

func signedInState() State {
	s := Reduce(Initial(), LoginSucceeded{Session: models.Session{
		Token:    "token",
		Identity: models.Identity{ID: 1, Role: models.RoleMember, DisplayName: "tester"},
	}})
	return Reduce(s, PlaylistsLoaded{Aggregate: tasks.Aggregate{UserID: 1, Playlists: []models.Playlist{
		{ID: 1, Title: "Morning", Tracks: []models.Track{{ID: musicNo(10), Title: "A"}, {ID: musicNo(11), Title: "B"}}},
		{ID: 2, Title: "Evening", Tracks: []models.Track{}},
	}}})
}

func TestReduce(t *testing.T) {
	t.Run("Bootstrap", func(t *testing.T) {
		t.Run("Authenticated", func(t *testing.T) {
			session := &models.Session{Token: "tok", Identity: models.Identity{ID: 4}}
			s := Reduce(Initial(), BootstrapFinished{Boot: tasks.Bootstrap{State: tasks.Authenticated, Session: session}})
			if s.Screen != ScreenMain || !s.Loading || s.UserID() != 4 {
				t.Errorf("expected main screen loading for user 4, got %+v", s)
			}

			session.Identity.ID = 99
			if s.UserID() != 4 {
				t.Error("expected state to hold its own copy of the session")
			}
		})

		t.Run("Unauthenticated With Message", func(t *testing.T) {
			s := Reduce(Initial(), BootstrapFinished{Boot: tasks.Bootstrap{State: tasks.Unauthenticated, Message: "expired"}})
			if s.Screen != ScreenAuth || s.Authenticated() {
				t.Errorf("expected auth screen, got %+v", s)
			}
			if s.Toast == nil || !s.Toast.Error || s.Toast.Text != "expired" {
				t.Errorf("expected error toast, got %+v", s.Toast)
			}
		})

		t.Run("Unauthenticated Without Message", func(t *testing.T) {
			s := Reduce(Initial(), BootstrapFinished{Boot: tasks.Bootstrap{State: tasks.Unauthenticated}})
			if s.Toast != nil {
				t.Errorf("expected no toast, got %+v", s.Toast)
			}
		})
	})

	t.Run("PlaylistsLoaded", func(t *testing.T) {
		t.Run("Copies Input", func(t *testing.T) {
			in := []models.Playlist{{ID: 1, Tracks: []models.Track{{Title: "A"}}}}
			s := Reduce(signedInState(), PlaylistsLoaded{Aggregate: tasks.Aggregate{UserID: 1, Playlists: in}})
			in[0].Tracks[0].Title = "changed"
			if s.Playlists[0].Tracks[0].Title != "A" {
				t.Error("expected state to be independent of the aggregate slices")
			}
			if s.Loading {
				t.Error("expected loading to be cleared")
			}
		})

		t.Run("Failure Shows Toast", func(t *testing.T) {
			s := Reduce(signedInState(), PlaylistsLoaded{Aggregate: tasks.Aggregate{UserID: 1, Playlists: []models.Playlist{}, Message: "offline"}})
			if len(s.Playlists) != 0 || s.Toast == nil || s.Toast.Text != "offline" {
				t.Errorf("expected empty playlists with toast, got %+v", s)
			}
		})

		t.Run("Ignored After Logout", func(t *testing.T) {
			s := Reduce(signedInState(), LoggedOut{})
			s = Reduce(s, PlaylistsLoaded{Aggregate: tasks.Aggregate{UserID: 1, Playlists: []models.Playlist{{ID: 9, Title: "private"}}}})
			if len(s.Playlists) != 0 {
				t.Fatalf("expected no playlists while signed out, got %+v", s.Playlists)
			}
			s = Reduce(s, LoginSucceeded{Session: models.Session{Token: "t2", Identity: models.Identity{ID: 2}}})
			if len(s.Playlists) != 0 {
				t.Errorf("expected user 2 to start empty, got %+v", s.Playlists)
			}
		})

		t.Run("Ignored For Another User", func(t *testing.T) {
			s := Reduce(Reduce(signedInState(), AddToCart{Track: models.Track{ID: musicNo(10)}}), OpenDetail{ID: 1})
			s = Reduce(s, LoginSucceeded{Session: models.Session{Token: "t2", Identity: models.Identity{ID: 2}}})
			if len(s.Playlists) != 0 || s.Detail != 0 || len(s.Cart) != 0 || len(s.Results) != 0 {
				t.Fatalf("expected login to reset the previous session's data, got %+v", s)
			}

			s = Reduce(s, PlaylistsLoaded{Aggregate: tasks.Aggregate{UserID: 1, Playlists: []models.Playlist{{ID: 9, Title: "private"}}}})
			if len(s.Playlists) != 0 || !s.Loading {
				t.Errorf("expected stale aggregate to be dropped, got %+v", s)
			}

			s = Reduce(s, PlaylistsLoaded{Aggregate: tasks.Aggregate{UserID: 2, Playlists: []models.Playlist{{ID: 20, Title: "mine"}}}})
			if len(s.Playlists) != 1 || s.Playlists[0].ID != 20 || s.Loading {
				t.Errorf("expected user 2's playlists, got %+v", s.Playlists)
			}
		})

		t.Run("Closes Missing Detail", func(t *testing.T) {
			s := Reduce(signedInState(), OpenDetail{ID: 2})
			s = Reduce(s, PlaylistsLoaded{Aggregate: tasks.Aggregate{UserID: 1, Playlists: []models.Playlist{{ID: 1}}}})
			if s.Detail != 0 {
				t.Errorf("expected detail to close, got %d", s.Detail)
			}
		})
	})

	t.Run("Detail", func(t *testing.T) {
		s := Reduce(signedInState(), OpenDetail{ID: 1})
		p, ok := s.DetailPlaylist()
		if !ok || p.Title != "Morning" {
			t.Fatalf("expected Morning open, got %+v", p)
		}
		if s = Reduce(s, CloseDetail{}); s.Detail != 0 {
			t.Error("expected detail closed")
		}
		if s = Reduce(s, OpenDetail{ID: 404}); s.Detail != 0 {
			t.Error("expected unknown playlist to be ignored")
		}
	})

	t.Run("Modal", func(t *testing.T) {
		s := Reduce(signedInState(), OpenEdit{ID: 2})
		if s.Modal != ModalEdit || s.EditID != 2 {
			t.Errorf("expected edit modal for 2, got %+v", s)
		}
		s = Reduce(s, CloseModal{})
		if s.Modal != ModalNone || s.EditID != 0 {
			t.Errorf("expected modal closed, got %+v", s)
		}
		if s = Reduce(s, OpenEdit{ID: 404}); s.Modal != ModalNone {
			t.Error("expected edit of unknown playlist to be ignored")
		}
	})

	t.Run("Playlist Mutations Leave Input Untouched", func(t *testing.T) {
		before := signedInState()

		created := Reduce(before, PlaylistCreated{Playlist: models.Playlist{ID: 3, Title: "New", CreatedAt: models.Timestamp{Time: time.Now()}}})
		if len(before.Playlists) != 2 || len(created.Playlists) != 3 {
			t.Errorf("expected 2 -> 3 playlists, got %d -> %d", len(before.Playlists), len(created.Playlists))
		}
		if created.Playlists[2].Tracks == nil {
			t.Error("expected created playlist to have an empty, non-nil track list")
		}

		updated := Reduce(before, PlaylistUpdated{ID: 1, Title: "Dawn", Description: "quiet"})
		if before.Playlists[0].Title != "Morning" || updated.Playlists[0].Title != "Dawn" {
			t.Errorf("expected only the new state renamed, got %q / %q", before.Playlists[0].Title, updated.Playlists[0].Title)
		}

		deleted := Reduce(Reduce(before, OpenDetail{ID: 1}), PlaylistDeleted{ID: 1})
		if len(before.Playlists) != 2 || len(deleted.Playlists) != 1 || deleted.Detail != 0 {
			t.Errorf("expected delete to drop one playlist and close detail, got %+v", deleted)
		}

		added := Reduce(before, TrackAdded{PlaylistID: 2, Track: models.Track{ID: musicNo(12), Title: "C"}})
		if len(before.Playlists[1].Tracks) != 0 || len(added.Playlists[1].Tracks) != 1 {
			t.Error("expected track added only in the new state")
		}

		removed := Reduce(before, TrackRemoved{PlaylistID: 1, MusicID: 10})
		if len(before.Playlists[0].Tracks) != 2 || before.Playlists[0].Tracks[0].Title != "A" {
			t.Errorf("expected input tracks untouched, got %+v", before.Playlists[0].Tracks)
		}
		if len(removed.Playlists[0].Tracks) != 1 || removed.Playlists[0].Tracks[0].Title != "B" {
			t.Errorf("expected only B left, got %+v", removed.Playlists[0].Tracks)
		}
	})

	t.Run("Search", func(t *testing.T) {
		s := Reduce(signedInState(), SearchStarted{Query: "love"})
		if !s.Searching || s.View != ViewSearch {
			t.Errorf("expected searching on search view, got %+v", s)
		}

		stale := Reduce(s, SearchFinished{Query: "lo", Tracks: []models.Track{{Title: "old"}}})
		if !stale.Searching || len(stale.Results) != 0 {
			t.Error("expected stale results to be ignored")
		}

		done := Reduce(s, SearchFinished{Query: "love", Tracks: []models.Track{{Title: "Lovesick"}}})
		if done.Searching || len(done.Results) != 1 {
			t.Errorf("expected one result, got %+v", done.Results)
		}

		failed := Reduce(s, SearchFinished{Query: "love", Message: "boom"})
		if failed.Toast == nil || !failed.Toast.Error {
			t.Error("expected error toast")
		}
	})

	t.Run("Cart", func(t *testing.T) {
		track := models.Track{ID: musicNo(10), Title: "A"}
		s := Reduce(signedInState(), AddToCart{Track: track})
		s = Reduce(s, AddToCart{Track: track})
		if len(s.Cart) != 1 {
			t.Fatalf("expected deduplicated cart, got %d", len(s.Cart))
		}

		before := s
		s = Reduce(s, RemoveFromCart{MusicID: 10})
		if len(s.Cart) != 0 || len(before.Cart) != 1 {
			t.Errorf("expected removal only in new state, got %d / %d", len(s.Cart), len(before.Cart))
		}

		s = Reduce(Reduce(s, AddToCart{Track: track}), ClearCart{})
		if len(s.Cart) != 0 {
			t.Error("expected empty cart")
		}
	})

	t.Run("Auth Views", func(t *testing.T) {
		s := Reduce(Initial(), BootstrapFinished{})
		s = Reduce(s, SwitchAuthView{View: AuthRegister})
		if s.AuthView != AuthRegister {
			t.Fatal("expected register view")
		}
		s = Reduce(s, RegisterSucceeded{Message: "welcome"})
		if s.AuthView != AuthLogin || s.Toast == nil || s.Toast.Error {
			t.Errorf("expected login view with info toast, got %+v", s)
		}
	})

	t.Run("LoggedOut Resets", func(t *testing.T) {
		s := Reduce(Reduce(signedInState(), AddToCart{Track: models.Track{Title: "x"}}), LoggedOut{})
		if s.Screen != ScreenAuth || s.Authenticated() || len(s.Playlists) != 0 || len(s.Cart) != 0 {
			t.Errorf("expected a clean auth screen, got %+v", s)
		}
	})

	t.Run("Toast", func(t *testing.T) {
		s := Reduce(Initial(), ShowToast{Text: "hi"})
		if s.Toast == nil || s.Toast.Text != "hi" {
			t.Fatal("expected toast")
		}
		if s = Reduce(s, ClearToast{}); s.Toast != nil {
			t.Error("expected toast cleared")
		}
	})
}
