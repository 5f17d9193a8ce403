package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/tasks"
)

func TestModel(t *testing.T) {
	ctx := context.Background()

	t.Run("Bootstrap Without Session Shows Auth", func(t *testing.T) {
		m := NewModel(ctx, ModelOpts{})
		m.Update(bootstrappedMsg(tasks.Bootstrap{State: tasks.Unauthenticated}, nil))
		if m.State().Screen != ScreenAuth {
			t.Errorf("expected auth screen, got %v", m.State().Screen)
		}
		if !m.email.Focused() {
			t.Error("expected email input to be focused")
		}
	})

	t.Run("Bootstrap Delivers Playlists", func(t *testing.T) {
		ch := make(chan tasks.Aggregate, 1)
		ch <- tasks.Aggregate{UserID: 1, Playlists: []models.Playlist{{ID: 1, Title: "Mix"}}}
		close(ch)

		m := NewModel(ctx, ModelOpts{})
		_, cmd := m.Update(bootstrappedMsg(tasks.Bootstrap{
			State:     tasks.Authenticated,
			Session:   &models.Session{Token: "t", Identity: models.Identity{ID: 1}},
			Playlists: ch,
		}, nil))
		if !m.State().Loading {
			t.Fatal("expected loading while playlists are pending")
		}
		if cmd == nil {
			t.Fatal("expected a command waiting for playlists")
		}

		msg := waitForPlaylists(ch)()
		if msg == nil {
			t.Fatal("expected playlists message")
		}
		m.Update(msg)
		if m.State().Loading || len(m.State().Playlists) != 1 {
			t.Errorf("expected one loaded playlist, got %+v", m.State())
		}
	})

	t.Run("Playlist Channel Closed Empty", func(t *testing.T) {
		ch := make(chan tasks.Aggregate)
		close(ch)
		if msg := waitForPlaylists(ch)(); msg != nil {
			t.Errorf("expected nil message, got %#v", msg)
		}
	})

	t.Run("Toast Expiry Ignores Replaced Toast", func(t *testing.T) {
		m := NewModel(ctx, ModelOpts{})
		m.Update(actionMsg{action: ShowToast{Text: "first"}})
		first := m.State().Toast
		m.Update(actionMsg{action: ShowToast{Text: "second"}})

		m.Update(toastExpiredMsg(first))
		if m.State().Toast == nil || m.State().Toast.Text != "second" {
			t.Errorf("expected second toast to survive, got %+v", m.State().Toast)
		}
		m.Update(toastExpiredMsg(m.State().Toast))
		if m.State().Toast != nil {
			t.Error("expected toast cleared")
		}
	})

	t.Run("Ctrl+C Quits", func(t *testing.T) {
		m := NewModel(ctx, ModelOpts{})
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})

	t.Run("View Renders Each Screen", func(t *testing.T) {
		m := NewModel(ctx, ModelOpts{Locale: "en"})
		if v := m.View(); v == "" {
			t.Error("expected checking view")
		}
		m.Update(actionMsg{action: BootstrapFinished{Boot: tasks.Bootstrap{
			State:   tasks.Authenticated,
			Session: &models.Session{Identity: models.Identity{ID: 1, DisplayName: "tester"}},
		}}})
		m.Update(actionMsg{action: PlaylistsLoaded{Aggregate: tasks.Aggregate{UserID: 1, Playlists: []models.Playlist{
			{ID: 1, Title: "Mix", Tracks: []models.Track{{Title: "A", DurationMs: 61000}}},
		}}}})
		m.Update(actionMsg{action: OpenDetail{ID: 1}})
		if v := m.View(); v == "" {
			t.Error("expected detail view")
		}
	})
}
