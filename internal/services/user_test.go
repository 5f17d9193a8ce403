package services

import (
	"context"
	"testing"

	"github.com/desertthunder/tunelist/internal/shared"
	tu "github.com/desertthunder/tunelist/internal/testing"
)

func TestUserGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("Profile", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		users := NewUserGateway(NewClient(ClientOpts{BaseURL: api.URL(), Credentials: tu.SignedIn(t, api.Token)}))

		res := users.Profile(ctx, 1)
		if !res.Success || res.Value().Nickname != "tester" || res.Value().Email != "tester@example.com" {
			t.Errorf("unexpected profile %+v", res)
		}
	})

	t.Run("UpdateNickname", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		store := tu.SignedIn(t, api.Token)
		users := NewUserGateway(NewClient(ClientOpts{BaseURL: api.URL(), Credentials: store}))

		if res := users.UpdateNickname(ctx, 1, "  "); res.Success || res.Message != shared.MsgNicknameRequired {
			t.Errorf("expected validation failure, got %+v", res)
		}
		if n := len(api.Requests()); n != 0 {
			t.Errorf("expected no requests for blank nickname, got %d", n)
		}

		if res := users.UpdateNickname(ctx, 1, "dj"); !res.Success {
			t.Fatalf("expected update to succeed, got %+v", res)
		}
		if got := users.Profile(ctx, 1).Value().Nickname; got != "dj" {
			t.Errorf("expected new nickname, got %s", got)
		}

		stored, _ := store.Read(ctx)
		if stored.DisplayName != "dj" || stored.Token != api.Token {
			t.Errorf("expected stored display name to follow, got %+v", stored)
		}
	})

	t.Run("DeleteAccount", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		store := tu.SignedIn(t, api.Token)
		users := NewUserGateway(NewClient(ClientOpts{BaseURL: api.URL(), Credentials: store}))

		if res := users.DeleteAccount(ctx, 1); !res.Success {
			t.Fatalf("expected delete to succeed, got %+v", res)
		}
		if _, ok := store.Read(ctx); ok {
			t.Error("expected credentials cleared after account deletion")
		}
	})

	t.Run("Stats", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		users := NewUserGateway(NewClient(ClientOpts{BaseURL: api.URL(), Credentials: tu.SignedIn(t, api.Token)}))

		stats := users.Stats(ctx, 1).Value()
		if len(stats.Genres) != 2 || stats.Genres[0].Name != "K-Pop" {
			t.Errorf("unexpected genres %+v", stats.Genres)
		}
		if stats.Features.Energy != 70 {
			t.Errorf("unexpected features %+v", stats.Features)
		}
	})
}
