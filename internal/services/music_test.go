package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/shared"
	tu "github.com/desertthunder/tunelist/internal/testing"
)

type countingMusic struct {
	calls int
	fail  bool
}

func (c *countingMusic) result() models.Result[[]models.Track] {
	c.calls++
	if c.fail {
		return models.Fail[[]models.Track]("down")
	}
	return models.Ok([]models.Track{{ID: musicNo(1), Title: "Ditto"}})
}

func (c *countingMusic) Search(context.Context, string) models.Result[[]models.Track] { return c.result() }
func (c *countingMusic) All(context.Context) models.Result[[]models.Track]            { return c.result() }
func (c *countingMusic) Top50(context.Context) models.Result[[]models.Track]          { return c.result() }

func TestMusicGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("Search", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		api.AddCatalog(
			models.Track{ID: musicNo(1), Title: "Ditto", Artist: "NewJeans"},
			models.Track{ID: musicNo(2), Title: "Blueming", Artist: "IU"},
		)
		music := NewMusicGateway(NewClient(ClientOpts{BaseURL: api.URL(), Credentials: tu.SignedIn(t, api.Token)}))

		res := music.Search(ctx, "newjeans")
		if !res.Success || len(res.Value()) != 1 || res.Value()[0].Title != "Ditto" {
			t.Errorf("unexpected search result %+v", res)
		}
	})

	t.Run("Search Escapes Query", func(t *testing.T) {
		var raw string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw = r.URL.RawQuery
			envelope(w, http.StatusOK, `{"success":true,"data":[]}`)
		}))
		defer server.Close()

		NewMusicGateway(NewClient(ClientOpts{BaseURL: server.URL})).Search(ctx, "rock & roll")
		if raw != "q=rock+%26+roll" {
			t.Errorf("expected escaped query, got %s", raw)
		}
	})

	t.Run("Empty Query Skips Network", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		music := NewMusicGateway(NewClient(ClientOpts{BaseURL: api.URL()}))

		if res := music.Search(ctx, "  "); res.Success || res.Message != shared.MsgQueryRequired {
			t.Errorf("expected validation failure, got %+v", res)
		}
		if n := len(api.Requests()); n != 0 {
			t.Errorf("expected no requests, got %d", n)
		}
	})

	t.Run("All And Top50", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		for i := range 60 {
			api.AddCatalog(models.Track{ID: musicNo(int64(i + 1)), Title: "Song"})
		}
		music := NewMusicGateway(NewClient(ClientOpts{BaseURL: api.URL(), Credentials: tu.SignedIn(t, api.Token)}))

		if n := len(music.All(ctx).Value()); n != 60 {
			t.Errorf("expected 60 tracks, got %d", n)
		}
		if n := len(music.Top50(ctx).Value()); n != 50 {
			t.Errorf("expected 50 tracks, got %d", n)
		}
	})

	t.Run("Unauthenticated Reaches Server", func(t *testing.T) {
		api := tu.NewFakeAPI(t)
		music := NewMusicGateway(NewClient(ClientOpts{BaseURL: api.URL()}))

		if res := music.All(ctx); res.Success || res.Message != "invalid token" {
			t.Errorf("expected server rejection, got %+v", res)
		}
	})
}

func TestCachedMusic(t *testing.T) {
	ctx := context.Background()

	t.Run("Caches Successful Results", func(t *testing.T) {
		next := &countingMusic{}
		music := NewCachedMusic(next, time.Minute)

		music.Search(ctx, "Ditto")
		music.Search(ctx, " ditto ")
		music.All(ctx)
		music.All(ctx)
		music.Top50(ctx)

		if next.calls != 3 {
			t.Errorf("expected 3 upstream calls, got %d", next.calls)
		}
	})

	t.Run("Does Not Cache Failures", func(t *testing.T) {
		next := &countingMusic{fail: true}
		music := NewCachedMusic(next, time.Minute)

		music.All(ctx)
		music.All(ctx)

		if next.calls != 2 {
			t.Errorf("expected failures to reach upstream each time, got %d", next.calls)
		}
	})

	t.Run("Flush", func(t *testing.T) {
		next := &countingMusic{}
		music := NewCachedMusic(next, time.Minute).(*CachedMusic)

		music.All(ctx)
		music.Flush()
		music.All(ctx)

		if next.calls != 2 {
			t.Errorf("expected flush to drop entries, got %d calls", next.calls)
		}
	})

	t.Run("Zero TTL Disables", func(t *testing.T) {
		next := &countingMusic{}
		if music := NewCachedMusic(next, 0); music != MusicService(next) {
			t.Error("expected the undecorated service")
		}
	})
}
