package services

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/shared"
	"github.com/patrickmn/go-cache"
)

// MusicGateway implements [MusicService] against the /music endpoints.
type MusicGateway struct {
	client *Client
}

// NewMusicGateway creates a [MusicGateway] on client.
func NewMusicGateway(client *Client) *MusicGateway {
	return &MusicGateway{client: client}
}

// Search calls GET /music/search?q=. A blank query fails without a request.
func (m *MusicGateway) Search(ctx context.Context, query string) models.Result[[]models.Track] {
	query = strings.TrimSpace(query)
	if query == "" {
		return fail[[]models.Track](m.client, shared.MsgQueryRequired)
	}
	return call[[]models.Track](ctx, m.client, http.MethodGet, "/music/search?q="+url.QueryEscape(query), nil)
}

// All calls GET /music.
func (m *MusicGateway) All(ctx context.Context) models.Result[[]models.Track] {
	return call[[]models.Track](ctx, m.client, http.MethodGet, "/music", nil)
}

// Top50 calls GET /music/top50.
func (m *MusicGateway) Top50(ctx context.Context) models.Result[[]models.Track] {
	return call[[]models.Track](ctx, m.client, http.MethodGet, "/music/top50", nil)
}

// CachedMusic decorates a [MusicService] with an in-memory TTL cache.
//
// Only successful results are stored, so a failed call is retried by the next caller.
type CachedMusic struct {
	next  MusicService
	cache *cache.Cache
}

// NewCachedMusic wraps next. A non-positive ttl disables caching.
func NewCachedMusic(next MusicService, ttl time.Duration) MusicService {
	if ttl <= 0 {
		return next
	}
	return &CachedMusic{next: next, cache: cache.New(ttl, 2*ttl)}
}

func (c *CachedMusic) Search(ctx context.Context, query string) models.Result[[]models.Track] {
	key := "search:" + strings.ToLower(strings.TrimSpace(query))
	return c.load(key, func() models.Result[[]models.Track] { return c.next.Search(ctx, query) })
}

func (c *CachedMusic) All(ctx context.Context) models.Result[[]models.Track] {
	return c.load("all", func() models.Result[[]models.Track] { return c.next.All(ctx) })
}

func (c *CachedMusic) Top50(ctx context.Context) models.Result[[]models.Track] {
	return c.load("top50", func() models.Result[[]models.Track] { return c.next.Top50(ctx) })
}

// Flush drops every cached entry.
func (c *CachedMusic) Flush() { c.cache.Flush() }

func (c *CachedMusic) load(key string, fetch func() models.Result[[]models.Track]) models.Result[[]models.Track] {
	if v, ok := c.cache.Get(key); ok {
		if res, ok := v.(models.Result[[]models.Track]); ok {
			return res
		}
	}

	res := fetch()
	if res.Success {
		c.cache.SetDefault(key, res)
	}
	return res
}
