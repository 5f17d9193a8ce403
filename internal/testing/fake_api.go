package testing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/tunelist/internal/models"
)

// Request is one call recorded by [FakeAPI].
type Request struct {
	Method        string
	Path          string
	Authorization string
}

type account struct {
	id       int64
	password string
	nickname string
}

// FakeAPI is an in-memory playlist service served over httptest.
//
// Every route except login and register requires "Bearer " + Token.
type FakeAPI struct {
	Server *httptest.Server

	Token    string
	Role     models.Role
	UserID   int64
	Nickname string

	mu         sync.Mutex
	accounts   map[string]account
	playlists  []models.Playlist
	catalog    []models.Track
	failTracks map[int64]bool
	delays     map[int64]time.Duration
	requests   []Request
	nextID     int64
}

// NewFakeAPI starts a fake service signed in as user 1 with token "test-token".
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		Token:      "test-token",
		Role:       models.RoleMember,
		UserID:     1,
		Nickname:   "tester",
		accounts:   map[string]account{"tester@example.com": {id: 1, password: "secret", nickname: "tester"}},
		failTracks: map[int64]bool{},
		delays:     map[int64]time.Duration{},
		nextID:     100,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/verify", f.authed(f.verify))
	mux.HandleFunc("POST /auth/login", f.login)
	mux.HandleFunc("POST /auth/register", f.register)
	mux.HandleFunc("POST /auth/logout", f.authed(f.logout))
	mux.HandleFunc("GET /music", f.authed(f.allMusic))
	mux.HandleFunc("GET /music/top50", f.authed(f.top50))
	mux.HandleFunc("GET /music/search", f.authed(f.search))
	mux.HandleFunc("GET /playlist/{a}/{b}", f.authed(f.nested))
	mux.HandleFunc("POST /playlist", f.authed(f.create))
	mux.HandleFunc("GET /playlist/{id}", f.authed(f.get))
	mux.HandleFunc("PUT /playlist/{id}", f.authed(f.update))
	mux.HandleFunc("DELETE /playlist/{id}", f.authed(f.remove))
	mux.HandleFunc("POST /playlist/{id}/music", f.authed(f.addTrack))
	mux.HandleFunc("DELETE /playlist/{id}/music/{music}", f.authed(f.removeTrack))
	mux.HandleFunc("GET /users/{id}/profile", f.authed(f.profile))
	mux.HandleFunc("PUT /users/{id}/profile", f.authed(f.updateProfile))
	mux.HandleFunc("DELETE /users/{id}", f.authed(f.deleteUser))
	mux.HandleFunc("GET /users/{id}/stats", f.authed(f.stats))

	f.Server = httptest.NewServer(f.record(mux))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the fake service.
func (f *FakeAPI) URL() string { return f.Server.URL }

// AddPlaylist seeds a playlist owned by userID and returns its id.
func (f *FakeAPI) AddPlaylist(userID int64, title string, tracks ...models.Track) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	f.playlists = append(f.playlists, models.Playlist{
		ID:        f.nextID,
		UserID:    userID,
		Title:     title,
		CreatedAt: models.Timestamp{Time: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		Tracks:    append([]models.Track{}, tracks...),
	})
	return f.nextID
}

// AddCatalog seeds the music catalog.
func (f *FakeAPI) AddCatalog(tracks ...models.Track) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalog = append(f.catalog, tracks...)
}

// FailTracks makes GET /playlist/{id}/music fail for playlistID.
func (f *FakeAPI) FailTracks(playlistID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failTracks[playlistID] = true
}

// DelayTracks holds GET /playlist/{id}/music for playlistID by d.
func (f *FakeAPI) DelayTracks(playlistID int64, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delays[playlistID] = d
}

// Requests returns a copy of every recorded request.
func (f *FakeAPI) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request{}, f.requests...)
}

// Count returns how many recorded requests had the given path prefix.
func (f *FakeAPI) Count(prefix string) int {
	n := 0
	for _, r := range f.Requests() {
		if strings.HasPrefix(r.Path, prefix) {
			n++
		}
	}
	return n
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, Request{Method: r.Method, Path: r.URL.Path, Authorization: r.Header.Get("Authorization")})
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.Token {
			reply(w, http.StatusUnauthorized, models.Fail[models.Empty]("invalid token"))
			return
		}
		h(w, r)
	}
}

func reply[T any](w http.ResponseWriter, status int, res models.Result[T]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(res)
}

func pathID(r *http.Request, name string) int64 {
	n, _ := strconv.ParseInt(r.PathValue(name), 10, 64)
	return n
}

func (f *FakeAPI) find(id int64) int {
	for i, p := range f.playlists {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeAPI) verify(w http.ResponseWriter, r *http.Request) {
	reply(w, http.StatusOK, models.Ok(models.Claims{Role: f.Role}))
}

func (f *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		reply(w, http.StatusBadRequest, models.Fail[models.Empty]("bad body"))
		return
	}

	f.mu.Lock()
	acct, ok := f.accounts[body.Email]
	f.mu.Unlock()
	if !ok || acct.password != body.Password {
		reply(w, http.StatusUnauthorized, models.Fail[models.Empty]("wrong email or password"))
		return
	}

	reply(w, http.StatusOK, models.Ok(models.Login{Token: f.Token, UserID: acct.id, Nickname: acct.nickname, Role: f.Role}))
}

func (f *FakeAPI) register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Nickname string `json:"nickname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		reply(w, http.StatusBadRequest, models.Fail[models.Empty]("bad body"))
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[body.Email]; exists {
		reply(w, http.StatusConflict, models.Fail[models.Empty]("email already registered"))
		return
	}
	f.nextID++
	f.accounts[body.Email] = account{id: f.nextID, password: body.Password, nickname: body.Nickname}
	reply(w, http.StatusCreated, models.Result[models.Empty]{Success: true, Message: "registered"})
}

func (f *FakeAPI) logout(w http.ResponseWriter, r *http.Request) {
	reply(w, http.StatusOK, models.Result[models.Empty]{Success: true})
}

func (f *FakeAPI) allMusic(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reply(w, http.StatusOK, models.Ok(append([]models.Track{}, f.catalog...)))
}

func (f *FakeAPI) top50(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := min(len(f.catalog), 50)
	reply(w, http.StatusOK, models.Ok(append([]models.Track{}, f.catalog[:n]...)))
}

func (f *FakeAPI) search(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))

	f.mu.Lock()
	defer f.mu.Unlock()
	found := []models.Track{}
	for _, t := range f.catalog {
		if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Artist), q) {
			found = append(found, t)
		}
	}
	reply(w, http.StatusOK, models.Ok(found))
}

// nested serves /playlist/user/{id} and /playlist/{id}/music, which overlap as mux patterns.
func (f *FakeAPI) nested(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.PathValue("a") == "user":
		f.listForUser(w, pathID(r, "b"))
	case r.PathValue("b") == "music":
		f.listTracks(w, r, pathID(r, "a"))
	default:
		http.NotFound(w, r)
	}
}

func (f *FakeAPI) listForUser(w http.ResponseWriter, userID int64) {

	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Playlist{}
	for _, p := range f.playlists {
		if p.UserID == userID {
			p.Tracks = nil
			out = append(out, p)
		}
	}
	reply(w, http.StatusOK, models.Ok(out))
}

func (f *FakeAPI) get(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(pathID(r, "id"))
	if i < 0 {
		reply(w, http.StatusNotFound, models.Fail[models.Empty]("playlist not found"))
		return
	}
	reply(w, http.StatusOK, models.Ok(f.playlists[i]))
}

type playlistBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (f *FakeAPI) create(w http.ResponseWriter, r *http.Request) {
	var body playlistBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Title == "" {
		reply(w, http.StatusBadRequest, models.Fail[models.Empty]("title is required"))
		return
	}

	id := f.AddPlaylist(f.UserID, body.Title)
	f.mu.Lock()
	f.playlists[f.find(id)].Description = body.Content
	f.mu.Unlock()

	reply(w, http.StatusCreated, models.Ok(models.Created{ID: id}))
}

func (f *FakeAPI) update(w http.ResponseWriter, r *http.Request) {
	var body playlistBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Title == "" {
		reply(w, http.StatusBadRequest, models.Fail[models.Empty]("title is required"))
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(pathID(r, "id"))
	if i < 0 {
		reply(w, http.StatusNotFound, models.Fail[models.Empty]("playlist not found"))
		return
	}
	f.playlists[i].Title = body.Title
	f.playlists[i].Description = body.Content
	reply(w, http.StatusOK, models.Result[models.Empty]{Success: true})
}

func (f *FakeAPI) remove(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(pathID(r, "id"))
	if i < 0 {
		reply(w, http.StatusNotFound, models.Fail[models.Empty]("playlist not found"))
		return
	}
	f.playlists = append(f.playlists[:i], f.playlists[i+1:]...)
	reply(w, http.StatusOK, models.Result[models.Empty]{Success: true})
}

func (f *FakeAPI) listTracks(w http.ResponseWriter, r *http.Request, id int64) {

	f.mu.Lock()
	delay := f.delays[id]
	failing := f.failTracks[id]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	if failing {
		reply(w, http.StatusInternalServerError, models.Fail[models.Empty](fmt.Sprintf("tracks for %d unavailable", id)))
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(id)
	if i < 0 {
		reply(w, http.StatusNotFound, models.Fail[models.Empty]("playlist not found"))
		return
	}
	reply(w, http.StatusOK, models.Ok(models.TrackList{Tracks: append([]models.Track{}, f.playlists[i].Tracks...)}))
}

func (f *FakeAPI) addTrack(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MusicID int64 `json:"music_no"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		reply(w, http.StatusBadRequest, models.Fail[models.Empty]("bad body"))
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(pathID(r, "id"))
	if i < 0 {
		reply(w, http.StatusNotFound, models.Fail[models.Empty]("playlist not found"))
		return
	}

	track := models.Track{ID: &body.MusicID, Title: fmt.Sprintf("Track %d", body.MusicID)}
	for _, t := range f.catalog {
		if t.ID != nil && *t.ID == body.MusicID {
			track = t
		}
	}
	f.playlists[i].Tracks = append(f.playlists[i].Tracks, track)
	reply(w, http.StatusCreated, models.Ok(models.Membership{PlaylistID: f.playlists[i].ID, MusicID: body.MusicID}))
}

func (f *FakeAPI) removeTrack(w http.ResponseWriter, r *http.Request) {
	musicID := pathID(r, "music")

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(pathID(r, "id"))
	if i < 0 {
		reply(w, http.StatusNotFound, models.Fail[models.Empty]("playlist not found"))
		return
	}

	kept := f.playlists[i].Tracks[:0]
	for _, t := range f.playlists[i].Tracks {
		if t.ID == nil || *t.ID != musicID {
			kept = append(kept, t)
		}
	}
	f.playlists[i].Tracks = kept
	reply(w, http.StatusOK, models.Result[models.Empty]{Success: true})
}

func (f *FakeAPI) profile(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reply(w, http.StatusOK, models.Ok(models.Profile{
		UserID:   pathID(r, "id"),
		Email:    "tester@example.com",
		Nickname: f.Nickname,
	}))
}

func (f *FakeAPI) updateProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Nickname string `json:"nickname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Nickname == "" {
		reply(w, http.StatusBadRequest, models.Fail[models.Empty]("nickname is required"))
		return
	}
	f.mu.Lock()
	f.Nickname = body.Nickname
	f.mu.Unlock()
	reply(w, http.StatusOK, models.Result[models.Empty]{Success: true})
}

func (f *FakeAPI) deleteUser(w http.ResponseWriter, r *http.Request) {
	reply(w, http.StatusOK, models.Result[models.Empty]{Success: true, Message: "account deleted"})
}

func (f *FakeAPI) stats(w http.ResponseWriter, r *http.Request) {
	reply(w, http.StatusOK, models.Ok(models.Stats{
		Genres: []models.GenreShare{{Name: "K-Pop", Value: 60}, {Name: "Indie", Value: 40}},
		Weekly: []models.DayActivity{{Day: "Mon", Playlists: 1, Songs: 12}},
		Features: models.AudioFeatures{
			Energy: 70, Danceability: 65, Valence: 55, Acousticness: 20, Instrumentalness: 5,
		},
	}))
}
