// package models defines the data model for the playlist client
package models

import (
	"context"
	"encoding/json"
	"time"
)

// Role is the role claim attached to a verified token (role_no on the wire).
type Role int

const (
	RoleUnknown Role = 0
	RoleAdmin   Role = 1
	RoleMember  Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleMember:
		return "member"
	default:
		return "unknown"
	}
}

// Identity holds the minimal user fields kept alongside the token.
type Identity struct {
	ID          int64
	Role        Role
	DisplayName string
}

// Session is an authenticated user and the bearer token that proves it.
type Session struct {
	Token    string
	Identity Identity
}

// StoredCredentials is the serialized form of a [Session] as persisted by a [CredentialStore].
type StoredCredentials struct {
	Token       string
	UserID      int64
	DisplayName string
}

// CredentialStore persists an opaque session token and identity fields across runs.
//
// Read reports false when nothing is stored or the storage is unavailable.
type CredentialStore interface {
	Save(ctx context.Context, token string, identity Identity) error
	Read(ctx context.Context) (StoredCredentials, bool)
	Clear(ctx context.Context) error
}

// Track is a song as returned by the music and playlist endpoints.
//
// ID is nil until the track has been persisted by the remote service.
type Track struct {
	ID            *int64 `json:"music_no"`
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	AlbumImageURL string `json:"album_image_url"`
	DurationMs    int    `json:"duration_ms"`
}

// Persisted reports whether the track carries a remote id.
func (t Track) Persisted() bool { return t.ID != nil }

// Playlist is a user playlist. Tracks is populated by aggregation.
type Playlist struct {
	ID          int64     `json:"playlist_no"`
	UserID      int64     `json:"user_no,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"content"`
	CreatedAt   Timestamp `json:"created_at"`
	Tracks      []Track   `json:"music_items"`
}

// TrackList is the payload of GET /playlist/{id}/music.
type TrackList struct {
	Tracks []Track `json:"music_list"`
}

// Created is the payload of POST /playlist.
type Created struct {
	ID int64 `json:"playlist_no"`
}

// Membership is the payload of POST /playlist/{id}/music.
type Membership struct {
	PlaylistID int64 `json:"playlist_no"`
	MusicID    int64 `json:"music_no"`
}

// Claims is the payload of the token verification endpoint.
type Claims struct {
	Role Role `json:"role_no"`
}

// Login is the payload of a successful login.
type Login struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_no"`
	Nickname string `json:"nickname"`
	Role     Role   `json:"role_no"`
}

// Profile is the payload of GET /users/{id}/profile.
type Profile struct {
	UserID     int64     `json:"user_no"`
	Email      string    `json:"email"`
	Nickname   string    `json:"nickname"`
	ProfileURL *string   `json:"profile_url"`
	CreatedAt  Timestamp `json:"created_at"`
	UpdatedAt  Timestamp `json:"updated_at"`
}

type GenreShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type DayActivity struct {
	Day       string `json:"day"`
	Playlists int    `json:"playlists"`
	Songs     int    `json:"songs"`
}

type AudioFeatures struct {
	Energy           int `json:"energy"`
	Danceability     int `json:"danceability"`
	Valence          int `json:"valence"`
	Acousticness     int `json:"acousticness"`
	Instrumentalness int `json:"instrumentalness"`
}

// Stats is the payload of GET /users/{id}/stats.
type Stats struct {
	Genres   []GenreShare  `json:"genreDistribution"`
	Weekly   []DayActivity `json:"weeklyActivity"`
	Features AudioFeatures `json:"audioFeatures"`
}

// Timestamp decodes the loosely formatted dates the API emits.
//
// Unparseable or null values decode to the zero time instead of failing the whole payload.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123,
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, *raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}
