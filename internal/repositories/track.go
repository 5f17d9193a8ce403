package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/shared"
)

// TrackRepository caches remote tracks keyed by their persisted id (music_no).
//
// Only persisted tracks can be cached; the cache backs offline search.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new TrackRepository with the given database connection
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Upsert inserts the track or refreshes its metadata when the music_no already exists.
func (r *TrackRepository) Upsert(ctx context.Context, track models.Track) error {
	if !track.Persisted() {
		return fmt.Errorf("%w: %s", shared.ErrTrackNotPersisted, track.Title)
	}
	if strings.TrimSpace(track.Title) == "" {
		return fmt.Errorf("%w: track title is empty", shared.ErrInvalidInput)
	}

	query := `
		INSERT INTO tracks (id, music_no, title, artist, album_image_url, duration_ms, track_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(music_no) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			album_image_url = excluded.album_image_url,
			duration_ms = excluded.duration_ms,
			track_key = excluded.track_key,
			updated_at = excluded.updated_at
	`

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		shared.GenerateID(),
		*track.ID,
		track.Title,
		track.Artist,
		track.AlbumImageURL,
		track.DurationMs,
		shared.NormalizeTrackKey(track.Title, track.Artist),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert track: %w", err)
	}

	return nil
}

// Get retrieves a cached track by its remote id.
func (r *TrackRepository) Get(ctx context.Context, musicNo int64) (*models.Track, error) {
	query := `
		SELECT music_no, title, artist, album_image_url, duration_ms
		FROM tracks
		WHERE music_no = ?
	`

	track, err := scanTrack(r.db.QueryRowContext(ctx, query, musicNo))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", shared.ErrTrackNotFound, musicNo)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}
	return track, nil
}

// Search returns cached tracks whose title or artist contains term, ordered by title.
func (r *TrackRepository) Search(ctx context.Context, term string, limit int) ([]models.Track, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: empty search term", shared.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT music_no, title, artist, album_image_url, duration_ms
		FROM tracks
		WHERE title LIKE ? ESCAPE '\' OR artist LIKE ? ESCAPE '\'
		ORDER BY title ASC, music_no ASC
		LIMIT ?
	`

	pattern := "%" + escapeLike(term) + "%"
	rows, err := r.db.QueryContext(ctx, query, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	tracks := []models.Track{}
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, *track)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

// Count returns the number of cached tracks.
func (r *TrackRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tracks").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrack(s scanner) (*models.Track, error) {
	var (
		musicNo int64
		track   models.Track
	)
	if err := s.Scan(&musicNo, &track.Title, &track.Artist, &track.AlbumImageURL, &track.DurationMs); err != nil {
		return nil, err
	}
	track.ID = &musicNo
	return &track, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
