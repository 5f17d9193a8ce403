// package repositories provides the sqlite persistence behind the credential store and the track cache.
package repositories

import (
	"database/sql"

	"github.com/desertthunder/tunelist/internal/shared"
)

// Set bundles every repository over one database connection.
type Set struct {
	Credentials *CredentialRepository
	Tracks      *TrackRepository
}

// NewSet creates the repositories for db.
func NewSet(db *sql.DB) *Set {
	return &Set{
		Credentials: NewCredentialRepository(db),
		Tracks:      NewTrackRepository(db),
	}
}

// Open opens the configured database, applies migrations and returns the repositories with the db handle.
func Open(cfg shared.DatabaseConfig) (*Set, *sql.DB, error) {
	db, err := shared.OpenDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	return NewSet(db), db, nil
}
