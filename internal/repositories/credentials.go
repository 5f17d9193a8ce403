package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/desertthunder/tunelist/internal/models"
)

// Well-known credential keys.
const (
	KeyToken    = "token"
	KeyUserNo   = "user_no"
	KeyNickname = "nickname"
)

var (
	_ models.CredentialStore = (*CredentialRepository)(nil)
	_ models.CredentialStore = (*MemoryCredentials)(nil)
)

// CredentialRepository implements [models.CredentialStore] on the credentials key/value table.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new CredentialRepository with the given database connection
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Save replaces the stored token and identity fields in one transaction.
func (r *CredentialRepository) Save(ctx context.Context, token string, identity models.Identity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO credentials (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	now := time.Now()
	values := map[string]string{
		KeyToken:    token,
		KeyUserNo:   strconv.FormatInt(identity.ID, 10),
		KeyNickname: identity.DisplayName,
	}
	for key, value := range values {
		if _, err := tx.ExecContext(ctx, query, key, value, now); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit credentials: %w", err)
	}

	return nil
}

// Read returns the stored credentials. Any storage failure reads as "no session".
func (r *CredentialRepository) Read(ctx context.Context) (models.StoredCredentials, bool) {
	var creds models.StoredCredentials
	if r == nil || r.db == nil {
		return creds, false
	}

	rows, err := r.db.QueryContext(ctx, "SELECT key, value FROM credentials")
	if err != nil {
		return creds, false
	}
	defer rows.Close()

	values := make(map[string]string, 3)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.StoredCredentials{}, false
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.StoredCredentials{}, false
	}

	return decodeCredentials(values)
}

// Clear removes every stored credential.
func (r *CredentialRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM credentials"); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// MemoryCredentials is a process-local [models.CredentialStore].
type MemoryCredentials struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryCredentials returns an empty in-memory store.
func NewMemoryCredentials() *MemoryCredentials {
	return &MemoryCredentials{values: map[string]string{}}
}

func (m *MemoryCredentials) Save(_ context.Context, token string, identity models.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = map[string]string{
		KeyToken:    token,
		KeyUserNo:   strconv.FormatInt(identity.ID, 10),
		KeyNickname: identity.DisplayName,
	}
	return nil
}

func (m *MemoryCredentials) Read(_ context.Context) (models.StoredCredentials, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return decodeCredentials(m.values)
}

func (m *MemoryCredentials) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = map[string]string{}
	return nil
}

// decodeCredentials requires a non-empty token; a malformed user_no reads as 0.
func decodeCredentials(values map[string]string) (models.StoredCredentials, bool) {
	token := values[KeyToken]
	if token == "" {
		return models.StoredCredentials{}, false
	}

	userID, err := strconv.ParseInt(values[KeyUserNo], 10, 64)
	if err != nil {
		userID = 0
	}

	return models.StoredCredentials{
		Token:       token,
		UserID:      userID,
		DisplayName: values[KeyNickname],
	}, true
}
