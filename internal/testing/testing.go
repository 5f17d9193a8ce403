// package testing contains shared testing utilities: the [FakeAPI] backend, seeded
// credential stores, a migrated track cache and failing io/http doubles.
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/repositories"
	"github.com/desertthunder/tunelist/internal/shared"
)

// MusicNo returns a pointer to a persisted track id.
func MusicNo(n int64) *int64 { return &n }

// SignedIn returns an in-memory credential store holding token for user 1 ("tester").
func SignedIn(t *testing.T, token string) *repositories.MemoryCredentials {
	t.Helper()
	store := repositories.NewMemoryCredentials()
	if err := store.Save(context.Background(), token, models.Identity{ID: 1, DisplayName: "tester"}); err != nil {
		t.Fatalf("failed to seed credentials: %v", err)
	}
	return store
}

// TrackCache opens a migrated sqlite database under t.TempDir and returns its track
// repository. The database is closed when the test ends.
func TrackCache(t *testing.T) *repositories.TrackRepository {
	t.Helper()
	db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: filepath.Join(t.TempDir(), "tracks.db"), MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("failed to open track cache: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return repositories.NewTrackRepository(db)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter forwards the first maxWrites writes to target and fails after that.
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper answers every request with a fixed response or error and counts calls.
type MockRoundTripper struct {
	response *http.Response
	err      error
	calls    int
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.calls++
	return m.response, m.err
}

// Calls reports how many requests reached the round tripper.
func (m *MockRoundTripper) Calls() int { return m.calls }

// FCloser is a response body whose reads fail.
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
