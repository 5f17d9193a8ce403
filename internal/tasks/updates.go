package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	VerifySession Phase = iota
	FetchPlaylists
	FetchTracks
	CacheTracks
	Complete
)

func (p Phase) String() string {
	switch p {
	case VerifySession:
		return "verify_session"
	case FetchPlaylists:
		return "fetch_playlists"
	case FetchTracks:
		return "fetch_tracks"
	case CacheTracks:
		return "cache_tracks"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func verifySessionUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   VerifySession,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Verifying session for %s...", name),
	}
}

func fetchPlaylistsUpdate(userID int64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching playlists for user %d...", userID),
	}
}

func fetchTracksUpdate(step, total int, title string, ok bool) ProgressUpdate {
	mark := "✓"
	if !ok {
		mark = "✗"
	}
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s", step, total, mark, title),
	}
}

func cacheTracksUpdate(written int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Cached %d tracks", written),
		Data:    written,
	}
}

func completeUpdate(agg Aggregate) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    len(agg.Playlists),
		Total:   len(agg.Playlists),
		Message: fmt.Sprintf("Loaded %d playlists (%d without tracks)", len(agg.Playlists), len(agg.Failed)),
		Data:    agg,
	}
}
