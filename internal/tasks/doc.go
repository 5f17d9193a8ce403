// Package tasks orchestrates session startup and playlist aggregation with real-time progress reporting.
//
// # Session Bootstrap
//
// [Bootstrapper.Run] moves from [Checking] to [Authenticated] or [Unauthenticated] exactly once:
//
//  1. No stored token : [Unauthenticated], no network call
//  2. Token rejected or unverifiable : [Unauthenticated]
//     - stored credentials are cleared only on an explicit rejection, and only when ClearOnReject is set
//  3. Token valid : [Authenticated] with a Session built from the stored identity and the role claim
//     - the aggregation starts in the background and arrives on [Bootstrap.Playlists]
//
// # Playlist Aggregation
//
// [Aggregator.Load] lists the user's playlists, then fetches every track list concurrently
// through a [Group]. Outcomes are tagged per task, so one broken playlist only gets an empty
// track list; the merge is by index and keeps the listing order.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
// Updates use select with default to prevent blocking.
//
// # Track Caching
//
// The optional [TrackCacher] interface persists every track seen during aggregation
// (repositories.TrackCacheAdapter). Cache errors are logged and ignored.
package tasks
