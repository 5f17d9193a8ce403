// Package repositories implements SQLite persistence for the client's local state.
//
// Key Implementations:
//   - [CredentialRepository] : the persisted session (token, user_no, nickname) as a key/value table
//   - [MemoryCredentials] : the same contract held in process memory
//   - [TrackRepository] : tracks seen in remote results, keyed by music_no, for offline search
//   - [TrackCacheAdapter] : feeds aggregated tracks into the [TrackRepository]
//
// Reading credentials never fails loudly: a missing table, closed database or malformed row reads as "no session".
package repositories
