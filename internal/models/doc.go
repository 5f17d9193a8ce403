// Package models defines the entities exchanged with the remote playlist API and the local credential store.
//
// The package contains three categories of types:
//
// 1. Session types: what the client knows about the signed-in user
//   - [Session] : bearer token plus [Identity]
//   - [StoredCredentials] : the serialized form kept by a [CredentialStore]
//
// 2. Wire payloads: JSON bodies returned inside a [Result] envelope
//   - [Playlist], [Track], [TrackList] : playlists and their songs
//   - [Claims], [Login], [Profile], [Stats] : auth and user endpoints
//
// 3. The [Result] envelope itself, shared by every gateway call.
//
// JSON field names follow the remote API (playlist_no, music_no, music_items, ...).
package models
