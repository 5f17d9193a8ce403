// Package services implements the gateways to the remote playlist API.
//
// # Client
//
// Every gateway shares one [Client], which attaches the bearer token from the
// [models.CredentialStore] when present, stamps an X-Request-ID, and decodes the
// uniform [models.Result] envelope. Requests are never retried.
//
// Transport failures (dial errors, timeouts, unreadable or non-JSON bodies) never
// surface as Go errors: they become a failed Result carrying the localized generic
// message from [shared.Messages]. A JSON envelope with a non-2xx status is returned
// as the server sent it, with Success forced to false.
//
// # Gateways
//
//   - [AuthGateway] : verify, login, register, logout
//   - [MusicGateway] : search, full catalog, top 50 ([CachedMusic] adds a TTL cache)
//   - [PlaylistGateway] : playlist CRUD and track membership
//   - [UserGateway] : profile, nickname, account deletion, listening stats
//
// # Validation
//
// Blank titles, blank queries, blank nicknames, malformed credentials and tracks
// without a persisted id are rejected before any request is sent.
package services
