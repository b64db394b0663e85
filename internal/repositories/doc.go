// Package repositories implements SQLite persistence for client-side playback state.
//
// Key Implementations:
//   - [SessionRepository] : Persists the playback session (active song id, queue order, volume) across runs
//   - [SongCacheRepository] : Local cache of backend song records with TTL-based expiry
//
// The cache stores asset paths rather than derived URLs, so a stale URL
// can never outlive the record it was derived from. Cache misses and
// expired entries read as absence, not errors.
package repositories
