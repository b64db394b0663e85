// Package models defines domain entities for the soniq playback core.
//
// The package contains two categories of types:
//
// 1. Backend records: read-only rows fetched from the hosted backend
//   - [Song] : Track metadata with optional stored-asset paths
//   - [UserProfile] : Per-identity profile record
//   - [Subscription] : Billing record with nested [Price] and [Product]
//
// 2. Client-side state: values owned by this process
//   - [Identity] : Access token plus the authenticated user, supplied externally
//   - [PlaybackSession] : Active song id, ordered queue, and volume
//
// Backend records are created and mutated only by the backend; the core
// treats them as immutable once fetched. The Repository[T] interface
// defines the persistence contract for locally cached entities.
package models
