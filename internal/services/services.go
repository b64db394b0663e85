package services

import (
	"context"

	"github.com/mnfaaiiq/soniq/internal/models"
)

// Library defines the read API the playback core needs from the backend.
//
// Lookups for a single record return (nil, nil) when the record is absent.
// Errors are reserved for transport and backend failures.
type Library interface {
	// SongByID retrieves a single song record. Returns (nil, nil) if no song has the id.
	SongByID(ctx context.Context, id string) (*models.Song, error)

	// SearchSongs retrieves songs whose title matches the query, newest first.
	// An empty query returns the full catalog.
	SearchSongs(ctx context.Context, title string) ([]models.Song, error)

	// SongsByUser retrieves the songs uploaded by the identity's user, newest first.
	SongsByUser(ctx context.Context, identity models.Identity) ([]models.Song, error)

	// ProfileByIdentity retrieves the profile record for the identity.
	// Returns (nil, nil) if the identity has no profile row.
	ProfileByIdentity(ctx context.Context, identity models.Identity) (*models.UserProfile, error)

	// CurrentSubscription retrieves the identity's subscription restricted to
	// trialing or active status, with prices and products embedded.
	// Returns (nil, nil) if no current subscription exists.
	CurrentSubscription(ctx context.Context, identity models.Identity) (*models.Subscription, error)

	// Name returns the name of the backend (e.g. "Supabase")
	Name() string
}
