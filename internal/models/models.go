package models

import (
	"time"

	"github.com/mnfaaiiq/soniq/internal/shared"
)

// Model defines the base interface for locally persisted entities.
type Model interface {
	ID() string      // ID returns the unique identifier for this model
	Validate() error // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for local data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Song represents a track record fetched from the backend.
//
// SongPath and ImagePath are asset paths within the storage buckets, not URLs.
// Either may be empty; an empty path resolves to no URL, which is a normal state.
type Song struct {
	SongID    string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	SongPath  string    `json:"song_path"`
	ImagePath string    `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
}

// UserProfile represents a per-identity profile record. At most one exists per identity.
type UserProfile struct {
	UserID    string `json:"id"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// SubscriptionStatus enumerates the billing states a subscription can be in.
type SubscriptionStatus string

const (
	StatusTrialing          SubscriptionStatus = "trialing"
	StatusActive            SubscriptionStatus = "active"
	StatusCanceled          SubscriptionStatus = "canceled"
	StatusIncomplete        SubscriptionStatus = "incomplete"
	StatusIncompleteExpired SubscriptionStatus = "incomplete_expired"
	StatusPastDue           SubscriptionStatus = "past_due"
	StatusUnpaid            SubscriptionStatus = "unpaid"
)

// CurrentStatuses are the statuses under which a subscription counts as current.
var CurrentStatuses = []SubscriptionStatus{StatusTrialing, StatusActive}

// Product represents a purchasable product attached to a price.
type Product struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
}

// Price represents a price tier with its nested product.
type Price struct {
	PriceID    string   `json:"id"`
	ProductID  string   `json:"product_id"`
	Currency   string   `json:"currency"`
	UnitAmount int64    `json:"unit_amount"`
	Interval   string   `json:"interval"`
	Product    *Product `json:"products"`
}

// Subscription represents a billing record for an identity with its nested price expansion.
type Subscription struct {
	SubscriptionID string             `json:"id"`
	UserID         string             `json:"user_id"`
	Status         SubscriptionStatus `json:"status"`
	PriceID        string             `json:"price_id"`
	Price          *Price             `json:"prices"`
}

// Current reports whether the subscription is trialing or active.
func (s *Subscription) Current() bool {
	for _, status := range CurrentStatuses {
		if s.Status == status {
			return true
		}
	}
	return false
}

// User is the authenticated user supplied by the identity collaborator.
// Opaque to the core beyond its identifier.
type User struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// Identity bundles the access token and user from the identity collaborator.
// The zero value means no identity is present.
type Identity struct {
	AccessToken string
	User        *User
}

// Present reports whether an authenticated user is attached.
func (i Identity) Present() bool {
	return i.User != nil
}

// PlaybackSession holds the client-side playback state persisted between runs.
type PlaybackSession struct {
	SessionID    string    `json:"id"`
	ActiveSongID string    `json:"active_song_id"`
	Queue        []string  `json:"queue"`
	Volume       float64   `json:"volume"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewPlaybackSession creates an empty session with a generated id and the given starting volume.
func NewPlaybackSession(volume float64) *PlaybackSession {
	now := time.Now()
	return &PlaybackSession{
		SessionID: shared.GenerateID(),
		Volume:    volume,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *PlaybackSession) ID() string { return s.SessionID }

func (s *PlaybackSession) Validate() error {
	if s.SessionID == "" {
		return shared.ErrInvalidInput
	}
	if s.Volume < 0 || s.Volume > 1 {
		return shared.ErrInvalidArgument
	}
	return nil
}

// CachedSong is a locally cached copy of a backend Song record.
type CachedSong struct {
	Song
	CachedAt time.Time `json:"cached_at"`
}

func (c *CachedSong) ID() string { return c.SongID }

func (c *CachedSong) Validate() error {
	if c.SongID == "" || c.Title == "" {
		return shared.ErrInvalidInput
	}
	return nil
}

// Expired reports whether the cache entry is older than ttl at the given instant.
func (c *CachedSong) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.CachedAt) > ttl
}
