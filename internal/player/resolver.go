package player

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mnfaaiiq/soniq/internal/models"
	"github.com/mnfaaiiq/soniq/internal/services"
	"github.com/mnfaaiiq/soniq/internal/shared"
)

// AssetResolver derives public URLs from stored asset paths.
// Implemented by [storage.BucketStorage].
type AssetResolver interface {
	SongURL(assetPath string) string
	ImageURL(assetPath string) string
}

// ResolvedMedia is the renderable state derived for one song.
// Empty fields mean "not yet resolvable", a normal non-error state.
type ResolvedMedia struct {
	Song     *models.Song
	MediaURL string
	ImageURL string
}

// Resolver resolves an active song id into its record and derived URLs.
type Resolver struct {
	lib    services.Library
	assets AssetResolver
	logger *log.Logger
}

// NewResolver creates a Resolver over the backend library and asset storage.
func NewResolver(lib services.Library, assets AssetResolver, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Resolver{
		lib:    lib,
		assets: assets,
		logger: shared.WithLogger(logger, "component", "resolver"),
	}
}

// Song retrieves the song record for an id. Returns (nil, nil) when the id
// is empty or no record exists.
func (r *Resolver) Song(ctx context.Context, id string) (*models.Song, error) {
	if id == "" {
		return nil, nil
	}
	return r.lib.SongByID(ctx, id)
}

// SongURL derives the playable media URL for a song, or "" when the song or
// its stored asset path is absent.
func (r *Resolver) SongURL(song *models.Song) string {
	if song == nil || song.SongPath == "" {
		return ""
	}
	return r.assets.SongURL(song.SongPath)
}

// ImageURL derives the display image URL for a song, or "" when the song or
// its image asset path is absent.
func (r *Resolver) ImageURL(song *models.Song) string {
	if song == nil || song.ImagePath == "" {
		return ""
	}
	return r.assets.ImageURL(song.ImagePath)
}

// Resolve composes the full pipeline for an id. Backend failures are
// returned; absence at any step produces empty fields instead.
func (r *Resolver) Resolve(ctx context.Context, id string) (ResolvedMedia, error) {
	song, err := r.Song(ctx, id)
	if err != nil {
		return ResolvedMedia{}, err
	}
	if song == nil {
		r.logger.Debug("song not resolvable", "id", id)
		return ResolvedMedia{}, nil
	}

	return ResolvedMedia{
		Song:     song,
		MediaURL: r.SongURL(song),
		ImageURL: r.ImageURL(song),
	}, nil
}
