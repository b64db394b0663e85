package player

import "github.com/mnfaaiiq/soniq/internal/models"

// View is a renderable playback surface for one media source.
//
// Key identifies the playback instance: two views with different keys are
// distinct instances, so consumers must tear down and recreate their
// playback state when the key changes instead of patching in place.
type View struct {
	Key      string
	ActiveID string
	Song     models.Song
	MediaURL string
	ImageURL string
}

// BuildView applies the render gate: it returns nil unless the active id,
// the song record, and the media URL are all present. A nil view means
// render nothing, a quiet state rather than an error.
//
// A missing image URL never gates; it is replaced with the placeholder.
func BuildView(activeID string, media ResolvedMedia, placeholder string) *View {
	if activeID == "" || media.Song == nil || media.MediaURL == "" {
		return nil
	}

	imageURL := media.ImageURL
	if imageURL == "" {
		imageURL = placeholder
	}

	return &View{
		Key:      media.MediaURL,
		ActiveID: activeID,
		Song:     *media.Song,
		MediaURL: media.MediaURL,
		ImageURL: imageURL,
	}
}
