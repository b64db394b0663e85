package ui

import (
	"github.com/mnfaaiiq/soniq/internal/models"
	"github.com/mnfaaiiq/soniq/internal/player"
)

// songsFetchedMsg carries the result of a catalog query.
type songsFetchedMsg struct {
	query string
	songs []models.Song
	err   error
}

// queryStabilizedMsg fires when the debounced search input settles on a value.
type queryStabilizedMsg string

// nowPlayingMsg carries the resolved playback view for the active song.
// The view is nil when the active song cannot be rendered.
type nowPlayingMsg struct {
	view *player.View
	err  error
}
