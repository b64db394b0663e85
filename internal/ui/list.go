package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/mnfaaiiq/soniq/internal/models"
)

var _ list.Item = songItem{}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	if i.song.Author == "" {
		return "Unknown artist"
	}
	return i.song.Author
}
