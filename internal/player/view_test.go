package player

import (
	"context"
	"testing"

	"github.com/mnfaaiiq/soniq/internal/models"
)

const placeholder = "/images/liked.png"

func TestBuildViewGate(t *testing.T) {
	song := &models.Song{SongID: "t1", Title: "Track One", SongPath: "a.mp3"}

	tc := []struct {
		name     string
		activeID string
		media    ResolvedMedia
		rendered bool
	}{
		{
			name:     "all present renders",
			activeID: "t1",
			media:    ResolvedMedia{Song: song, MediaURL: "https://store/a.mp3", ImageURL: "https://store/img/a.png"},
			rendered: true,
		},
		{
			name:     "missing image still renders",
			activeID: "t1",
			media:    ResolvedMedia{Song: song, MediaURL: "https://store/a.mp3"},
			rendered: true,
		},
		{
			name:     "no active id suppresses",
			activeID: "",
			media:    ResolvedMedia{Song: song, MediaURL: "https://store/a.mp3"},
			rendered: false,
		},
		{
			name:     "no song suppresses",
			activeID: "t1",
			media:    ResolvedMedia{MediaURL: "https://store/a.mp3"},
			rendered: false,
		},
		{
			name:     "no media URL suppresses",
			activeID: "t1",
			media:    ResolvedMedia{Song: song},
			rendered: false,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			view := BuildView(tt.activeID, tt.media, placeholder)
			if (view != nil) != tt.rendered {
				t.Errorf("BuildView() rendered = %v, want %v", view != nil, tt.rendered)
			}
		})
	}
}

func TestViewPlaceholderFallback(t *testing.T) {
	song := &models.Song{SongID: "t1", Title: "Track One", SongPath: "a.mp3"}
	view := BuildView("t1", ResolvedMedia{Song: song, MediaURL: "https://store/a.mp3"}, placeholder)

	if view == nil {
		t.Fatal("expected view to render")
	}
	if view.ImageURL != placeholder {
		t.Errorf("expected placeholder image, got %s", view.ImageURL)
	}
}

func TestViewKeyTracksMediaURL(t *testing.T) {
	// A changed media URL is a logically distinct playback source, so the
	// instance key must change to force recreation rather than patching.
	song := &models.Song{SongID: "t1", Title: "Track One", SongPath: "a.mp3"}

	first := BuildView("t1", ResolvedMedia{Song: song, MediaURL: "https://store/a.mp3"}, placeholder)
	second := BuildView("t1", ResolvedMedia{Song: song, MediaURL: "https://store/a-remastered.mp3"}, placeholder)

	if first == nil || second == nil {
		t.Fatal("expected both views to render")
	}
	if first.Key == second.Key {
		t.Error("expected distinct instance keys for distinct media URLs")
	}

	same := BuildView("t1", ResolvedMedia{Song: song, MediaURL: "https://store/a.mp3"}, placeholder)
	if first.Key != same.Key {
		t.Error("expected stable key for unchanged media URL")
	}
}

func TestResolveAndRenderEndToEnd(t *testing.T) {
	lib := &fakeLibrary{songs: map[string]*models.Song{
		"t1": {SongID: "t1", Title: "Track One", SongPath: "a.mp3"},
	}}
	r := NewResolver(lib, fakeAssets{}, nil)

	s := NewSession(1.0)
	s.SetQueue([]string{"t1"})
	s.SetActive("t1")

	media, err := r.Resolve(context.Background(), s.ActiveID())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if media.MediaURL != "https://store/a.mp3" {
		t.Fatalf("unexpected media URL %s", media.MediaURL)
	}
	if media.ImageURL != "" {
		t.Fatalf("expected no image URL, got %s", media.ImageURL)
	}

	view := BuildView(s.ActiveID(), media, placeholder)
	if view == nil {
		t.Fatal("expected player to render with media present and image absent")
	}
	if view.ImageURL != placeholder {
		t.Errorf("expected placeholder fallback, got %s", view.ImageURL)
	}
	if view.Key != "https://store/a.mp3" {
		t.Errorf("expected media URL as instance key, got %s", view.Key)
	}
}
