package tasks

import (
	"fmt"

	"github.com/mnfaaiiq/soniq/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchCatalog Phase = iota
	CacheSongs
	ExportLibrary
)

func (p Phase) String() string {
	switch p {
	case FetchCatalog:
		return "fetch_catalog"
	case CacheSongs:
		return "cache_songs"
	case ExportLibrary:
		return "export_library"
	default:
		return ""
	}
}

func fetchCatalogUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    1,
		Total:   1,
		Message: "Fetching song catalog...",
	}
}

func foundCatalogUpdate(count int, songs []models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d songs", count),
		Data:    songs,
	}
}

func cachedSongUpdate(step, total int, song models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s - %s", step, total, song.Author, song.Title),
	}
}

func cacheFailedUpdate(step, total int, song models.Song, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, song.Title, err),
	}
}

func exportingUpdate(format string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportLibrary,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Exporting %d songs as %s...", count, format),
	}
}

func exportCompletedUpdate(filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportLibrary,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("✓ Export complete (%d files)", filesCount),
	}
}
