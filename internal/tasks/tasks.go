package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mnfaaiiq/soniq/internal/formatter"
	"github.com/mnfaaiiq/soniq/internal/models"
	"github.com/mnfaaiiq/soniq/internal/services"
	"github.com/mnfaaiiq/soniq/internal/shared"
	"golang.org/x/time/rate"
)

// SongCacheResult represents the result of caching a single song.
type SongCacheResult struct {
	Song  models.Song // Song that was cached
	Error error       // Error if the cache write failed
}

// WarmRunResult contains all data from a cache warm operation.
type WarmRunResult struct {
	TotalSongs  int               // Total songs fetched from the backend
	CachedCount int               // Number of songs cached successfully
	FailedCount int               // Number of failed cache writes
	Results     []SongCacheResult // Individual cache results
}

// ExportRunResult contains all data from a library export operation.
type ExportRunResult struct {
	Title           string   // Listing title used in exported documents
	TotalSongs      int      // Number of songs exported
	Format          string   // Export format used
	OutputDirectory string   // Directory holding the exported files
	Files           []string // Paths of all files written
	ManifestPath    string   // Path of the manifest file
}

// LibraryTasks defines long-running operations over the song catalog.
type LibraryTasks interface {
	// Warm prefetches the catalog matching query into the local song cache.
	Warm(ctx context.Context, progress chan<- ProgressUpdate, query string, opts WarmOpts) (*WarmRunResult, error)

	// Export writes the catalog matching query to disk in the requested format.
	Export(ctx context.Context, progress chan<- ProgressUpdate, query string, opts ExportOpts) (*ExportRunResult, error)
}

// WarmOpts contains configuration for cache warm runs.
type WarmOpts struct {
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Cache writes per second (default: 20)
}

// ExportOpts contains configuration for library exports.
type ExportOpts struct {
	Format        string                                              // Export format: json, csv, markdown, txt
	Title         string                                              // Listing title (default: "Library")
	OutputDir     string                                              // Base output directory (default: soniq_export_{epoch})
	GetCoverImage func(ctx context.Context, song models.Song) string  // Optional cover URL resolver for markdown exports
}

// SongCacher persists songs fetched from the backend.
type SongCacher interface {
	Create(song *models.CachedSong) error
}

// LibraryEngine implements LibraryTasks over a backend library and a local cache.
type LibraryEngine struct {
	library services.Library
	cache   SongCacher
}

// NewLibraryEngine creates a new LibraryEngine with the provided dependencies.
func NewLibraryEngine(library services.Library, cache SongCacher) *LibraryEngine {
	return &LibraryEngine{library: library, cache: cache}
}

// sendProgress sends an update without blocking when the receiver is slow or absent.
func (e *LibraryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Warm fetches the catalog and caches each song concurrently.
//
// Individual cache failures are collected rather than aborting the run.
func (e *LibraryEngine) Warm(ctx context.Context, progress chan<- ProgressUpdate, query string, opts WarmOpts) (*WarmRunResult, error) {
	if e.library == nil {
		return nil, fmt.Errorf("%w: library service not initialized", shared.ErrServiceUnavailable)
	}
	if e.cache == nil {
		return nil, fmt.Errorf("%w: song cache not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 20.0
	}

	e.sendProgress(progress, fetchCatalogUpdate())

	songs, err := e.library.SearchSongs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	e.sendProgress(progress, foundCatalogUpdate(len(songs), songs))

	result := &WarmRunResult{
		TotalSongs: len(songs),
		Results:    make([]SongCacheResult, 0, len(songs)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan models.Song, len(songs))
	results := make(chan SongCacheResult, len(songs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.cacheWorker(ctx, &wg, limiter, jobs, results)
	}

	for _, song := range songs {
		jobs <- song
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Error == nil {
			result.CachedCount++
			e.sendProgress(progress, cachedSongUpdate(completed, len(songs), res.Song))
		} else {
			result.FailedCount++
			e.sendProgress(progress, cacheFailedUpdate(completed, len(songs), res.Song, res.Error))
		}
	}

	return result, nil
}

// cacheWorker is a worker goroutine that caches songs from the jobs channel.
func (e *LibraryEngine) cacheWorker(ctx context.Context, wg *sync.WaitGroup, limiter *rate.Limiter, jobs <-chan models.Song, results chan<- SongCacheResult) {
	defer wg.Done()

	for song := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			results <- SongCacheResult{Song: song, Error: err}
			continue
		}

		err := e.cache.Create(&models.CachedSong{Song: song})
		results <- SongCacheResult{Song: song, Error: err}
	}
}

// Export fetches the catalog and writes it to disk in the requested format.
func (e *LibraryEngine) Export(ctx context.Context, progress chan<- ProgressUpdate, query string, opts ExportOpts) (*ExportRunResult, error) {
	if e.library == nil {
		return nil, fmt.Errorf("%w: library service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.Title == "" {
		opts.Title = "Library"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("soniq_export_%d", time.Now().Unix())
	}
	if opts.Format == "" {
		opts.Format = "json"
	}

	e.sendProgress(progress, fetchCatalogUpdate())

	songs, err := e.library.SearchSongs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	e.sendProgress(progress, foundCatalogUpdate(len(songs), songs))

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportRunResult{
		Title:           opts.Title,
		TotalSongs:      len(songs),
		Format:          opts.Format,
		OutputDirectory: opts.OutputDir,
	}

	e.sendProgress(progress, exportingUpdate(opts.Format, len(songs)))

	switch opts.Format {
	case "csv":
		csvRes, err := formatter.WriteCSVExport(opts.Title, songs, filepath.Join(opts.OutputDir, "library"))
		if err != nil {
			return nil, fmt.Errorf("CSV export failed: %w", err)
		}
		result.Files = []string{csvRes.SongsFile, csvRes.MetadataFile}

	case "markdown":
		var imageURL string
		if opts.GetCoverImage != nil && len(songs) > 0 {
			imageURL = opts.GetCoverImage(ctx, songs[0])
		}

		mdRes, err := formatter.WriteMarkdownExport(opts.Title, songs, opts.OutputDir, imageURL)
		if err != nil {
			return nil, fmt.Errorf("markdown export failed: %w", err)
		}
		result.Files = mdRes.Files

	case "txt":
		txtPath, err := formatter.WriteTextExport(opts.Title, songs, filepath.Join(opts.OutputDir, "library_songs.txt"))
		if err != nil {
			return nil, fmt.Errorf("text export failed: %w", err)
		}
		result.Files = []string{txtPath}

	case "json":
		data, err := shared.MarshalJSON(songs, true)
		if err != nil {
			return nil, fmt.Errorf("JSON marshal failed: %w", err)
		}
		jsonPath := filepath.Join(opts.OutputDir, "library.json")
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			return nil, fmt.Errorf("JSON write failed: %w", err)
		}
		result.Files = []string{jsonPath}

	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, opts.Format)
	}

	manifest, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := os.WriteFile(manifestPath, manifest, 0644); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	e.sendProgress(progress, exportCompletedUpdate(len(result.Files)))

	return result, nil
}
