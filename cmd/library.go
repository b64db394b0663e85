package main

import (
	"context"
	"fmt"

	"github.com/mnfaaiiq/soniq/internal/models"
	"github.com/mnfaaiiq/soniq/internal/shared"
	"github.com/mnfaaiiq/soniq/internal/tasks"
	"github.com/urfave/cli/v3"
)

// LibraryList lists the songs uploaded by the configured identity.
func (r *Runner) LibraryList(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: backend not configured", shared.ErrServiceUnavailable)
	}

	identity := r.identity()
	if !identity.Present() {
		return fmt.Errorf("%w: set backend.access_token and backend.user_id", shared.ErrNotAuthenticated)
	}

	songs, err := r.library.SongsByUser(ctx, identity)
	if err != nil {
		return fmt.Errorf("failed to fetch library: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	if len(songs) == 0 {
		r.writePlain("Your library is empty\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Your Library (%d)", len(songs)))
	for i, song := range songs {
		r.writePlain("%d. %s - %s (%s)\n", i+1, song.Author, song.Title, song.SongID)
	}

	return nil
}

// LibraryExport writes the catalog to disk via the library engine,
// streaming progress to the terminal.
func (r *Runner) LibraryExport(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: backend not configured", shared.ErrServiceUnavailable)
	}

	engine := tasks.NewLibraryEngine(r.library, nil)

	opts := tasks.ExportOpts{
		Format:    cmd.String("format"),
		Title:     cmd.String("title"),
		OutputDir: cmd.String("output"),
	}
	if r.assets != nil {
		opts.GetCoverImage = func(ctx context.Context, song models.Song) string {
			return r.assets.ImageURL(song.ImagePath)
		}
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
		close(done)
	}()

	result, err := engine.Export(ctx, progress, cmd.String("query"), opts)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlainln("✓ Exported %d songs to %s", result.TotalSongs, result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)

	return nil
}
