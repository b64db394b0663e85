package main

import (
	"context"
	"fmt"

	"github.com/mnfaaiiq/soniq/internal/repositories"
	"github.com/mnfaaiiq/soniq/internal/shared"
	"github.com/mnfaaiiq/soniq/internal/tasks"
	"github.com/urfave/cli/v3"
)

// CacheWarm prefetches the catalog into the local song cache.
func (r *Runner) CacheWarm(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: backend not configured", shared.ErrServiceUnavailable)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	cache := repositories.NewSongCacheRepository(db, repositories.DefaultSongTTL)
	engine := tasks.NewLibraryEngine(r.library, cache)

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
		close(done)
	}()

	result, err := engine.Warm(ctx, progress, cmd.String("query"), tasks.WarmOpts{
		NumWorkers: int(cmd.Int("workers")),
	})
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlainln("✓ Cached %d/%d songs", result.CachedCount, result.TotalSongs)
	if result.FailedCount > 0 {
		r.writePlain("Failed: %d\n", result.FailedCount)
	}

	return nil
}

// CachePrune removes expired entries from the local song cache.
func (r *Runner) CachePrune(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	cache := repositories.NewSongCacheRepository(db, repositories.DefaultSongTTL)

	pruned, err := cache.Prune()
	if err != nil {
		return fmt.Errorf("failed to prune cache: %w", err)
	}

	r.writePlain("✓ Pruned %d expired entries\n", pruned)
	return nil
}
