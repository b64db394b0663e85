package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mnfaaiiq/soniq/internal/search"
	"github.com/mnfaaiiq/soniq/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries the catalog by title and prints the matches.
//
// With --open the results page is opened in the browser instead.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: backend not configured", shared.ErrServiceUnavailable)
	}

	query := cmd.StringArg("query")

	if cmd.Bool("open") {
		nav := &search.BrowserNavigator{BaseURL: r.config.Backend.URL, Logger: r.logger}
		params := url.Values{}
		params.Set(search.TitleParam, query)
		nav.Navigate(search.SearchPath, params)
		r.writePlain("Opened search for %q in the browser\n", query)
		return nil
	}

	r.logger.Info("searching catalog", "query", query)

	songs, err := r.library.SearchSongs(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	if len(songs) == 0 {
		r.writePlain("No songs found\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Results (%d)", len(songs)))
	for i, song := range songs {
		author := song.Author
		if author == "" {
			author = "Unknown artist"
		}
		r.writePlain("%d. %s - %s (%s)\n", i+1, author, song.Title, song.SongID)
	}

	return nil
}
