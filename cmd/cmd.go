// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Create a starter configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to write the configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// playerCommand handles playback operations
func playerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play a song and control playback",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Play,
		Commands: []*cli.Command{
			{
				Name:   "next",
				Usage:  "Advance to the next song in the queue",
				Action: r.PlayNext,
			},
			{
				Name:    "previous",
				Aliases: []string{"prev"},
				Usage:   "Return to the previous song in the queue",
				Action:  r.PlayPrevious,
			},
			{
				Name:  "status",
				Usage: "Show the current playback state",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PlayStatus,
			},
			{
				Name:  "volume",
				Usage: "Set the playback volume (0.0 to 1.0)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "level",
					},
				},
				Action: r.PlayVolume,
			},
		},
	}
}

// queueCommand handles playback queue operations
func queueCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "queue",
		Usage: "Manage the playback queue",
		Commands: []*cli.Command{
			{
				Name:   "set",
				Usage:  "Replace the queue with the given song ids",
				Action: r.QueueSet,
			},
			{
				Name:   "show",
				Usage:  "Show the current queue",
				Action: r.QueueShow,
			},
			{
				Name:   "clear",
				Usage:  "Stop playback, keeping the queue for later",
				Action: r.QueueClear,
			},
			{
				Name:   "reset",
				Usage:  "Stop playback and empty the queue",
				Action: r.QueueReset,
			},
		},
	}
}

// searchCommand handles catalog search
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the song catalog by title",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the search results page in the browser",
			},
		},
		Action: r.Search,
	}
}

// libraryCommand handles library listing and export operations
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Browse and export your library",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the songs you uploaded",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.LibraryList,
			},
			{
				Name:  "export",
				Usage: "Export the catalog to disk",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, markdown, txt)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.StringFlag{
						Name:  "query",
						Usage: "Restrict the export to titles matching this query",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Listing title used in exported documents",
						Value: "Library",
					},
				},
				Action: r.LibraryExport,
			},
		},
	}
}

// cacheCommand handles the local song cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the local song cache",
		Commands: []*cli.Command{
			{
				Name:  "warm",
				Usage: "Prefetch the catalog into the local cache",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "query",
						Usage: "Restrict warming to titles matching this query",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent cache workers",
						Value: 5,
					},
				},
				Action: r.CacheWarm,
			},
			{
				Name:   "prune",
				Usage:  "Remove expired entries from the cache",
				Action: r.CachePrune,
			},
		},
	}
}

// accountCommand handles account state operations
func accountCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Show the signed-in user's profile and subscription",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.AccountStatus,
	}
}

// tuiCommand returns the top-level TUI command for interactive playback.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive player",
		Action:  r.TUI,
	}
}
