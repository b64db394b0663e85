package main

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/mnfaaiiq/soniq/internal/player"
	"github.com/mnfaaiiq/soniq/internal/shared"
	"github.com/urfave/cli/v3"
)

// Play resolves a song's playable media and makes it the active song.
//
// The song joins the queue if it is not already there so next/previous have
// somewhere to go.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	if r.resolver == nil {
		return fmt.Errorf("%w: backend not configured", shared.ErrServiceUnavailable)
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	return r.withSession(func(db *sql.DB, session *player.Session) error {
		media, err := r.resolver.Resolve(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to resolve song: %w", err)
		}

		view := player.BuildView(id, media, r.config.Storage.PlaceholderImage)
		if view == nil {
			return fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
		}

		if !contains(session.Queue(), id) {
			session.SetQueue(append(session.Queue(), id))
		}
		session.SetActive(id)

		return r.printView(cmd, session, view)
	})
}

// PlayNext advances the queue and resolves the new active song.
func (r *Runner) PlayNext(ctx context.Context, cmd *cli.Command) error {
	return r.advance(ctx, cmd, func(session *player.Session) string { return session.Next() })
}

// PlayPrevious steps the queue backwards and resolves the new active song.
func (r *Runner) PlayPrevious(ctx context.Context, cmd *cli.Command) error {
	return r.advance(ctx, cmd, func(session *player.Session) string { return session.Previous() })
}

func (r *Runner) advance(ctx context.Context, cmd *cli.Command, step func(*player.Session) string) error {
	if r.resolver == nil {
		return fmt.Errorf("%w: backend not configured", shared.ErrServiceUnavailable)
	}

	return r.withSession(func(db *sql.DB, session *player.Session) error {
		id := step(session)
		if id == "" {
			r.writePlain("Queue is empty\n")
			return nil
		}

		media, err := r.resolver.Resolve(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to resolve song: %w", err)
		}

		view := player.BuildView(id, media, r.config.Storage.PlaceholderImage)
		if view == nil {
			r.writePlain("Song %s is not playable\n", id)
			return nil
		}

		return r.printView(cmd, session, view)
	})
}

// PlayStatus shows the persisted playback state.
func (r *Runner) PlayStatus(ctx context.Context, cmd *cli.Command) error {
	return r.withSession(func(db *sql.DB, session *player.Session) error {
		snapshot := session.Snapshot()

		if cmd.Bool("json") {
			return r.writeJSON(snapshot, true)
		}

		r.writePlainHeader("Playback")
		if snapshot.ActiveSongID == "" {
			r.writePlain("Nothing playing\n")
		} else {
			r.writePlain("Active: %s\n", snapshot.ActiveSongID)
		}
		r.writePlain("Volume: %d%%\n", int(snapshot.Volume*100))
		r.writePlain("Queue: %d songs\n", len(snapshot.Queue))
		return nil
	})
}

// PlayVolume sets the playback volume for the persisted session.
func (r *Runner) PlayVolume(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.StringArg("level")
	if raw == "" {
		return fmt.Errorf("%w: volume level", shared.ErrMissingArgument)
	}

	level, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%w: volume must be a number between 0 and 1", shared.ErrInvalidArgument)
	}

	return r.withSession(func(db *sql.DB, session *player.Session) error {
		session.SetVolume(level)
		r.writePlain("Volume set to %d%%\n", int(session.Volume()*100))
		return nil
	})
}

// QueueSet replaces the queue with the song ids given as arguments.
func (r *Runner) QueueSet(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one song id", shared.ErrMissingArgument)
	}

	return r.withSession(func(db *sql.DB, session *player.Session) error {
		session.SetQueue(ids)
		r.writePlain("Queue set (%d songs)\n", len(ids))
		return nil
	})
}

// QueueShow lists the queued songs, marking the active one.
func (r *Runner) QueueShow(ctx context.Context, cmd *cli.Command) error {
	return r.withSession(func(db *sql.DB, session *player.Session) error {
		queue := session.Queue()
		if len(queue) == 0 {
			r.writePlain("Queue is empty\n")
			return nil
		}

		active := session.ActiveID()
		for i, id := range queue {
			marker := " "
			if id == active {
				marker = "▶"
			}
			r.writePlain("%s %d. %s\n", marker, i+1, id)
		}
		return nil
	})
}

// QueueClear stops playback but keeps the queue.
func (r *Runner) QueueClear(ctx context.Context, cmd *cli.Command) error {
	return r.withSession(func(db *sql.DB, session *player.Session) error {
		session.Clear()
		r.writePlain("Playback stopped\n")
		return nil
	})
}

// QueueReset stops playback and empties the queue.
func (r *Runner) QueueReset(ctx context.Context, cmd *cli.Command) error {
	return r.withSession(func(db *sql.DB, session *player.Session) error {
		session.Reset()
		r.writePlain("Queue cleared\n")
		return nil
	})
}

func (r *Runner) printView(cmd *cli.Command, session *player.Session, view *player.View) error {
	if cmd.Bool("json") {
		return r.writeJSON(view, cmd.Bool("pretty"))
	}

	r.writePlain("Now playing: %s", view.Song.Title)
	if view.Song.Author != "" {
		r.writePlain(" - %s", view.Song.Author)
	}
	r.writePlain("\n")
	r.writePlain("Media: %s\n", view.MediaURL)
	r.writePlain("Cover: %s\n", view.ImageURL)
	r.writePlain("Volume: %d%%\n", int(session.Volume()*100))
	return nil
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
