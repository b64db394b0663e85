package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mnfaaiiq/soniq/internal/player"
	"github.com/mnfaaiiq/soniq/internal/shared"
	"github.com/mnfaaiiq/soniq/internal/ui"
	"github.com/mnfaaiiq/soniq/internal/usersync"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal player.
//
// The playback session is restored from the local database and persisted
// again when the program exits.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil || r.resolver == nil {
		return fmt.Errorf("%w: backend not configured", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/soniq-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	var controller *usersync.Controller
	if identity := r.identity(); identity.Present() {
		controller, err = usersync.NewController(r.library, fileLogger)
		if err != nil {
			return err
		}
		controller.SetIdentity(ctx, identity)
	}

	debounce := time.Duration(r.config.Search.DebounceMS) * time.Millisecond

	return r.withSession(func(db *sql.DB, session *player.Session) error {
		model := ui.NewModel(ctx, r.library, session, r.resolver, controller, r.config.Storage.PlaceholderImage, debounce)
		p := tea.NewProgram(model)

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}

		return nil
	})
}
