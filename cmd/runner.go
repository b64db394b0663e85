package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mnfaaiiq/soniq/internal/models"
	"github.com/mnfaaiiq/soniq/internal/player"
	"github.com/mnfaaiiq/soniq/internal/repositories"
	"github.com/mnfaaiiq/soniq/internal/services"
	"github.com/mnfaaiiq/soniq/internal/shared"
	"github.com/mnfaaiiq/soniq/internal/storage"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	library    services.Library
	assets     *storage.BucketStorage
	resolver   *player.Resolver
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Library    services.Library
	Assets     *storage.BucketStorage
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	var resolver *player.Resolver
	if opts.Library != nil && opts.Assets != nil {
		resolver = player.NewResolver(opts.Library, opts.Assets, opts.Logger)
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		library:    opts.Library,
		assets:     opts.Assets,
		resolver:   resolver,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the runner's logger, used when the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, playerCommand, queueCommand, searchCommand, libraryCommand, cacheCommand, accountCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// identity builds the configured identity. Zero value when no token is set.
func (r *Runner) identity() models.Identity {
	if r.config.Backend.AccessToken == "" {
		return models.Identity{}
	}
	identity := models.Identity{AccessToken: r.config.Backend.AccessToken}
	if r.config.Backend.UserID != "" {
		identity.User = &models.User{UserID: r.config.Backend.UserID}
	}
	return identity
}

// openDatabase opens and configures the local database.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database)
	return db, nil
}

// loadSession restores the most recent playback session, or starts a fresh
// one at the configured volume when none has been persisted.
func (r *Runner) loadSession(repo *repositories.SessionRepository) (*player.Session, error) {
	record, err := repo.Latest()
	if err != nil {
		return nil, err
	}
	if record == nil {
		return player.NewSession(r.config.Player.Volume), nil
	}
	return player.Restore(record), nil
}

// saveSession persists the session state for the next invocation.
func (r *Runner) saveSession(repo *repositories.SessionRepository, session *player.Session) error {
	return repo.Save(session.Snapshot())
}

// withSession opens the database, restores the playback session, runs fn, and
// persists whatever fn left behind.
func (r *Runner) withSession(fn func(db *sql.DB, session *player.Session) error) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSessionRepository(db)
	session, err := r.loadSession(repo)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	if err := fn(db, session); err != nil {
		return err
	}

	return r.saveSession(repo, session)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
