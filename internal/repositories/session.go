package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mnfaaiiq/soniq/internal/models"
)

// SessionRepository persists [models.PlaybackSession] records.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Save upserts a session and replaces its queue in one transaction.
func (r *SessionRepository) Save(session *models.PlaybackSession) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	query := `
		INSERT INTO sessions (id, active_song_id, volume, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET active_song_id = excluded.active_song_id, volume = excluded.volume, updated_at = excluded.updated_at
	`
	if _, err := tx.Exec(query, session.SessionID, session.ActiveSongID, session.Volume, session.CreatedAt, now); err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM session_queue WHERE session_id = ?", session.SessionID); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}

	for i, songID := range session.Queue {
		if _, err := tx.Exec("INSERT INTO session_queue (session_id, position, song_id) VALUES (?, ?, ?)", session.SessionID, i, songID); err != nil {
			return fmt.Errorf("failed to insert queue entry: %w", err)
		}
	}

	return tx.Commit()
}

// Load retrieves a session by id with its queue in play order.
// Returns (nil, nil) when no session has the id.
func (r *SessionRepository) Load(id string) (*models.PlaybackSession, error) {
	return r.loadWhere("WHERE id = ?", id)
}

// Latest retrieves the most recently updated session, or (nil, nil) when none exist.
func (r *SessionRepository) Latest() (*models.PlaybackSession, error) {
	return r.loadWhere("ORDER BY updated_at DESC LIMIT 1")
}

func (r *SessionRepository) loadWhere(clause string, args ...any) (*models.PlaybackSession, error) {
	query := `
		SELECT id, active_song_id, volume, created_at, updated_at
		FROM sessions ` + clause

	var (
		session  models.PlaybackSession
		activeID sql.NullString
	)

	err := r.db.QueryRow(query, args...).Scan(&session.SessionID, &activeID, &session.Volume, &session.CreatedAt, &session.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	if activeID.Valid {
		session.ActiveSongID = activeID.String
	}

	rows, err := r.db.Query("SELECT song_id FROM session_queue WHERE session_id = ? ORDER BY position", session.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query queue: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var songID string
		if err := rows.Scan(&songID); err != nil {
			return nil, fmt.Errorf("failed to scan queue entry: %w", err)
		}
		session.Queue = append(session.Queue, songID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read queue: %w", err)
	}

	return &session, nil
}

// Delete removes a session and its queue entries.
func (r *SessionRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM session_queue WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete queue: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return tx.Commit()
}
