package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mnfaaiiq/soniq/internal/models"
)

// DefaultSongTTL bounds how long a cached song record is trusted before the
// backend must be consulted again.
const DefaultSongTTL = 15 * time.Minute

// SongCacheRepository implements [models.Repository] for cached backend song records.
type SongCacheRepository struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSongCacheRepository creates a new [SongCacheRepository] with the given
// database connection. A non-positive ttl falls back to [DefaultSongTTL].
func NewSongCacheRepository(db *sql.DB, ttl time.Duration) *SongCacheRepository {
	if ttl <= 0 {
		ttl = DefaultSongTTL
	}
	return &SongCacheRepository{db: db, ttl: ttl}
}

// Create inserts a cached song, replacing any prior entry for the same id.
func (r *SongCacheRepository) Create(song *models.CachedSong) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if song.CachedAt.IsZero() {
		song.CachedAt = time.Now()
	}

	query := `
		INSERT OR REPLACE INTO cached_songs (id, title, author, song_path, image_path, cached_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.Exec(query, song.SongID, song.Title, song.Author, song.SongPath, song.ImagePath, song.CachedAt); err != nil {
		return fmt.Errorf("failed to cache song: %w", err)
	}

	return nil
}

// Get retrieves a cached song by id. Returns (nil, nil) on a miss or when
// the entry has outlived the TTL.
func (r *SongCacheRepository) Get(id string) (*models.CachedSong, error) {
	query := `
		SELECT id, title, author, song_path, image_path, cached_at
		FROM cached_songs
		WHERE id = ?
	`

	song, err := scanCachedSong(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cached song: %w", err)
	}

	if song.Expired(time.Now(), r.ttl) {
		return nil, nil
	}

	return song, nil
}

// Update rewrites a cached entry, refreshing its cache timestamp.
func (r *SongCacheRepository) Update(song *models.CachedSong) error {
	song.CachedAt = time.Now()
	return r.Create(song)
}

// Delete removes a cached song by id.
func (r *SongCacheRepository) Delete(id string) error {
	if _, err := r.db.Exec("DELETE FROM cached_songs WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete cached song: %w", err)
	}
	return nil
}

// List retrieves unexpired cached songs. The criteria map supports "title"
// for a substring match, newest first.
func (r *SongCacheRepository) List(criteria map[string]any) ([]*models.CachedSong, error) {
	query := `
		SELECT id, title, author, song_path, image_path, cached_at
		FROM cached_songs
		WHERE cached_at > ?
	`
	args := []any{time.Now().Add(-r.ttl)}

	if title, ok := criteria["title"].(string); ok && title != "" {
		query += " AND title LIKE ?"
		args = append(args, "%"+title+"%")
	}
	query += " ORDER BY cached_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.CachedSong
	for rows.Next() {
		song, err := scanCachedSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cached song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cached songs: %w", err)
	}

	return songs, nil
}

// Prune deletes entries older than the TTL.
func (r *SongCacheRepository) Prune() (int64, error) {
	result, err := r.db.Exec("DELETE FROM cached_songs WHERE cached_at <= ?", time.Now().Add(-r.ttl))
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	return result.RowsAffected()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCachedSong(row scanner) (*models.CachedSong, error) {
	var (
		song      models.CachedSong
		songPath  sql.NullString
		imagePath sql.NullString
	)

	err := row.Scan(&song.SongID, &song.Title, &song.Author, &songPath, &imagePath, &song.CachedAt)
	if err != nil {
		return nil, err
	}

	if songPath.Valid {
		song.SongPath = songPath.String
	}
	if imagePath.Valid {
		song.ImagePath = imagePath.String
	}

	return &song, nil
}
