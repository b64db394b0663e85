package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mnfaaiiq/soniq/internal/models"
	"github.com/mnfaaiiq/soniq/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// A pooled second connection would see a different empty in-memory db
	db.SetMaxOpenConns(1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestSessionRepository(t *testing.T) {
	t.Run("Save And Load", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionRepository(db)

		session := models.NewPlaybackSession(0.8)
		session.ActiveSongID = "t1"
		session.Queue = []string{"t1", "t2", "t3"}

		if err := repo.Save(session); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}

		loaded, err := repo.Load(session.SessionID)
		if err != nil {
			t.Fatalf("failed to load session: %v", err)
		}
		if loaded == nil {
			t.Fatal("expected session, got nil")
		}
		if loaded.ActiveSongID != "t1" {
			t.Errorf("expected active song t1, got %s", loaded.ActiveSongID)
		}
		if len(loaded.Queue) != 3 || loaded.Queue[1] != "t2" {
			t.Errorf("expected queue order preserved, got %v", loaded.Queue)
		}
		if loaded.Volume != 0.8 {
			t.Errorf("expected volume 0.8, got %f", loaded.Volume)
		}
	})

	t.Run("Save Replaces Queue", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionRepository(db)

		session := models.NewPlaybackSession(1.0)
		session.Queue = []string{"t1", "t2"}
		if err := repo.Save(session); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}

		session.Queue = []string{"t3"}
		session.ActiveSongID = "t3"
		if err := repo.Save(session); err != nil {
			t.Fatalf("failed to resave session: %v", err)
		}

		loaded, err := repo.Load(session.SessionID)
		if err != nil {
			t.Fatalf("failed to load session: %v", err)
		}
		if len(loaded.Queue) != 1 || loaded.Queue[0] != "t3" {
			t.Errorf("expected replaced queue [t3], got %v", loaded.Queue)
		}
	})

	t.Run("Load Missing Is Quiet", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionRepository(db)

		loaded, err := repo.Load("missing")
		if err != nil {
			t.Fatalf("expected no error for missing session, got %v", err)
		}
		if loaded != nil {
			t.Errorf("expected nil session, got %+v", loaded)
		}
	})

	t.Run("Latest", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionRepository(db)

		if latest, err := repo.Latest(); err != nil || latest != nil {
			t.Fatalf("expected (nil, nil) with no sessions, got (%+v, %v)", latest, err)
		}

		older := models.NewPlaybackSession(1.0)
		if err := repo.Save(older); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}

		time.Sleep(10 * time.Millisecond)

		newer := models.NewPlaybackSession(0.5)
		if err := repo.Save(newer); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}

		latest, err := repo.Latest()
		if err != nil {
			t.Fatalf("failed to load latest: %v", err)
		}
		if latest == nil || latest.SessionID != newer.SessionID {
			t.Errorf("expected most recently saved session, got %+v", latest)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionRepository(db)

		session := models.NewPlaybackSession(1.0)
		session.Queue = []string{"t1"}
		if err := repo.Save(session); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}

		if err := repo.Delete(session.SessionID); err != nil {
			t.Fatalf("failed to delete session: %v", err)
		}

		loaded, err := repo.Load(session.SessionID)
		if err != nil || loaded != nil {
			t.Errorf("expected session gone, got (%+v, %v)", loaded, err)
		}

		var queued int
		if err := db.QueryRow("SELECT COUNT(*) FROM session_queue WHERE session_id = ?", session.SessionID).Scan(&queued); err != nil {
			t.Fatalf("failed to count queue rows: %v", err)
		}
		if queued != 0 {
			t.Errorf("expected queue rows removed, got %d", queued)
		}
	})

	t.Run("Invalid Session Rejected", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionRepository(db)

		if err := repo.Save(&models.PlaybackSession{Volume: 0.5}); err == nil {
			t.Error("expected validation error for session without id")
		}
	})
}

func TestSongCacheRepository(t *testing.T) {
	song := func(id, title string) *models.CachedSong {
		return &models.CachedSong{Song: models.Song{SongID: id, Title: title, Author: "A", SongPath: id + ".mp3"}}
	}

	t.Run("Create And Get", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSongCacheRepository(db, time.Minute)

		if err := repo.Create(song("t1", "Track One")); err != nil {
			t.Fatalf("failed to cache song: %v", err)
		}

		got, err := repo.Get("t1")
		if err != nil {
			t.Fatalf("failed to get cached song: %v", err)
		}
		if got == nil || got.Title != "Track One" {
			t.Fatalf("expected cached song, got %+v", got)
		}
		if got.SongPath != "t1.mp3" {
			t.Errorf("expected asset path preserved, got %s", got.SongPath)
		}
	})

	t.Run("Miss Is Quiet", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSongCacheRepository(db, time.Minute)

		got, err := repo.Get("missing")
		if err != nil || got != nil {
			t.Errorf("expected (nil, nil) on miss, got (%+v, %v)", got, err)
		}
	})

	t.Run("Expired Entry Reads As Absence", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSongCacheRepository(db, 50*time.Millisecond)

		stale := song("t1", "Track One")
		stale.CachedAt = time.Now().Add(-time.Hour)
		if err := repo.Create(stale); err != nil {
			t.Fatalf("failed to cache song: %v", err)
		}

		got, err := repo.Get("t1")
		if err != nil {
			t.Fatalf("expected no error for expired entry, got %v", err)
		}
		if got != nil {
			t.Errorf("expected expired entry hidden, got %+v", got)
		}
	})

	t.Run("Create Replaces Existing", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSongCacheRepository(db, time.Minute)

		if err := repo.Create(song("t1", "Old Title")); err != nil {
			t.Fatalf("failed to cache song: %v", err)
		}
		if err := repo.Create(song("t1", "New Title")); err != nil {
			t.Fatalf("failed to recache song: %v", err)
		}

		got, err := repo.Get("t1")
		if err != nil || got == nil {
			t.Fatalf("failed to get cached song: (%+v, %v)", got, err)
		}
		if got.Title != "New Title" {
			t.Errorf("expected replaced title, got %s", got.Title)
		}
	})

	t.Run("List By Title", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSongCacheRepository(db, time.Minute)

		for _, s := range []*models.CachedSong{song("t1", "Morning Song"), song("t2", "Evening Song"), song("t3", "Interlude")} {
			if err := repo.Create(s); err != nil {
				t.Fatalf("failed to cache song: %v", err)
			}
		}

		songs, err := repo.List(map[string]any{"title": "Song"})
		if err != nil {
			t.Fatalf("failed to list cached songs: %v", err)
		}
		if len(songs) != 2 {
			t.Errorf("expected 2 matches, got %d", len(songs))
		}

		all, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list all: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 entries, got %d", len(all))
		}
	})

	t.Run("Prune", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSongCacheRepository(db, time.Minute)

		stale := song("t1", "Old")
		stale.CachedAt = time.Now().Add(-time.Hour)
		if err := repo.Create(stale); err != nil {
			t.Fatalf("failed to cache song: %v", err)
		}
		if err := repo.Create(song("t2", "Fresh")); err != nil {
			t.Fatalf("failed to cache song: %v", err)
		}

		pruned, err := repo.Prune()
		if err != nil {
			t.Fatalf("failed to prune: %v", err)
		}
		if pruned != 1 {
			t.Errorf("expected 1 pruned row, got %d", pruned)
		}

		if got, _ := repo.Get("t2"); got == nil {
			t.Error("expected fresh entry to survive prune")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSongCacheRepository(db, time.Minute)

		if err := repo.Create(song("t1", "Track")); err != nil {
			t.Fatalf("failed to cache song: %v", err)
		}
		if err := repo.Delete("t1"); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		if got, _ := repo.Get("t1"); got != nil {
			t.Errorf("expected entry deleted, got %+v", got)
		}
	})

	t.Run("Implements Repository Interface", func(t *testing.T) {
		db := setupTestDB(t)
		var _ models.Repository[*models.CachedSong] = NewSongCacheRepository(db, time.Minute)
	})

	t.Run("Invalid Song Rejected", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSongCacheRepository(db, time.Minute)

		if err := repo.Create(&models.CachedSong{}); err == nil {
			t.Error("expected validation error for empty song")
		}
	})
}
