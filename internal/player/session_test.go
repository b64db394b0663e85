package player

import (
	"testing"

	"github.com/mnfaaiiq/soniq/internal/models"
)

func TestSessionQueuePolicy(t *testing.T) {
	// Queue advancement wraps at the boundaries in both directions.
	t.Run("Next Advances In Order", func(t *testing.T) {
		s := NewSession(1.0)
		s.SetQueue([]string{"a", "b", "c"})
		s.SetActive("a")

		if got := s.Next(); got != "b" {
			t.Errorf("expected b, got %s", got)
		}
		if got := s.Next(); got != "c" {
			t.Errorf("expected c, got %s", got)
		}
	})

	t.Run("Next Wraps To First", func(t *testing.T) {
		s := NewSession(1.0)
		s.SetQueue([]string{"a", "b", "c"})
		s.SetActive("c")

		if got := s.Next(); got != "a" {
			t.Errorf("expected wrap to a, got %s", got)
		}
	})

	t.Run("Previous Wraps To Last", func(t *testing.T) {
		s := NewSession(1.0)
		s.SetQueue([]string{"a", "b", "c"})
		s.SetActive("a")

		if got := s.Previous(); got != "c" {
			t.Errorf("expected wrap to c, got %s", got)
		}
	})

	t.Run("Previous Moves Back In Order", func(t *testing.T) {
		s := NewSession(1.0)
		s.SetQueue([]string{"a", "b", "c"})
		s.SetActive("c")

		if got := s.Previous(); got != "b" {
			t.Errorf("expected b, got %s", got)
		}
	})

	t.Run("Unknown Active Starts At First On Next", func(t *testing.T) {
		s := NewSession(1.0)
		s.SetQueue([]string{"a", "b"})
		s.SetActive("not-in-queue")

		if got := s.Next(); got != "a" {
			t.Errorf("expected a, got %s", got)
		}
	})

	t.Run("Unknown Active Starts At Last On Previous", func(t *testing.T) {
		s := NewSession(1.0)
		s.SetQueue([]string{"a", "b"})
		s.SetActive("not-in-queue")

		if got := s.Previous(); got != "b" {
			t.Errorf("expected b, got %s", got)
		}
	})

	t.Run("Empty Queue Is Quiet", func(t *testing.T) {
		s := NewSession(1.0)
		s.SetActive("a")

		if got := s.Next(); got != "" {
			t.Errorf("expected no-op on empty queue, got %s", got)
		}
		if got := s.Previous(); got != "" {
			t.Errorf("expected no-op on empty queue, got %s", got)
		}
		if got := s.ActiveID(); got != "a" {
			t.Errorf("expected active id untouched, got %s", got)
		}
	})
}

func TestSessionState(t *testing.T) {
	t.Run("Unresolvable Active Is Valid", func(t *testing.T) {
		s := NewSession(1.0)
		s.SetActive("no-such-song")
		if got := s.ActiveID(); got != "no-such-song" {
			t.Errorf("expected unresolvable id to be held quietly, got %s", got)
		}
	})

	t.Run("Clear Drops Active Only", func(t *testing.T) {
		s := NewSession(1.0)
		s.SetQueue([]string{"a"})
		s.SetActive("a")
		s.Clear()

		if s.ActiveID() != "" {
			t.Error("expected active id cleared")
		}
		if len(s.Queue()) != 1 {
			t.Error("expected queue intact after Clear")
		}
	})

	t.Run("Reset Drops Queue Too", func(t *testing.T) {
		s := NewSession(1.0)
		s.SetQueue([]string{"a"})
		s.SetActive("a")
		s.Reset()

		if s.ActiveID() != "" || len(s.Queue()) != 0 {
			t.Error("expected empty session after Reset")
		}
	})

	t.Run("Volume Clamped", func(t *testing.T) {
		s := NewSession(2.0)
		if got := s.Volume(); got != 1.0 {
			t.Errorf("expected clamp to 1.0, got %f", got)
		}
		s.SetVolume(-0.5)
		if got := s.Volume(); got != 0 {
			t.Errorf("expected clamp to 0, got %f", got)
		}
		s.SetVolume(0.3)
		if got := s.Volume(); got != 0.3 {
			t.Errorf("expected 0.3, got %f", got)
		}
	})

	t.Run("Queue Returns Copy", func(t *testing.T) {
		s := NewSession(1.0)
		s.SetQueue([]string{"a", "b"})
		queue := s.Queue()
		queue[0] = "mutated"
		if s.Queue()[0] != "a" {
			t.Error("expected internal queue to be isolated from returned copy")
		}
	})
}

func TestSessionPersistence(t *testing.T) {
	s := NewSession(0.8)
	s.SetQueue([]string{"a", "b"})
	s.SetActive("b")

	record := s.Snapshot()
	if record.ActiveSongID != "b" || len(record.Queue) != 2 || record.Volume != 0.8 {
		t.Fatalf("unexpected snapshot %+v", record)
	}
	if err := record.Validate(); err != nil {
		t.Fatalf("expected valid snapshot, got %v", err)
	}

	restored := Restore(record)
	if restored.ActiveID() != "b" {
		t.Errorf("expected restored active b, got %s", restored.ActiveID())
	}
	if got := restored.Next(); got != "a" {
		t.Errorf("expected restored queue to wrap to a, got %s", got)
	}
	if restored.Volume() != 0.8 {
		t.Errorf("expected restored volume 0.8, got %f", restored.Volume())
	}
}

func TestRestoreClampsVolume(t *testing.T) {
	record := &models.PlaybackSession{SessionID: "s1", Volume: 4}
	if got := Restore(record).Volume(); got != 1.0 {
		t.Errorf("expected clamped volume 1.0, got %f", got)
	}
}
