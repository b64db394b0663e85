package player

import (
	"sync"
	"time"

	"github.com/mnfaaiiq/soniq/internal/models"
	"github.com/mnfaaiiq/soniq/internal/shared"
)

// Session is the playback session state: active song id, ordered queue, volume.
// Safe for concurrent readers; only transition methods mutate.
type Session struct {
	mu        sync.RWMutex
	sessionID string
	activeID  string
	queue     []string
	volume    float64
	createdAt time.Time
}

// NewSession creates an empty session with the given starting volume.
func NewSession(volume float64) *Session {
	return &Session{
		sessionID: shared.GenerateID(),
		volume:    clampVolume(volume),
		createdAt: time.Now(),
	}
}

// Restore rebuilds a session from a persisted record.
func Restore(record *models.PlaybackSession) *Session {
	queue := make([]string, len(record.Queue))
	copy(queue, record.Queue)

	return &Session{
		sessionID: record.SessionID,
		activeID:  record.ActiveSongID,
		queue:     queue,
		volume:    clampVolume(record.Volume),
		createdAt: record.CreatedAt,
	}
}

// ActiveID returns the id of the currently active song, or "" when none is set.
func (s *Session) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Queue returns a copy of the queued song ids in play order.
func (s *Session) Queue() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	queue := make([]string, len(s.queue))
	copy(queue, s.queue)
	return queue
}

// Volume returns the current volume in [0, 1].
func (s *Session) Volume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.volume
}

// SetVolume sets the volume, clamped to [0, 1].
func (s *Session) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = clampVolume(v)
}

// SetActive designates a song for playback. The id is not validated against
// the backend: an unresolvable id renders nothing rather than erroring.
func (s *Session) SetActive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = id
}

// SetQueue replaces the queue. The active id is untouched.
func (s *Session) SetQueue(ids []string) {
	queue := make([]string, len(ids))
	copy(queue, ids)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = queue
}

// Clear drops the active id, leaving the queue and volume intact.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = ""
}

// Reset drops the active id and the queue.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = ""
	s.queue = nil
}

// Next advances to the successor of the active id in the queue and returns
// the new active id. The successor of the last entry is the first entry.
// When the active id is not in the queue, playback starts at the first entry.
// An empty queue is a quiet no-op returning "".
func (s *Session) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return ""
	}

	idx := s.indexOfActive()
	if idx < 0 || idx == len(s.queue)-1 {
		s.activeID = s.queue[0]
	} else {
		s.activeID = s.queue[idx+1]
	}
	return s.activeID
}

// Previous moves to the predecessor of the active id in the queue and
// returns the new active id. The predecessor of the first entry is the last
// entry. When the active id is not in the queue, playback starts at the
// last entry. An empty queue is a quiet no-op returning "".
func (s *Session) Previous() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return ""
	}

	idx := s.indexOfActive()
	if idx <= 0 {
		s.activeID = s.queue[len(s.queue)-1]
	} else {
		s.activeID = s.queue[idx-1]
	}
	return s.activeID
}

// Snapshot captures the session as a persistable record.
func (s *Session) Snapshot() *models.PlaybackSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	queue := make([]string, len(s.queue))
	copy(queue, s.queue)

	return &models.PlaybackSession{
		SessionID:    s.sessionID,
		ActiveSongID: s.activeID,
		Queue:        queue,
		Volume:       s.volume,
		CreatedAt:    s.createdAt,
		UpdatedAt:    time.Now(),
	}
}

// indexOfActive returns the queue position of the active id, or -1.
// Callers must hold the lock.
func (s *Session) indexOfActive() int {
	if s.activeID == "" {
		return -1
	}
	for i, id := range s.queue {
		if id == s.activeID {
			return i
		}
	}
	return -1
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
