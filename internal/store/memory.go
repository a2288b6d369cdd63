package store

import (
	"errors"
	"sync"
	"time"

	"github.com/guide48/peak-planner/internal/trip"
)

var (
	// ErrNotFound is returned when no snapshot is stored for a peak group.
	ErrNotFound = errors.New("no trip plans for peak group")
)

// PlanHistory holds a time-ordered list of trip snapshots for one peak group.
type PlanHistory struct {
	Snapshots []trip.Snapshot
}

// MemoryStore is a concurrency-safe in-memory snapshot store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: peak group key, value: history
	data map[string]*PlanHistory

	// retention configuration
	maxHistory int           // max number of snapshots per group
	maxAge     time.Duration // optional max age for snapshots
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*PlanHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SavePlan appends a snapshot for a peak group and enforces retention.
func (s *MemoryStore) SavePlan(key string, snapshot trip.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &PlanHistory{}
		s.data[key] = history
	}

	history.Snapshots = append(history.Snapshots, snapshot)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Snapshots) > s.maxHistory {
		over := len(history.Snapshots) - s.maxHistory
		history.Snapshots = history.Snapshots[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Snapshots); i++ {
			if !history.Snapshots[i].CreatedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			history.Snapshots = history.Snapshots[i:]
		}
		if len(history.Snapshots) == 0 {
			delete(s.data, key)
		}
	}
}

// GetLatest returns the most recent snapshot for a peak group.
func (s *MemoryStore) GetLatest(key string) (trip.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Snapshots) == 0 {
		return trip.Snapshot{}, ErrNotFound
	}
	return history.Snapshots[len(history.Snapshots)-1], nil
}

// GetRange returns all snapshots for a peak group between from and to (inclusive).
func (s *MemoryStore) GetRange(key string, from, to time.Time) ([]trip.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Snapshots) == 0 {
		return nil, ErrNotFound
	}

	var result []trip.Snapshot
	for _, snap := range history.Snapshots {
		if !snap.CreatedAt.Before(from) && !snap.CreatedAt.After(to) {
			result = append(result, snap)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
