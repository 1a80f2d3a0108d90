package pipeline

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/workout-locator/internal/domain"
	"github.com/couchcryptid/workout-locator/internal/region"
)

// Snapshot is one loaded feed together with the reports built from it.
// Reports are ordered relative to LoadedAt; readers that need the order
// relative to a later moment rebuild from Workouts.
type Snapshot struct {
	Workouts []domain.Workout
	Reports  map[string]region.Report
	LoadedAt time.Time
}

// Slugs returns the region slugs in the snapshot, sorted.
func (s *Snapshot) Slugs() []string {
	out := make([]string, 0, len(s.Reports))
	for slug := range s.Reports {
		out = append(out, slug)
	}
	slices.Sort(out)
	return out
}

// Store holds the current snapshot. Publish swaps it atomically, so readers
// never see a partially built one.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Publish replaces the current snapshot.
func (s *Store) Publish(snap *Snapshot) {
	s.current.Store(snap)
}

// Current returns the latest snapshot, or nil before the first Publish.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}
