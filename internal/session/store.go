// Package session holds the per-session dataset state the dashboard
// works against. State is explicit — a dataset handle is created on
// upload, looked up per interaction, and expires on inactivity — never
// a bare global.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/scoutlab/scout-dashboard/internal/models"
)

// Dataset is one loaded, feature-enriched record set. Players are
// treated as immutable after load; filtering always starts from the
// full slice.
type Dataset struct {
	ID       string
	Name     string
	Players  []models.Player
	LoadedAt time.Time

	pinned     bool
	lastAccess time.Time
}

// Store keeps datasets in memory for the lifetime of a session.
type Store struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
	ttl      time.Duration
	logger   *logrus.Logger
	sweeper  *cron.Cron
}

func NewStore(ttl time.Duration, logger *logrus.Logger) *Store {
	return &Store{
		datasets: make(map[string]*Dataset),
		ttl:      ttl,
		logger:   logger,
	}
}

// Put registers a freshly loaded dataset under a new id.
func (s *Store) Put(name string, players []models.Player) *Dataset {
	return s.put(uuid.NewString(), name, players, false)
}

// PutPinned registers a dataset that never expires, e.g. the bundled
// file preloaded at startup.
func (s *Store) PutPinned(id, name string, players []models.Player) *Dataset {
	return s.put(id, name, players, true)
}

func (s *Store) put(id, name string, players []models.Player, pinned bool) *Dataset {
	now := time.Now()
	ds := &Dataset{
		ID:         id,
		Name:       name,
		Players:    players,
		LoadedAt:   now,
		pinned:     pinned,
		lastAccess: now,
	}

	s.mu.Lock()
	s.datasets[id] = ds
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"dataset": id,
		"name":    name,
		"players": len(players),
	}).Info("dataset loaded")
	return ds
}

// Get returns the dataset and refreshes its expiry clock.
func (s *Store) Get(id string) (*Dataset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, ok := s.datasets[id]
	if !ok {
		return nil, false
	}
	ds.lastAccess = time.Now()
	return ds, true
}

// Delete drops a dataset, ending its session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.datasets, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.datasets)
}

// StartSweeper evicts idle datasets every ten minutes.
func (s *Store) StartSweeper() {
	s.sweeper = cron.New()
	s.sweeper.AddFunc("@every 10m", s.sweep)
	s.sweeper.Start()
}

// StopSweeper stops the background eviction job.
func (s *Store) StopSweeper() {
	if s.sweeper != nil {
		s.sweeper.Stop()
	}
}

func (s *Store) sweep() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ds := range s.datasets {
		if ds.pinned || ds.lastAccess.After(cutoff) {
			continue
		}
		delete(s.datasets, id)
		s.logger.WithField("dataset", id).Info("dataset expired")
	}
}
