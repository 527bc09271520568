// Package session isolates each browser session's upload behind a session
// identifier. One slot per session: a new upload replaces the previous Table
// wholesale, and nothing is shared across sessions.
package session

import (
	"sync"
	"time"

	"datalens/domain/core"
	"datalens/domain/table"
)

// Dataset is one session's loaded table plus its upload metadata.
type Dataset struct {
	ID         core.UploadID
	Filename   string
	Options    table.LoadOptions
	Table      *table.Table
	UploadedAt time.Time
}

// Pending holds a spreadsheet upload that is waiting for the user's sheet
// selection: the raw bytes were accepted, but no Table exists yet.
type Pending struct {
	Filename string
	Data     []byte
	Options  table.LoadOptions
	Sheets   []string
}

// Store is the in-memory per-session dataset registry. It is the only shared
// mutable state in the system.
type Store struct {
	mu       sync.RWMutex
	datasets map[core.SessionID]*Dataset
	pending  map[core.SessionID]*Pending
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		datasets: make(map[core.SessionID]*Dataset),
		pending:  make(map[core.SessionID]*Pending),
	}
}

// Put installs a freshly loaded dataset for the session, replacing any
// previous one and discarding any pending upload.
func (s *Store) Put(id core.SessionID, filename string, opts table.LoadOptions, t *table.Table) *Dataset {
	ds := &Dataset{
		ID:         core.UploadID(core.NewID()),
		Filename:   filename,
		Options:    opts,
		Table:      t,
		UploadedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[id] = ds
	delete(s.pending, id)
	return ds
}

// Get returns the session's dataset, if one is loaded.
func (s *Store) Get(id core.SessionID) (*Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[id]
	return ds, ok
}

// PutPending parks a spreadsheet upload until a sheet is chosen.
func (s *Store) PutPending(id core.SessionID, p *Pending) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id] = p
}

// GetPending returns the session's parked upload, if any.
func (s *Store) GetPending(id core.SessionID) (*Pending, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pending[id]
	return p, ok
}

// Clear drops both the dataset and any pending upload for the session.
func (s *Store) Clear(id core.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.datasets, id)
	delete(s.pending, id)
}
