package store

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"cell_directory/internal/models"
)

// StorageKey is the single fixed key the whole collection lives under.
const StorageKey = "church_cells_data"

// Persistence reads and writes the serialized collection blob. The database
// implementation lives in this package; tests plug in an in-memory one.
type Persistence interface {
	Read() (data []byte, found bool, err error)
	Write(data []byte) error
}

// Store is the source of truth for cell records: an ordered collection keyed
// by ID, persisted as one JSON array and overwritten wholesale on every
// mutation. A mutex guards it because gin serves requests concurrently, even
// though the domain assumes a single admin.
type Store struct {
	mu    sync.RWMutex
	cells []models.Cell
	index map[string]int
	p     Persistence
}

// Cells is the globally accessible store handle, set by Init.
var Cells *Store

// Init builds the global store and loads it from persistence.
func Init(p Persistence) {
	Cells = New(p)
	Cells.Load()
}

func New(p Persistence) *Store {
	return &Store{index: map[string]int{}, p: p}
}

// Load reads the collection once at startup. An absent key seeds the example
// cells; a corrupt blob is recovered the same way, with a diagnostic log, so
// startup never fails over bad stored data.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, found, err := s.p.Read()
	if err != nil {
		logrus.WithError(err).Warn("store: could not read persisted cells, seeding example data")
		s.resetLocked(SeedCells())
		return
	}
	if !found {
		logrus.Info("store: no persisted cells, seeding example data")
		s.resetLocked(SeedCells())
		s.persistLocked()
		return
	}

	var cells []models.Cell
	if err := json.Unmarshal(data, &cells); err != nil {
		logrus.WithError(err).Warn("store: persisted cells are corrupt, seeding example data")
		s.resetLocked(SeedCells())
		return
	}
	s.resetLocked(cells)
}

// All returns a copy of the collection in store order.
func (s *Store) All() []models.Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Cell, len(s.cells))
	copy(out, s.cells)
	return out
}

// Active returns only the cells surfaced to visitors.
func (s *Store) Active() []models.Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Cell
	for _, c := range s.cells {
		if c.Status == models.StatusAtiva {
			out = append(out, c)
		}
	}
	return out
}

// Get looks a cell up by ID.
func (s *Store) Get(id string) (models.Cell, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return models.Cell{}, false
	}
	return s.cells[i], true
}

// Add appends a cell. An already-present ID is overwritten in place so the
// ID-uniqueness invariant holds no matter what the caller hands in.
func (s *Store) Add(c models.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.snapshotLocked()
	s.upsertLocked(c)
	if err := s.persistLocked(); err != nil {
		s.restoreLocked(snapshot)
		return err
	}
	return nil
}

// Update replaces the cell with a matching ID and is a no-op when the ID is
// absent, reported via the bool.
func (s *Store) Update(c models.Cell) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[c.ID]
	if !ok {
		return false, nil
	}
	prev := s.cells[i]
	s.cells[i] = c
	if err := s.persistLocked(); err != nil {
		s.cells[i] = prev
		return false, err
	}
	return true, nil
}

// UpsertMany merges records by ID: existing IDs are overwritten in place,
// new IDs appended in input order, matching the semantics of an ordered map
// keyed by ID. The merge persists as one atomic whole-collection write.
func (s *Store) UpsertMany(cells []models.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.snapshotLocked()
	for _, c := range cells {
		s.upsertLocked(c)
	}
	if err := s.persistLocked(); err != nil {
		s.restoreLocked(snapshot)
		return err
	}
	return nil
}

// ReplaceAll swaps the entire collection.
func (s *Store) ReplaceAll(cells []models.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.snapshotLocked()
	s.resetLocked(cells)
	if err := s.persistLocked(); err != nil {
		s.restoreLocked(snapshot)
		return err
	}
	return nil
}

func (s *Store) upsertLocked(c models.Cell) {
	if i, ok := s.index[c.ID]; ok {
		s.cells[i] = c
		return
	}
	s.index[c.ID] = len(s.cells)
	s.cells = append(s.cells, c)
}

func (s *Store) resetLocked(cells []models.Cell) {
	s.cells = cells
	s.index = make(map[string]int, len(cells))
	for i, c := range cells {
		s.index[c.ID] = i
	}
}

func (s *Store) snapshotLocked() []models.Cell {
	out := make([]models.Cell, len(s.cells))
	copy(out, s.cells)
	return out
}

func (s *Store) restoreLocked(cells []models.Cell) {
	s.resetLocked(cells)
}

func (s *Store) persistLocked() error {
	data, err := json.Marshal(s.cells)
	if err != nil {
		return err
	}
	if err := s.p.Write(data); err != nil {
		logrus.WithError(err).WithField("key", StorageKey).Error("store: persisting cells failed")
		return err
	}
	return nil
}
