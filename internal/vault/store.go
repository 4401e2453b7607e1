// Package vault implements the account catalog and the stateful components
// layered on it: the ordered/grouped view projection, single-selection
// tracking, and the edit session.
//
// All vault types are mutated only from the application's serialized event
// path. The store carries a mutex as a single-writer guard, not as a license
// for concurrent use.
package vault

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SamuelPGibson/PasswordManager/internal/models"
)

// Repository persists the account catalog. Implementations load the full
// record set once at startup and receive the full record set on every
// mutating call.
type Repository interface {
	// Load returns all persisted accounts. A missing backing store yields
	// an empty slice, not an error.
	Load() ([]models.Account, error)
	// Save persists the full record set, replacing whatever was stored.
	Save(records []models.Account) error
}

// Store is the canonical, mutable collection of account records, keyed by
// surrogate ID. Name uniqueness is enforced centrally on Add and Update.
type Store struct {
	mu   sync.Mutex
	byID map[string]models.Account
	// order holds IDs in insertion order. List and Names follow it, which
	// also fixes the tie-break order the search index relies on.
	order []string
	repo  Repository
	log   *zap.Logger
}

// NewStore constructs an empty Store backed by the given repository.
func NewStore(repo Repository, log *zap.Logger) *Store {
	return &Store{
		byID: make(map[string]models.Account),
		repo: repo,
		log:  log,
	}
}

// Load populates the store from the repository. Called once at startup.
// Records persisted before surrogate IDs existed are assigned one here.
func (s *Store) Load() error {
	records, err := s.repo.Load()
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		s.byID[rec.ID] = rec
		s.order = append(s.order, rec.ID)
	}
	s.log.Info("catalog loaded", zap.Int("accounts", len(s.order)))
	return nil
}

// Add inserts a new account. An empty ID is assigned a fresh surrogate ID.
// Fails with DuplicateNameError if the name is already present. On success
// the full record set is written through to the repository; a write failure
// is returned as a PersistError with the in-memory mutation kept.
func (s *Store) Add(a models.Account) (models.Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.idByNameLocked(a.Name); ok {
		return models.Change{}, &DuplicateNameError{Name: a.Name}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.byID[a.ID] = a
	s.order = append(s.order, a.ID)
	change := models.Change{Kind: models.ChangeAdd, ID: a.ID, Name: a.Name}
	return change, s.persistLocked(change)
}

// Remove deletes the account with the given ID. Removing an absent ID is a
// no-op success. The returned Change lets callers invalidate any selection
// or edit-session reference to the removed account.
func (s *Store) Remove(id string) (models.Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[id]
	if !ok {
		s.log.Debug("remove of absent account", zap.String("id", id))
		return models.Change{Kind: models.ChangeRemove, ID: id}, nil
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	change := models.Change{Kind: models.ChangeRemove, ID: id, Name: rec.Name}
	return change, s.persistLocked(change)
}

// Update replaces the fields of an existing account located by ID. The ID
// itself is immutable. Renaming to a name held by a different account fails
// with DuplicateNameError; renaming to the account's own unchanged name is
// always permitted.
func (s *Store) Update(id string, fields models.Account) (models.Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return models.Change{}, &RecordNotFoundError{Ref: id}
	}
	if other, ok := s.idByNameLocked(fields.Name); ok && other != id {
		return models.Change{}, &DuplicateNameError{Name: fields.Name}
	}
	fields.ID = id
	s.byID[id] = fields
	change := models.Change{Kind: models.ChangeUpdate, ID: id, Name: fields.Name}
	return change, s.persistLocked(change)
}

// Get returns the account with the given ID.
func (s *Store) Get(id string) (models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[id]
	return rec, ok
}

// IDByName resolves an account name to its surrogate ID.
func (s *Store) IDByName(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idByNameLocked(name)
}

// List returns all accounts in insertion order.
func (s *Store) List() []models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked()
}

// Names returns all account names in insertion order.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.order))
	for _, id := range s.order {
		names = append(names, s.byID[id].Name)
	}
	return names
}

// Len returns the number of accounts in the catalog.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

func (s *Store) idByNameLocked(name string) (string, bool) {
	for _, id := range s.order {
		if s.byID[id].Name == name {
			return id, true
		}
	}
	return "", false
}

func (s *Store) listLocked() []models.Account {
	records := make([]models.Account, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, s.byID[id])
	}
	return records
}

// persistLocked writes the full record set through to the repository.
// A failed write leaves the in-memory catalog as the source of truth.
func (s *Store) persistLocked(change models.Change) error {
	if err := s.repo.Save(s.listLocked()); err != nil {
		s.log.Error("persistence write failed",
			zap.Stringer("change", change.Kind),
			zap.String("name", change.Name),
			zap.Error(err))
		return &PersistError{Err: err}
	}
	return nil
}
