package vault

import (
	"go.uber.org/zap"

	"github.com/SamuelPGibson/PasswordManager/internal/models"
)

// Selection tracks which single account, if any, is active in the catalog
// view. At most one account is selected at a time; selecting a new one
// implicitly deselects the previous one.
type Selection struct {
	store   *Store
	log     *zap.Logger
	current string
}

// NewSelection constructs a Selection over the given store.
func NewSelection(store *Store, log *zap.Logger) *Selection {
	return &Selection{store: store, log: log}
}

// Select marks the account with the given ID as selected. Selecting an
// account that no longer exists is a stale reference: it is logged and
// ignored, leaving the current selection untouched.
func (s *Selection) Select(id string) {
	if _, ok := s.store.Get(id); !ok {
		s.log.Warn("select of missing account", zap.String("id", id))
		return
	}
	s.current = id
}

// DeselectAll clears the selection.
func (s *Selection) DeselectAll() {
	s.current = ""
}

// Current returns the selected account ID, if any.
func (s *Selection) Current() (string, bool) {
	return s.current, s.current != ""
}

// Invalidate clears the selection when the selected account was removed.
func (s *Selection) Invalidate(change models.Change) {
	if change.Kind == models.ChangeRemove && change.ID == s.current {
		s.current = ""
	}
}
