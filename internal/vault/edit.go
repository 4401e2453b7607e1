package vault

import (
	"errors"

	"go.uber.org/zap"

	"github.com/SamuelPGibson/PasswordManager/internal/cipher"
	"github.com/SamuelPGibson/PasswordManager/internal/models"
)

// EditState is the edit session's position in its state machine.
type EditState int

const (
	// StateEmpty means no record is loaded.
	StateEmpty EditState = iota
	// StateViewing means a record is loaded with read-only fields.
	StateViewing
	// StateEditing means the loaded record's field buffers are writable.
	StateEditing
)

// ErrNotEditing is returned by Commit outside the Editing state.
var ErrNotEditing = errors.New("no edit in progress")

// Fields holds the edit session's field buffers. The password buffer is
// plaintext; it is passed through the cipher on commit.
type Fields struct {
	Name     string
	Username string
	Password string
	Category string
	Notes    string
}

// fieldLabels is the fixed evaluation order for commit validation.
var fieldLabels = []string{"Account Name", "Username", "Password", "Category", "Notes"}

// EditSession holds the record currently loaded for editing, tracks
// unsaved-change state against the store, and commits changes back through
// Store.Update.
type EditSession struct {
	store  *Store
	cipher cipher.Cipher
	log    *zap.Logger
	state  EditState
	id     string
	buf    Fields
}

// NewEditSession constructs an empty edit session.
func NewEditSession(store *Store, c cipher.Cipher, log *zap.Logger) *EditSession {
	return &EditSession{store: store, cipher: c, log: log}
}

// State returns the session's current state.
func (e *EditSession) State() EditState {
	return e.state
}

// LoadedID returns the loaded record's surrogate ID, if any.
func (e *EditSession) LoadedID() (string, bool) {
	return e.id, e.state != StateEmpty
}

// Fields returns a copy of the current field buffers.
func (e *EditSession) Fields() Fields {
	return e.buf
}

// Load loads the record with the given ID for viewing, from any state.
// Unsaved edits of a previously loaded record are discarded without
// confirmation; guarding against that is the caller's concern.
func (e *EditSession) Load(id string) error {
	rec, ok := e.store.Get(id)
	if !ok {
		return &RecordNotFoundError{Ref: id}
	}
	e.id = id
	e.state = StateViewing
	e.buf = Fields{
		Name:     rec.Name,
		Username: rec.Username,
		Password: e.decodePassword(rec),
		Category: rec.Category,
		Notes:    rec.Notes,
	}
	return nil
}

// BeginEdit makes the field buffers writable. No-op unless a record is
// loaded; no-op if already editing.
func (e *EditSession) BeginEdit() {
	if e.state == StateViewing {
		e.state = StateEditing
	}
}

// SetName updates the name buffer while editing.
func (e *EditSession) SetName(v string) { e.set(&e.buf.Name, v) }

// SetUsername updates the username buffer while editing.
func (e *EditSession) SetUsername(v string) { e.set(&e.buf.Username, v) }

// SetPassword updates the plaintext password buffer while editing.
func (e *EditSession) SetPassword(v string) { e.set(&e.buf.Password, v) }

// SetCategory updates the category buffer while editing.
func (e *EditSession) SetCategory(v string) { e.set(&e.buf.Category, v) }

// SetNotes updates the notes buffer while editing.
func (e *EditSession) SetNotes(v string) { e.set(&e.buf.Notes, v) }

func (e *EditSession) set(buf *string, v string) {
	if e.state != StateEditing {
		return
	}
	*buf = v
}

// IsDirty compares each field buffer against the loaded record's current
// value. Always false when no record is loaded.
func (e *EditSession) IsDirty() bool {
	if e.state == StateEmpty {
		return false
	}
	rec, ok := e.store.Get(e.id)
	if !ok {
		return false
	}
	return e.buf.Name != rec.Name ||
		e.buf.Username != rec.Username ||
		e.buf.Password != e.decodePassword(rec) ||
		e.buf.Category != rec.Category ||
		e.buf.Notes != rec.Notes
}

// Commit validates and saves the field buffers. Valid only while editing.
//
// Every buffer must be non-empty; the first empty one, in fixed order,
// fails the commit with an IncompleteFieldError and the session stays in
// Editing. A rename colliding with another account surfaces the store's
// DuplicateNameError the same way. A clean (non-dirty) commit transitions
// to Viewing without a store write. A PersistError from the store means
// the in-memory update succeeded; the session still transitions to
// Viewing and the error is passed up for surfacing.
func (e *EditSession) Commit() (models.Change, error) {
	if e.state != StateEditing {
		return models.Change{}, ErrNotEditing
	}
	for i, v := range []string{e.buf.Name, e.buf.Username, e.buf.Password, e.buf.Category, e.buf.Notes} {
		if v == "" {
			return models.Change{}, &IncompleteFieldError{Field: fieldLabels[i]}
		}
	}

	if !e.IsDirty() {
		e.state = StateViewing
		return models.Change{}, nil
	}

	rec, ok := e.store.Get(e.id)
	if !ok {
		return models.Change{}, &RecordNotFoundError{Ref: e.id}
	}
	encoded, err := e.cipher.Encode(e.buf.Password)
	if err != nil {
		return models.Change{}, err
	}
	rec.Name = e.buf.Name
	rec.Username = e.buf.Username
	rec.Password = encoded
	rec.Category = e.buf.Category
	rec.Notes = e.buf.Notes

	change, err := e.store.Update(e.id, rec)
	if err != nil {
		var persist *PersistError
		if errors.As(err, &persist) {
			e.state = StateViewing
			return change, err
		}
		// Validation failure: the update did not apply, stay editing.
		return models.Change{}, err
	}
	e.state = StateViewing
	return change, nil
}

// Unload returns the session to Empty from any state, discarding buffers.
func (e *EditSession) Unload() {
	e.state = StateEmpty
	e.id = ""
	e.buf = Fields{}
}

// Invalidate unloads the session when the loaded record was removed from
// the store.
func (e *EditSession) Invalidate(change models.Change) {
	if change.Kind == models.ChangeRemove && e.state != StateEmpty && change.ID == e.id {
		e.Unload()
	}
}

// decodePassword returns the record's password decoded under the session
// cipher. A record sealed under a different session key cannot be decoded;
// the stored text is returned as-is so the session stays usable, and the
// condition is logged.
func (e *EditSession) decodePassword(rec models.Account) string {
	if rec.Password == "" {
		return ""
	}
	plain, err := e.cipher.Decode(rec.Password)
	if err != nil {
		e.log.Warn("password not decodable under current session key",
			zap.String("name", rec.Name), zap.Error(err))
		return rec.Password
	}
	return plain
}
