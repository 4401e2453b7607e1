// Package models defines the core data structures for accounts and
// catalog change descriptors.
package models

// CategoryOther is the distinguished fallback category. It always sorts
// after every real category in the category-ordered view.
const CategoryOther = "Other"

// DateLayout is the layout for full created dates ("MM/DD/YYYY").
// Year-only dates ("YYYY") are also accepted wherever dates appear.
const DateLayout = "01/02/2006"

// Account represents one credential record in the catalog.
type Account struct {
	// ID is the stable surrogate identifier, assigned at construction and
	// never changed. Store, selection, and edit lookups all go through it.
	ID string `json:"id"`
	// Name is the user-visible account name. Unique across the catalog at
	// any instant, but mutable; it is not an identity key.
	Name string `json:"name"`
	// Username is the login name for the account.
	Username string `json:"username"`
	// Password is the cipher-produced password text. Never plaintext at rest.
	Password string `json:"password"`
	// Category is a free-form grouping label; CategoryOther is the fallback.
	Category string `json:"category"`
	// Notes holds user-provided notes about the account.
	Notes string `json:"notes"`
	// CreatedDate is the creation date, either "MM/DD/YYYY" or "YYYY".
	CreatedDate string `json:"date"`
}

// Year returns the year of the created date as a string, such as "2023".
// The stored date is either "YYYY" or "MM/DD/YYYY", so the year is always
// the last four characters.
func (a Account) Year() string {
	if len(a.CreatedDate) < 4 {
		return a.CreatedDate
	}
	return a.CreatedDate[len(a.CreatedDate)-4:]
}

// ChangeKind identifies the kind of catalog mutation a Change describes.
type ChangeKind int

const (
	// ChangeAdd records a new account entering the catalog.
	ChangeAdd ChangeKind = iota
	// ChangeUpdate records field changes on an existing account.
	ChangeUpdate
	// ChangeRemove records an account leaving the catalog.
	ChangeRemove
)

// String returns the change kind as a short lowercase word.
func (k ChangeKind) String() string {
	switch k {
	case ChangeAdd:
		return "add"
	case ChangeUpdate:
		return "update"
	case ChangeRemove:
		return "remove"
	}
	return "unknown"
}

// Change describes one committed catalog mutation. Store mutations return
// a Change so that view, selection, and edit state can be invalidated
// explicitly instead of through back-references into the store.
type Change struct {
	// Kind is the mutation kind.
	Kind ChangeKind
	// ID is the surrogate ID of the affected account.
	ID string
	// Name is the account name after the mutation (the last known name
	// for ChangeRemove).
	Name string
}
