package vault

import "fmt"

// DuplicateNameError reports an attempted create or rename that collides
// with an existing account name. The caller surfaces it as a blocking
// validation message.
type DuplicateNameError struct {
	// Name is the colliding account name.
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("account name %q already exists", e.Name)
}

// RecordNotFoundError reports an operation that referenced an account no
// longer in the store. It indicates a stale reference: callers log and
// absorb it rather than failing the session.
type RecordNotFoundError struct {
	// Ref is the ID or name that failed to resolve.
	Ref string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("account %q not found", e.Ref)
}

// IncompleteFieldError reports an empty required field at commit time.
// Field names the first empty field in the fixed evaluation order.
type IncompleteFieldError struct {
	// Field is the display label of the empty field.
	Field string
}

func (e *IncompleteFieldError) Error() string {
	return fmt.Sprintf("%s field is empty", e.Field)
}

// PersistError reports a persistence write that failed after the in-memory
// mutation was applied. The catalog keeps operating from its last-known-good
// in-memory state; the caller decides how to surface the failure.
type PersistError struct {
	// Err is the underlying save error.
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist catalog: %v", e.Err)
}

// Unwrap returns the underlying save error.
func (e *PersistError) Unwrap() error { return e.Err }
