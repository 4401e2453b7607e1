package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/SamuelPGibson/PasswordManager/internal/cipher"
)

// Context carries the state of one unlocked session. It is constructed at
// login success and discarded at lockout, instead of living as ambient
// application state.
type Context struct {
	// Cipher is the session cipher, initialized with the session key.
	Cipher cipher.Cipher
	// StartedAt is the time the session was unlocked.
	StartedAt time.Time
	// Log is the session logger.
	Log *zap.Logger
}
