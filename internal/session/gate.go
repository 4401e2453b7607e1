// Package session implements the session lifecycle around the catalog:
// the login gate with bounded attempts, the inactivity timer, and the
// per-session context built at login success.
package session

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/SamuelPGibson/PasswordManager/internal/cipher"
)

// GateState is the login gate's position in its state machine.
type GateState int

const (
	// StateLocked means the catalog is gated behind the master credentials.
	StateLocked GateState = iota
	// StateUnlocked means the session is open.
	StateUnlocked
	// StateExhausted means the attempt threshold was reached. Terminal and
	// destructive: the session must be torn down.
	StateExhausted
)

// ErrLoginFailure reports wrong credentials. It is deliberately generic and
// never reveals whether the password or the key was at fault.
var ErrLoginFailure = errors.New("incorrect credentials")

// ErrLockoutExhausted reports that the failed-attempt threshold was reached.
// Fatal to the session.
var ErrLockoutExhausted = errors.New("login attempts exhausted")

// errNotLocked guards gate operations that are only valid while locked.
var errNotLocked = errors.New("gate is not locked")

// Gate verifies master credentials, counts failed attempts, and triggers
// lockout at the configured threshold.
type Gate struct {
	cipher cipher.Cipher
	// secret is the raw-encoded master password; attempts are checked
	// against its raw-decoded value, before any session key exists.
	secret      string
	maxAttempts int
	attempts    int
	state       GateState
	log         *zap.Logger
}

// NewGate constructs a locked gate. rawSecret is the raw-encoded master
// password; maxAttempts failed attempts transition the gate to Exhausted.
func NewGate(c cipher.Cipher, rawSecret string, maxAttempts int, log *zap.Logger) *Gate {
	return &Gate{
		cipher:      c,
		secret:      rawSecret,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// State returns the gate's current state.
func (g *Gate) State() GateState {
	return g.state
}

// AttemptsRemaining returns how many failed attempts are left before
// exhaustion.
func (g *Gate) AttemptsRemaining() int {
	return g.maxAttempts - g.attempts
}

// Attempt verifies the master password and session key. On success the
// gate unlocks, the attempt counter resets, the cipher is initialized with
// key for the remainder of the session, and a session Context is returned.
//
// On failure the attempt counter increments and ErrLoginFailure is
// returned; once the counter reaches the threshold the gate transitions to
// Exhausted and returns ErrLockoutExhausted instead.
//
// The session key itself is not verifiable: a wrong key still unlocks the
// gate, existing records just fail to decode. Records saved during such a
// session are encoded under the wrong key and cannot be recovered.
func (g *Gate) Attempt(password, key string) (*Context, error) {
	if g.state != StateLocked {
		return nil, errNotLocked
	}

	master, err := g.cipher.RawDecode(g.secret)
	if err != nil || password != master || key == "" {
		g.attempts++
		if g.attempts >= g.maxAttempts {
			g.state = StateExhausted
			g.log.Warn("login attempts exhausted", zap.Int("attempts", g.attempts))
			return nil, ErrLockoutExhausted
		}
		g.log.Info("failed login attempt",
			zap.Int("attempts", g.attempts), zap.Int("remaining", g.AttemptsRemaining()))
		return nil, ErrLoginFailure
	}

	g.state = StateUnlocked
	g.attempts = 0
	g.cipher.Initialize(key)
	g.log.Info("session unlocked")
	return &Context{Cipher: g.cipher, StartedAt: time.Now(), Log: g.log}, nil
}

// Reset clears the attempt counter. Valid only while Locked; it is used
// when re-entering the lock screen after an inactivity lockout, never
// after exhaustion.
func (g *Gate) Reset() error {
	if g.state != StateLocked {
		return errNotLocked
	}
	g.attempts = 0
	return nil
}

// Lock returns an unlocked gate to Locked. Called on inactivity lockout;
// an Exhausted gate stays exhausted.
func (g *Gate) Lock() {
	if g.state == StateUnlocked {
		g.state = StateLocked
		g.log.Info("session locked")
	}
}
