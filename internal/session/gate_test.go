package session

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/SamuelPGibson/PasswordManager/internal/cipher"
)

// recordingCipher is the no-op cipher plus a record of Initialize calls.
type recordingCipher struct {
	cipher.Nop
	key   string
	inits int
}

func (c *recordingCipher) Initialize(key string) {
	c.key = key
	c.inits++
}

func newTestGate(maxAttempts int) (*Gate, *recordingCipher) {
	c := &recordingCipher{}
	// Nop raw-decodes to the identity, so the stored secret is the
	// master password itself.
	return NewGate(c, "master", maxAttempts, zap.NewNop()), c
}

func TestAttempt_Success(t *testing.T) {
	gate, c := newTestGate(5)

	ctx, err := gate.Attempt("master", "sessionkey")
	if err != nil {
		t.Fatalf("Attempt returned error: %v", err)
	}
	if ctx == nil {
		t.Fatal("expected a session context")
	}
	if gate.State() != StateUnlocked {
		t.Errorf("state = %v; want Unlocked", gate.State())
	}
	if c.inits != 1 || c.key != "sessionkey" {
		t.Errorf("cipher initialized %d times with key %q; want once with %q", c.inits, c.key, "sessionkey")
	}
	if gate.AttemptsRemaining() != 5 {
		t.Errorf("attempts remaining = %d; want reset to 5", gate.AttemptsRemaining())
	}
}

func TestAttempt_WrongPassword(t *testing.T) {
	gate, c := newTestGate(5)

	_, err := gate.Attempt("wrong", "sessionkey")
	if !errors.Is(err, ErrLoginFailure) {
		t.Fatalf("error = %v; want ErrLoginFailure", err)
	}
	if gate.State() != StateLocked {
		t.Errorf("state = %v; want Locked", gate.State())
	}
	if c.inits != 0 {
		t.Errorf("cipher must not be initialized on failure")
	}
}

func TestAttempt_EmptyKeyFailsGenerically(t *testing.T) {
	gate, _ := newTestGate(5)

	_, err := gate.Attempt("master", "")
	// The error never reveals which of password/key was wrong.
	if !errors.Is(err, ErrLoginFailure) {
		t.Fatalf("error = %v; want ErrLoginFailure", err)
	}
}

func TestAttempt_ExhaustionOnFifthFailure(t *testing.T) {
	gate, _ := newTestGate(5)

	for i := 1; i <= 4; i++ {
		_, err := gate.Attempt("wrong", "k")
		if !errors.Is(err, ErrLoginFailure) {
			t.Fatalf("attempt %d: error = %v; want ErrLoginFailure", i, err)
		}
		if gate.State() != StateLocked {
			t.Fatalf("attempt %d: state = %v; want still Locked", i, gate.State())
		}
	}

	_, err := gate.Attempt("wrong", "k")
	if !errors.Is(err, ErrLockoutExhausted) {
		t.Fatalf("5th attempt: error = %v; want ErrLockoutExhausted", err)
	}
	if gate.State() != StateExhausted {
		t.Errorf("state = %v; want Exhausted", gate.State())
	}

	// Exhausted is terminal.
	if _, err := gate.Attempt("master", "k"); err == nil {
		t.Error("Attempt on exhausted gate must fail")
	}
	if err := gate.Reset(); err == nil {
		t.Error("Reset on exhausted gate must fail")
	}
}

func TestAttempt_FailureCounterResetOnSuccess(t *testing.T) {
	gate, _ := newTestGate(5)

	_, _ = gate.Attempt("wrong", "k")
	_, _ = gate.Attempt("wrong", "k")
	if _, err := gate.Attempt("master", "k"); err != nil {
		t.Fatalf("Attempt returned error: %v", err)
	}

	// Re-lock and verify the counter starts fresh.
	gate.Lock()
	if gate.State() != StateLocked {
		t.Fatalf("state = %v; want Locked after Lock", gate.State())
	}
	if gate.AttemptsRemaining() != 5 {
		t.Errorf("attempts remaining = %d; want 5", gate.AttemptsRemaining())
	}
}

func TestReset_OnlyWhileLocked(t *testing.T) {
	gate, _ := newTestGate(5)

	_, _ = gate.Attempt("wrong", "k")
	if err := gate.Reset(); err != nil {
		t.Fatalf("Reset while locked returned error: %v", err)
	}
	if gate.AttemptsRemaining() != 5 {
		t.Errorf("attempts remaining = %d; want 5 after reset", gate.AttemptsRemaining())
	}

	if _, err := gate.Attempt("master", "k"); err != nil {
		t.Fatalf("Attempt returned error: %v", err)
	}
	if err := gate.Reset(); err == nil {
		t.Error("Reset while unlocked must fail")
	}
}
