package cipher

import (
	"crypto/aes"
	gocipher "crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keySize    = 32
	iterations = 100_000
)

// rawSalt keys the session-independent raw transform. The raw variants are
// obfuscation for the stored master secret, not an encryption-strength
// guarantee; anyone with the binary can invert them.
var rawSalt = []byte("passwordmanager.raw.v1")

// ErrNotInitialized is returned by Encode/Decode before Initialize.
var ErrNotInitialized = errors.New("cipher: no session key initialized")

// AESGCM encodes credential text with AES-GCM under a key derived from the
// session key via PBKDF2/SHA-256. Encoded values are base64(nonce || sealed).
//
// If the session key entered at login is wrong, Initialize still succeeds:
// existing records fail to decode, and any record saved during that session
// is sealed under the wrong key and can never be recovered. That matches the
// long-standing behavior of the original catalog and is deliberately not
// papered over here.
type AESGCM struct {
	aead gocipher.AEAD
	raw  gocipher.AEAD
}

// NewAESGCM returns an AES-GCM cipher with only the raw transform keyed.
// Initialize must be called before Encode or Decode.
func NewAESGCM() (*AESGCM, error) {
	raw, err := newAEAD(deriveKey("", rawSalt))
	if err != nil {
		return nil, fmt.Errorf("key raw transform: %w", err)
	}
	return &AESGCM{raw: raw}, nil
}

func deriveKey(sessionKey string, salt []byte) []byte {
	return pbkdf2.Key([]byte(sessionKey), salt, iterations, keySize, sha256.New)
}

func newAEAD(key []byte) (gocipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return gocipher.NewGCM(block)
}

// Initialize derives the session AEAD from sessionKey. The key is not
// verified against anything; see the type comment.
func (c *AESGCM) Initialize(sessionKey string) {
	aead, err := newAEAD(deriveKey(sessionKey, []byte("passwordmanager.session.v1")))
	if err != nil {
		// aes.NewCipher only fails on a bad key length, which deriveKey
		// cannot produce.
		panic(err)
	}
	c.aead = aead
}

// Encode seals plaintext under the session key.
func (c *AESGCM) Encode(plaintext string) (string, error) {
	if c.aead == nil {
		return "", ErrNotInitialized
	}
	return seal(c.aead, plaintext)
}

// Decode opens ciphertext under the session key. Fails if the ciphertext
// was sealed under a different key.
func (c *AESGCM) Decode(ciphertext string) (string, error) {
	if c.aead == nil {
		return "", ErrNotInitialized
	}
	return open(c.aead, ciphertext)
}

// RawEncode seals text under the fixed raw key.
func (c *AESGCM) RawEncode(text string) (string, error) {
	return seal(c.raw, text)
}

// RawDecode opens text sealed with RawEncode.
func (c *AESGCM) RawDecode(text string) (string, error) {
	return open(c.raw, text)
}

func seal(aead gocipher.AEAD, plaintext string) (string, error) {
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	ct := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ct), nil
}

func open(aead gocipher.AEAD, encoded string) (string, error) {
	ct, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	if len(ct) < aead.NonceSize() {
		return "", errors.New("ciphertext shorter than nonce")
	}
	nonce, data := ct[:aead.NonceSize()], ct[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, data, nil)
	if err != nil {
		return "", fmt.Errorf("open ciphertext: %w", err)
	}
	return string(plain), nil
}
