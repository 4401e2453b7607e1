// Package cipher defines the credential transform used by the catalog and
// provides two implementations: a no-op placeholder and an AES-GCM cipher
// keyed by the session key.
//
// The raw variants are independent of the session key. They exist solely so
// the login gate can verify the master password before any session key has
// been entered.
package cipher

// Cipher transforms credential text under a session key.
type Cipher interface {
	// Initialize keys the cipher with the session key for the remainder of
	// the session. Encode and Decode are undefined before the first call.
	Initialize(sessionKey string)
	// Encode encodes plaintext under the session key.
	Encode(plaintext string) (string, error)
	// Decode decodes ciphertext under the last Initialized session key.
	Decode(ciphertext string) (string, error)
	// RawEncode encodes text independent of the session key.
	RawEncode(text string) (string, error)
	// RawDecode decodes text independent of the session key.
	RawDecode(text string) (string, error)
}

// Nop is the placeholder cipher: every transform is the identity, matching
// a catalog that stores credential text as-is.
type Nop struct{}

// NewNop returns the placeholder cipher.
func NewNop() *Nop { return &Nop{} }

// Initialize is a no-op.
func (n *Nop) Initialize(string) {}

// Encode returns plaintext unchanged.
func (n *Nop) Encode(plaintext string) (string, error) { return plaintext, nil }

// Decode returns ciphertext unchanged.
func (n *Nop) Decode(ciphertext string) (string, error) { return ciphertext, nil }

// RawEncode returns text unchanged.
func (n *Nop) RawEncode(text string) (string, error) { return text, nil }

// RawDecode returns text unchanged.
func (n *Nop) RawDecode(text string) (string, error) { return text, nil }
