// Package generate produces random passwords from selectable character
// classes.
package generate

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Character classes offered by the generator.
const (
	Uppercase   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase   = "abcdefghijklmnopqrstuvwxyz"
	Digits      = "0123456789"
	Punctuation = `!#$%&'()*+-./?@[\]^_}{~`
)

// ErrNoCharacters is returned when every character class is disabled.
var ErrNoCharacters = errors.New("no characters selected")

// Options selects the character classes and the length range to draw from.
type Options struct {
	MinLength int
	MaxLength int
	Upper     bool
	Lower     bool
	Digits    bool
	Punct     bool
}

// DefaultOptions enables every class with a 15-30 character length range.
func DefaultOptions() Options {
	return Options{MinLength: 15, MaxLength: 30, Upper: true, Lower: true, Digits: true, Punct: true}
}

// Password generates a random password per opts using crypto/rand. The
// length is drawn uniformly from [MinLength, MaxLength].
func Password(opts Options) (string, error) {
	var charset string
	if opts.Upper {
		charset += Uppercase
	}
	if opts.Lower {
		charset += Lowercase
	}
	if opts.Digits {
		charset += Digits
	}
	if opts.Punct {
		charset += Punctuation
	}
	if charset == "" {
		return "", ErrNoCharacters
	}
	if opts.MinLength < 1 || opts.MaxLength < opts.MinLength {
		return "", fmt.Errorf("invalid length range %d-%d", opts.MinLength, opts.MaxLength)
	}

	span, err := rand.Int(rand.Reader, big.NewInt(int64(opts.MaxLength-opts.MinLength+1)))
	if err != nil {
		return "", fmt.Errorf("draw length: %w", err)
	}
	length := opts.MinLength + int(span.Int64())

	out := make([]byte, length)
	max := big.NewInt(int64(len(charset)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("draw character: %w", err)
		}
		out[i] = charset[idx.Int64()]
	}
	return string(out), nil
}
