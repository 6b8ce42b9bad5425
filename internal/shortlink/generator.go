package shortlink

import "github.com/jaevor/go-nanoid"

// Alphabet is the 62-character set codes are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultCodeLength is the length of generated codes.
const DefaultCodeLength = 10

// Generator produces independent candidate codes. Candidates are not
// guaranteed unique; the engine retries on collision.
type Generator func() Code

// NewGenerator returns a generator of fixed-length codes drawn uniformly
// from Alphabet.
func NewGenerator(length int) (Generator, error) {
	gen, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, err
	}

	return func() Code {
		return Code(gen())
	}, nil
}
