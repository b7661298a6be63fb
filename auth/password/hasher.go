// Package password provides salted password derivation and verification.
//
// Credentials are stored as a (salt, hash) pair, both hex-encoded. The
// derivation parameters are frozen: PBKDF2 over SHA-512, 100000
// iterations, 512-byte derived key, 16-byte random salt. Changing any of
// them invalidates every stored credential, so treat them as part of the
// storage format.
package password

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Credential is a stored password: a random per-identity salt and the
// key derived from (plaintext, salt). The plaintext is never retained.
type Credential struct {
	Salt string
	Hash string
}

// IsSet reports whether a password has ever been set.
func (c Credential) IsSet() bool {
	return c.Salt != "" && c.Hash != ""
}

// Hasher derives and verifies password credentials.
type Hasher interface {
	// Hash generates a fresh salt and derives a credential from plaintext.
	Hash(plaintext string) (Credential, error)

	// Verify re-derives with the stored salt and compares against the
	// stored hash. A wrong password returns false, never an error;
	// a credential with no salt also verifies false.
	Verify(plaintext string, cred Credential) bool
}

// PBKDF2Hasher implements Hasher with the frozen PBKDF2-SHA512 parameters.
type PBKDF2Hasher struct {
	iterations int
	keyLength  int
	saltLength int
}

// Option configures the PBKDF2 hasher.
type Option func(*PBKDF2Hasher)

// WithIterations overrides the iteration count. Only lower it in tests.
func WithIterations(n int) Option {
	return func(h *PBKDF2Hasher) {
		if n > 0 {
			h.iterations = n
		}
	}
}

// NewPBKDF2Hasher creates a hasher with the production parameters.
func NewPBKDF2Hasher(opts ...Option) *PBKDF2Hasher {
	h := &PBKDF2Hasher{
		iterations: 100000,
		keyLength:  512,
		saltLength: 16,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *PBKDF2Hasher) Hash(plaintext string) (Credential, error) {
	salt := make([]byte, h.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return Credential{}, fmt.Errorf("password: generate salt: %w", err)
	}

	derived := pbkdf2.Key([]byte(plaintext), salt, h.iterations, h.keyLength, sha512.New)

	return Credential{
		Salt: hex.EncodeToString(salt),
		Hash: hex.EncodeToString(derived),
	}, nil
}

func (h *PBKDF2Hasher) Verify(plaintext string, cred Credential) bool {
	if !cred.IsSet() {
		return false
	}

	salt, err := hex.DecodeString(cred.Salt)
	if err != nil {
		return false
	}
	stored, err := hex.DecodeString(cred.Hash)
	if err != nil {
		return false
	}

	derived := pbkdf2.Key([]byte(plaintext), salt, h.iterations, len(stored), sha512.New)
	return subtle.ConstantTimeCompare(derived, stored) == 1
}
