// Package crypto provides the cryptographic primitives scryptenc's session
// orchestrator composes: scrypt key derivation, secure zeroing of key
// material, and the AES-256-CTR + HMAC-SHA-256 stream codec.
//
// This is AUDIT-CRITICAL code - changes here directly affect the wire format.
package crypto

import (
	"bytes"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/scrypt"

	"github.com/daafuq/scryptenc/internal/errors"
)

// RandomBytes generates n cryptographically secure random bytes, used for
// the header salt.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, errors.New(errors.ESALT, "crypto/rand", err)
	}

	allZero := true
	for _, v := range b {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return nil, errors.New(errors.ESALT, "crypto/rand", fmt.Errorf("produced zero bytes"))
	}

	return b, nil
}

// DerivedKeySize is the length of the scrypt output block (dkLen), split
// into EncKeySize bytes of AES-256-CTR key followed by HmacKeySize bytes of
// HMAC-SHA-256 key.
const (
	DerivedKeySize = 64
	EncKeySize     = 32
	HmacKeySize    = 32
)

// Subkeys holds the two keys derived from a single scrypt call.
type Subkeys struct {
	EncKey  []byte // AES-256-CTR key
	HmacKey []byte // HMAC-SHA-256 key
}

// Zero wipes both subkeys. Safe to call more than once.
func (s *Subkeys) Zero() {
	if s == nil {
		return
	}
	SecureZeroMultiple(s.EncKey, s.HmacKey)
	s.EncKey = nil
	s.HmacKey = nil
}

// DeriveKeys runs scrypt(passphrase, salt, N=2^logN, r, p, dkLen=64) and
// splits the result into the encryption and HMAC subkeys.
//
// CRITICAL: this exact parameterization (dkLen, byte split) is the wire
// format; changing it makes every existing ciphertext undecryptable.
func DeriveKeys(passphrase, salt []byte, logN uint8, r, p uint32) (*Subkeys, error) {
	n := uint64(1) << logN

	block, err := scrypt.Key(passphrase, salt, int(n), int(r), int(p), DerivedKeySize)
	if err != nil {
		return nil, errors.New(errors.EKEY, "scrypt", err)
	}

	if bytes.Equal(block, make([]byte, DerivedKeySize)) {
		SecureZero(block)
		return nil, errors.New(errors.EKEY, "scrypt", fmt.Errorf("produced zero-value key block"))
	}

	keys := &Subkeys{
		EncKey:  append([]byte(nil), block[:EncKeySize]...),
		HmacKey: append([]byte(nil), block[EncKeySize:DerivedKeySize]...),
	}
	SecureZero(block)
	return keys, nil
}
