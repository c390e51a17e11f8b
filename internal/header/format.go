// Package header encodes and decodes scryptenc's 96-byte file header: the
// fixed preamble that carries the scrypt parameters and salt needed to
// re-derive the subkeys, protected by a truncated checksum and an HMAC
// tag. This is the one wire format scryptenc supports: no volume or
// container fields, no Reed-Solomon parity.
package header

import (
	"bytes"
	"fmt"

	"github.com/daafuq/scryptenc/internal/errors"
)

// Size is the total length of the encoded header in bytes.
const Size = 96

// Byte offsets within the 96-byte header.
const (
	offMagic     = 0  // "scrypt" (6 bytes)
	offVersion   = 6  // 1 byte
	offLogN      = 7  // 1 byte
	offR         = 8  // 4 bytes, big-endian
	offP         = 12 // 4 bytes, big-endian
	offSalt      = 16 // 32 bytes
	offChecksum  = 48 // 16 bytes: SHA-256(header[0:48])[0:16]
	offHMAC      = 64 // 32 bytes: HMAC-SHA-256(hmacKey, header[0:64])
	saltSize     = 32
	checksumSize = 16
	hmacSize     = 32
)

// Magic is the fixed 6-byte tag every valid header begins with.
var Magic = [6]byte{'s', 'c', 'r', 'y', 'p', 't'}

// Version is the only header version this implementation produces or
// accepts.
const Version = 0

// Header is the parsed form of the 96-byte preamble.
type Header struct {
	Version uint8
	LogN    uint8
	R       uint32
	P       uint32
	Salt    [saltSize]byte
}

// Validate checks the structural constraints on a Header's fields,
// independent of any resource budget: logN in [10,40], r,p >= 1, and
// r*p < 2^30.
func (h *Header) Validate() error {
	if h.Version != Version {
		return errors.New(errors.EVERSION, "header.Validate", fmt.Errorf("unsupported version %d", h.Version))
	}
	if h.LogN < 10 || h.LogN > 40 {
		return errors.New(errors.EINVAL, "header.Validate", fmt.Errorf("logN %d out of range [10,40]", h.LogN))
	}
	if h.R == 0 || h.P == 0 {
		return errors.New(errors.EINVAL, "header.Validate", fmt.Errorf("r and p must be >= 1"))
	}
	if uint64(h.R)*uint64(h.P) >= 1<<30 {
		return errors.New(errors.EINVAL, "header.Validate", fmt.Errorf("r*p must be < 2^30"))
	}
	return nil
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func getUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func hasMagic(b []byte) bool {
	return bytes.Equal(b[offMagic:offMagic+len(Magic)], Magic[:])
}
