package header

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"github.com/daafuq/scryptenc/internal/errors"
)

// Decode parses the first Size bytes of buf into a Header, verifying the
// magic tag and the truncated checksum. It does not verify the HMAC tag
// (bytes[64:96)) since that requires a passphrase-derived key the caller
// may not have yet. Callers that have a key must separately call
// VerifyHMAC.
func Decode(buf []byte) (*Header, error) {
	if len(buf) < Size {
		return nil, errors.New(errors.EINVAL, "header.Decode", fmt.Errorf("truncated header: got %d bytes, want %d", len(buf), Size))
	}
	if !hasMagic(buf) {
		return nil, errors.New(errors.EINVAL, "header.Decode", fmt.Errorf("bad magic"))
	}

	sum := sha256.Sum256(buf[:offChecksum])
	if subtle.ConstantTimeCompare(sum[:checksumSize], buf[offChecksum:offChecksum+checksumSize]) != 1 {
		return nil, errors.New(errors.EINVAL, "header.Decode", fmt.Errorf("header checksum mismatch"))
	}

	h := &Header{
		Version: buf[offVersion],
		LogN:    buf[offLogN],
		R:       getUint32(buf[offR : offR+4]),
		P:       getUint32(buf[offP : offP+4]),
	}
	copy(h.Salt[:], buf[offSalt:offSalt+saltSize])

	if h.Version != Version {
		return nil, errors.New(errors.EVERSION, "header.Decode", fmt.Errorf("unsupported version %d", h.Version))
	}

	return h, nil
}
