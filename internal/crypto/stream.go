// This file implements the streaming encrypt-then-MAC codec: AES-256-CTR
// with a zero-initialized counter, combined with a running HMAC-SHA-256
// over the ciphertext. One key pair is derived per file, so there is no
// rekeying mechanism.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"hash"

	"github.com/daafuq/scryptenc/internal/errors"
)

// TagSize is the length of the final authentication tag appended to the
// ciphertext: HMAC-SHA-256 over the header bytes followed by all ciphertext.
const TagSize = 32

// StreamCodec runs AES-256-CTR over successive chunks of plaintext or
// ciphertext while feeding every ciphertext byte into a running HMAC. A
// single StreamCodec instance is one-directional and single-use: the
// session package creates one per encrypt or decrypt operation.
type StreamCodec struct {
	stream cipher.Stream
	mac    hash.Hash
}

// NewStreamCodec builds a codec from the subkeys and the 96 header bytes,
// which seed the running HMAC so the final tag authenticates the header as
// well as the payload.
func NewStreamCodec(keys *Subkeys, headerBytes []byte) (*StreamCodec, error) {
	block, err := aes.NewCipher(keys.EncKey)
	if err != nil {
		return nil, errors.New(errors.EKEY, "aes.NewCipher", err)
	}

	var iv [aes.BlockSize]byte // zero IV: safe because the key is single-use
	stream := cipher.NewCTR(block, iv[:])

	mac := hmac.New(sha256.New, keys.HmacKey)
	mac.Write(headerBytes)

	return &StreamCodec{stream: stream, mac: mac}, nil
}

// EncryptChunk XORs src into dst (may alias) and feeds the resulting
// ciphertext into the running MAC. len(dst) must equal len(src).
func (c *StreamCodec) EncryptChunk(dst, src []byte) {
	c.stream.XORKeyStream(dst, src)
	c.mac.Write(dst)
}

// DecryptChunk feeds src (ciphertext) into the running MAC, then XORs it
// into dst. Call Sum and verify the tag before trusting the plaintext.
func (c *StreamCodec) DecryptChunk(dst, src []byte) {
	c.mac.Write(src)
	c.stream.XORKeyStream(dst, src)
}

// Sum returns the running tag over everything absorbed so far. It does not
// change the MAC state; callers take it once, after the last chunk, and
// treat the codec as done afterward.
func (c *StreamCodec) Sum() []byte {
	return c.mac.Sum(nil)
}

// VerifyTag compares got against the codec's current running tag in
// constant time.
func (c *StreamCodec) VerifyTag(got []byte) bool {
	return hmac.Equal(c.Sum(), got)
}

// Zero resets the running MAC once the codec is done being used, dropping
// the absorbed header and ciphertext state. Reset returns an HMAC to its
// freshly keyed state, so the key-derived pads it holds are not wiped.
func (c *StreamCodec) Zero() {
	SecureZeroHash(c.mac)
}
