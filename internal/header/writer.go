package header

import "crypto/sha256"

// Encode assembles a Header and an HMAC key into the 96-byte wire form:
// bytes[0:48) carry the fields, bytes[48:64) carry a truncated SHA-256
// checksum of bytes[0:48), and bytes[64:96) carry an HMAC-SHA-256 of
// bytes[0:64) under hmacKey.
func Encode(h *Header, hmacKey []byte) []byte {
	buf := make([]byte, Size)

	copy(buf[offMagic:], Magic[:])
	buf[offVersion] = h.Version
	buf[offLogN] = h.LogN
	putUint32(buf[offR:offR+4], h.R)
	putUint32(buf[offP:offP+4], h.P)
	copy(buf[offSalt:offSalt+saltSize], h.Salt[:])

	sum := sha256.Sum256(buf[:offChecksum])
	copy(buf[offChecksum:offChecksum+checksumSize], sum[:checksumSize])

	tag := headerTag(hmacKey, buf[:offHMAC])
	copy(buf[offHMAC:offHMAC+hmacSize], tag)

	return buf
}
