package header

import (
	"crypto/hmac"
	"crypto/sha256"
)

// headerTag computes HMAC-SHA-256(hmacKey, data).
func headerTag(hmacKey, data []byte) []byte {
	mac := hmac.New(sha256.New, hmacKey)
	mac.Write(data)
	return mac.Sum(nil)
}

// VerifyHMAC reports whether buf[64:96) is the correct HMAC-SHA-256 tag of
// buf[0:64) under hmacKey, in constant time. A false result means the
// passphrase (and therefore the derived hmacKey) was wrong, since the
// checksum already rules out corruption or non-header input by the time
// this is called.
func VerifyHMAC(buf, hmacKey []byte) bool {
	if len(buf) < Size {
		return false
	}
	want := headerTag(hmacKey, buf[:offHMAC])
	return hmac.Equal(want, buf[offHMAC:offHMAC+hmacSize])
}
