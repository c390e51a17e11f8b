package util

import "sync"

// mibPool holds reusable 1 MiB buffers for the stream codec, the only
// buffer size scryptenc's encrypt/decrypt loop ever needs.
var mibPool = sync.Pool{
	New: func() any {
		b := make([]byte, MiB)
		return &b
	},
}

// GetMiBBuffer retrieves a 1 MiB buffer from the pool. Its contents are
// undefined and must be overwritten before use.
func GetMiBBuffer() []byte {
	return *mibPool.Get().(*[]byte)
}

// PutMiBBuffer zeroes b and returns it to the pool. b must be a buffer
// obtained from GetMiBBuffer and must not be used again afterward.
func PutMiBBuffer(b []byte) {
	if len(b) != MiB {
		return
	}
	for i := range b {
		b[i] = 0
	}
	mibPool.Put(&b)
}
