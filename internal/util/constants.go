// Package util provides small stateless helpers shared across scryptenc:
// byte-size constants and human-readable size formatting for diagnostics,
// plus a buffer pool used by the stream codec to cut GC pressure on large
// files.
package util

// Size constants for byte calculations.
const (
	KiB = 1 << 10 // 1024
	MiB = 1 << 20 // 1,048,576
	GiB = 1 << 30 // 1,073,741,824
	TiB = 1 << 40 // 1,099,511,627,776
)
