// Package tuner picks scrypt cost parameters (logN, r, p) from a memory/time
// budget, or validates an explicit triple against that same budget.
// Picocrypt-NG's Argon2id parameters are two fixed constant sets, never
// tuned from a live resource probe, so this package has no direct analog
// there; it follows Picocrypt-NG's package-per-concern style anyway: one
// small file, one exported entry point per responsibility, table-driven
// tests.
package tuner

import (
	"fmt"

	"github.com/daafuq/scryptenc/internal/errors"
)

// Budget is the advisory (maxmem, maxmemfrac, maxtime) triple passed in
// from the CLI flags. Zero values mean "unset".
type Budget struct {
	MaxMem     uint64  // bytes; 0 = no explicit cap
	MaxMemFrac float64 // fraction of physical memory in [0, 0.5]; 0 or >0.5 snaps to 0.5
	MaxTime    float64 // seconds; 0 = no time cap
}

// Params is a concrete scrypt cost triple.
type Params struct {
	LogN uint8
	R    uint32
	P    uint32
}

// minMemFloor is the smallest memory cap the Tuner will ever select,
// keeping the probe well-defined even on a budget-constrained host.
const minMemFloor = 1 << 20 // 1 MiB

const (
	logNFloor = 10
	logNCeil  = 40
)

// ClampMemFrac applies the maxmemfrac clamp: 0 (unset) or anything above
// 0.5 snaps to 0.5. MemLimit applies it; the CLI passes the raw -m value
// through, so the clamp lives in this one place.
func ClampMemFrac(frac float64) float64 {
	if frac <= 0 || frac > 0.5 {
		return 0.5
	}
	return frac
}

// MemLimit computes memlimit = min(nonzero of: maxmem, maxmemfrac *
// physicalMemory, availableMemory); if all three candidates are zero,
// memlimit = availableMemory. The result is floored at minMemFloor.
func MemLimit(b Budget, physicalMemory, availableMemory uint64) uint64 {
	frac := ClampMemFrac(b.MaxMemFrac)
	fracBytes := uint64(frac * float64(physicalMemory))

	candidates := make([]uint64, 0, 3)
	if b.MaxMem > 0 {
		candidates = append(candidates, b.MaxMem)
	}
	if fracBytes > 0 {
		candidates = append(candidates, fracBytes)
	}
	if availableMemory > 0 {
		candidates = append(candidates, availableMemory)
	}

	var limit uint64
	if len(candidates) == 0 {
		limit = availableMemory
	} else {
		limit = candidates[0]
		for _, c := range candidates[1:] {
			if c < limit {
				limit = c
			}
		}
	}

	if limit < minMemFloor {
		limit = minMemFloor
	}
	return limit
}

// OpsLimit computes opslimit = maxtime * scrypt_throughput. A zero MaxTime
// yields a zero limit, meaning "no time cap": exceedsOps treats a zero
// opslimit specially and never reports it as exceeded.
func OpsLimit(b Budget, throughput float64) uint64 {
	if b.MaxTime <= 0 {
		return 0
	}
	return uint64(b.MaxTime * throughput)
}

// WorkingSetSize returns scrypt's scratch memory footprint in bytes:
// 128 * r * 2^logN. Exported so info mode can report it as a diagnostic.
func WorkingSetSize(logN uint8, r uint32) uint64 {
	return 128 * uint64(r) << logN
}

// opCount returns scrypt's operation count: 4 * r * p * 2^logN.
func opCount(logN uint8, r, p uint32) uint64 {
	return 4 * uint64(r) * uint64(p) << logN
}

func exceedsMem(logN uint8, r uint32, memlimit uint64) bool {
	return WorkingSetSize(logN, r) > memlimit
}

func exceedsOps(logN uint8, r, p uint32, opslimit uint64) bool {
	if opslimit == 0 {
		return false
	}
	return opCount(logN, r, p) > opslimit
}

// Select picks r=8, p=1 and the largest feasible logN in [10,40] given
// memlimit and opslimit, for the encrypt path when no explicit parameters
// were given.
func Select(memlimit, opslimit uint64) Params {
	const r, p = 8, 1

	logN := uint8(logNFloor)
	for candidate := uint8(logNFloor); candidate <= logNCeil; candidate++ {
		if exceedsMem(candidate, r, memlimit) || exceedsOps(candidate, r, p, opslimit) {
			break
		}
		logN = candidate
	}
	return Params{LogN: logN, R: r, P: p}
}

// ValidateExplicit checks a caller-supplied (logN, r, p) against memlimit
// and opslimit, for the encrypt path. force bypasses both checks.
func ValidateExplicit(p Params, memlimit, opslimit uint64, force bool) error {
	if force {
		return nil
	}
	if exceedsMem(p.LogN, p.R, memlimit) {
		return errors.New(errors.EPARAM, "tuner.ValidateExplicit",
			fmt.Errorf("working set %d bytes exceeds memory limit %d bytes", WorkingSetSize(p.LogN, p.R), memlimit))
	}
	if exceedsOps(p.LogN, p.R, p.P, opslimit) {
		return errors.New(errors.EPARAM, "tuner.ValidateExplicit",
			fmt.Errorf("operation count %d exceeds time budget (opslimit %d)", opCount(p.LogN, p.R, p.P), opslimit))
	}
	return nil
}

// ValidateForDecrypt checks parameters parsed out of a header against
// memlimit and opslimit, for the decrypt path. force bypasses both checks.
func ValidateForDecrypt(p Params, memlimit, opslimit uint64, force bool) error {
	if force {
		return nil
	}
	if exceedsMem(p.LogN, p.R, memlimit) {
		return errors.New(errors.ETOOBIG, "tuner.ValidateForDecrypt",
			fmt.Errorf("working set %d bytes exceeds memory limit %d bytes", WorkingSetSize(p.LogN, p.R), memlimit))
	}
	if exceedsOps(p.LogN, p.R, p.P, opslimit) {
		return errors.New(errors.ETOOSLOW, "tuner.ValidateForDecrypt",
			fmt.Errorf("operation count %d exceeds time budget (opslimit %d)", opCount(p.LogN, p.R, p.P), opslimit))
	}
	return nil
}
