package tuner

import (
	"fmt"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/mem"
	"golang.org/x/crypto/scrypt"

	"github.com/daafuq/scryptenc/internal/errors"
)

// Probe reports the resource facts the Tuner needs: physical/available
// memory and scrypt throughput on this host.
type Probe struct {
	mu         sync.Mutex
	throughput float64 // ops/sec, 0 until measured
}

// NewProbe returns a Probe with its own idempotent throughput cache. Most
// callers share a single process-wide Probe (see Default) so the
// throughput benchmark runs at most once per process.
func NewProbe() *Probe {
	return &Probe{}
}

var defaultProbe = NewProbe()

// Default returns the process-wide Probe instance.
func Default() *Probe { return defaultProbe }

// Memory reports (physical, available) bytes of RAM. gopsutil's
// VirtualMemory gives both in one syscall; if the platform can only report
// total, Available falls back to a fraction of Total inside gopsutil
// itself, so a single read already prefers OS-reported available memory
// and degrades gracefully when only total is available.
func (pr *Probe) Memory() (physical, available uint64, err error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, errors.New(errors.ELIMIT, "tuner.Probe.Memory", err)
	}
	if vm.Total == 0 {
		return 0, 0, errors.New(errors.ELIMIT, "tuner.Probe.Memory", fmt.Errorf("reported zero total memory"))
	}
	return vm.Total, vm.Available, nil
}

// benchLogN is the small fixed cost used to time a single scrypt call.
// benchNoiseFloor is the minimum elapsed duration the measurement must
// clear before it's trusted; below that, the cost is raised and the
// measurement retried.
const (
	benchLogN       = 14
	benchR          = 8
	benchP          = 1
	benchNoiseFloor = 5 * time.Millisecond
	benchMaxLogN    = 22
)

// Throughput estimates scrypt ops/sec by timing one small-cost invocation
// and extrapolating, caching the result for the lifetime of the Probe.
func (pr *Probe) Throughput() (float64, error) {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	if pr.throughput > 0 {
		return pr.throughput, nil
	}

	logN := uint8(benchLogN)
	for {
		n := uint64(1) << logN
		start := time.Now()
		_, err := scrypt.Key([]byte("throughput-probe"), []byte("00000000000000000000000000000000"), int(n), benchR, benchP, 32)
		elapsed := time.Since(start)
		if err != nil {
			return 0, errors.New(errors.ECLOCK, "tuner.Probe.Throughput", err)
		}

		if elapsed >= benchNoiseFloor || logN >= benchMaxLogN {
			ops := float64(4 * benchR * benchP) * float64(n)
			pr.throughput = ops / elapsed.Seconds()
			return pr.throughput, nil
		}
		logN++
	}
}
