package tuner

import (
	"testing"

	"github.com/daafuq/scryptenc/internal/errors"
)

func TestClampMemFrac(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0.5},
		{-1, 0.5},
		{0.5, 0.5},
		{0.6, 0.5},
		{0.25, 0.25},
	}
	for _, tc := range cases {
		if got := ClampMemFrac(tc.in); got != tc.want {
			t.Errorf("ClampMemFrac(%v) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestMemLimitPrefersSmallestNonzero(t *testing.T) {
	b := Budget{MaxMem: 10 * 1 << 20, MaxMemFrac: 0.1}
	got := MemLimit(b, 1<<30, 1<<29) // physical 1GiB, available 512MiB
	// fracBytes = 0.1 * 1GiB = ~107MB; maxmem = 10MiB; available = 512MiB
	// smallest nonzero candidate is maxmem (10MiB)
	want := uint64(10 * 1 << 20)
	if got != want {
		t.Errorf("MemLimit = %d; want %d", got, want)
	}
}

func TestMemLimitAllZeroFallsBackToAvailable(t *testing.T) {
	b := Budget{}
	got := MemLimit(b, 1<<30, 1<<28)
	if got != 1<<28 {
		t.Errorf("MemLimit = %d; want available memory %d", got, 1<<28)
	}
}

func TestMemLimitFloor(t *testing.T) {
	b := Budget{MaxMem: 100}
	got := MemLimit(b, 1<<30, 1<<30)
	if got != minMemFloor {
		t.Errorf("MemLimit = %d; want floor %d", got, minMemFloor)
	}
}

func TestOpsLimitZeroWhenNoTimeBudget(t *testing.T) {
	if got := OpsLimit(Budget{}, 1e9); got != 0 {
		t.Errorf("OpsLimit = %d; want 0", got)
	}
}

func TestOpsLimitComputed(t *testing.T) {
	got := OpsLimit(Budget{MaxTime: 2}, 1000)
	if got != 2000 {
		t.Errorf("OpsLimit = %d; want 2000", got)
	}
}

func TestSelectClampsToLogNRange(t *testing.T) {
	// Essentially unlimited budget: logN should clamp at the ceiling.
	p := Select(1<<63, 1<<63)
	if p.LogN != logNCeil {
		t.Errorf("LogN = %d; want %d", p.LogN, logNCeil)
	}
	if p.R != 8 || p.P != 1 {
		t.Errorf("R,P = %d,%d; want 8,1", p.R, p.P)
	}
}

func TestSelectPicksFloorWhenBudgetTiny(t *testing.T) {
	// Working set at logN=10, r=8 is 128*8*1024 = 1MiB; a tighter memlimit
	// still returns the floor since Select never goes below logNFloor.
	p := Select(1, 1<<63)
	if p.LogN != logNFloor {
		t.Errorf("LogN = %d; want floor %d", p.LogN, logNFloor)
	}
}

func TestSelectRespectsMemoryBudget(t *testing.T) {
	// WorkingSetSize(logN, r=8) = 1024*2^logN; pick a memlimit that permits
	// exactly up to logN=12 (1024*4096 = 4MiB) but not logN=13 (8MiB).
	memlimit := uint64(1024) << 12
	p := Select(memlimit, 1<<63)
	if p.LogN != 12 {
		t.Errorf("LogN = %d; want 12", p.LogN)
	}
}

func TestValidateExplicitWithinBudget(t *testing.T) {
	p := Params{LogN: 10, R: 8, P: 1}
	if err := ValidateExplicit(p, 1<<30, 1<<30, false); err != nil {
		t.Errorf("ValidateExplicit: %v", err)
	}
}

func TestValidateExplicitExceedsMemWithoutForce(t *testing.T) {
	p := Params{LogN: 30, R: 8, P: 1}
	err := ValidateExplicit(p, 1<<20, 0, false)
	if err == nil {
		t.Fatal("expected EPARAM error")
	}
	if kind, _ := errors.KindOf(err); kind != errors.EPARAM {
		t.Errorf("kind = %v; want EPARAM", kind)
	}
}

func TestValidateExplicitForceBypasses(t *testing.T) {
	p := Params{LogN: 30, R: 8, P: 1}
	if err := ValidateExplicit(p, 1<<20, 1, true); err != nil {
		t.Errorf("ValidateExplicit with force: %v", err)
	}
}

func TestValidateForDecryptTooBig(t *testing.T) {
	p := Params{LogN: 30, R: 8, P: 1}
	err := ValidateForDecrypt(p, 1<<20, 0, false)
	if kind, _ := errors.KindOf(err); kind != errors.ETOOBIG {
		t.Errorf("kind = %v; want ETOOBIG", kind)
	}
}

func TestValidateForDecryptTooSlow(t *testing.T) {
	p := Params{LogN: 10, R: 8, P: 1}
	err := ValidateForDecrypt(p, 1<<40, 1, false)
	if kind, _ := errors.KindOf(err); kind != errors.ETOOSLOW {
		t.Errorf("kind = %v; want ETOOSLOW", kind)
	}
}

func TestValidateForDecryptForceBypasses(t *testing.T) {
	p := Params{LogN: 30, R: 8, P: 1}
	if err := ValidateForDecrypt(p, 1, 1, true); err != nil {
		t.Errorf("ValidateForDecrypt with force: %v", err)
	}
}
