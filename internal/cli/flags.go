package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daafuq/scryptenc/internal/errors"
	"github.com/daafuq/scryptenc/internal/tuner"
)

// commonFlags holds the flag values shared by enc and dec.
type commonFlags struct {
	force      bool
	maxMem     string
	maxMemFrac float64
	maxTime    float64
	logN       int
	r          int
	p          int
	verbose    bool
	stdinOnce  bool
	passphrase string
}

func addCommonFlags(cmd *cobra.Command, f *commonFlags) {
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "bypass Tuner feasibility checks")
	cmd.Flags().StringVarP(&f.maxMem, "maxmem", "M", "", "explicit memory cap, e.g. 500M")
	cmd.Flags().Float64VarP(&f.maxMemFrac, "maxmemfrac", "m", 0, "memory cap as a fraction of physical RAM, in [0,0.5]")
	cmd.Flags().Float64VarP(&f.maxTime, "maxtime", "t", 0, "time cap in seconds for tuning")
	cmd.Flags().IntVarP(&f.logN, "logN", "l", 0, "explicit logN in [10,40]")
	cmd.Flags().IntVarP(&f.r, "r", "r", 0, "explicit r in [1,128]")
	cmd.Flags().IntVarP(&f.p, "p", "p", 0, "explicit p in [1,128]")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "print chosen N/r/p diagnostics")
	cmd.Flags().BoolVarP(&f.stdinOnce, "stdin-passphrase", "P", false, "read passphrase from standard input, once, no confirmation")
	cmd.Flags().StringVar(&f.passphrase, "passphrase", "", "passphrase source: method:arg")
}

// budget converts the parsed flags into a tuner.Budget, validating -M's
// size syntax.
func (f *commonFlags) budget() (tuner.Budget, error) {
	b := tuner.Budget{MaxMemFrac: f.maxMemFrac, MaxTime: f.maxTime}
	if f.maxMem != "" {
		mem, err := parseSize(f.maxMem)
		if err != nil {
			return b, err
		}
		b.MaxMem = mem
	}
	return b, nil
}

// explicitParams returns a non-nil *tuner.Params only when the caller gave
// at least one of -l/-r/-p; all three must be supplied together and valid,
// else EPARAM.
func (f *commonFlags) explicitParams() (*tuner.Params, error) {
	if f.logN == 0 && f.r == 0 && f.p == 0 {
		return nil, nil
	}

	if f.logN < 10 || f.logN > 40 {
		return nil, errors.New(errors.EPARAM, "cli", fmt.Errorf("Invalid option: -l %d", f.logN))
	}
	if f.r < 1 || f.r > 128 {
		return nil, errors.New(errors.EPARAM, "cli", fmt.Errorf("Invalid option: -r %d", f.r))
	}
	if f.p < 1 || f.p > 128 {
		return nil, errors.New(errors.EPARAM, "cli", fmt.Errorf("Invalid option: -p %d", f.p))
	}

	return &tuner.Params{LogN: uint8(f.logN), R: uint32(f.r), P: uint32(f.p)}, nil
}

// passphraseSpec resolves the effective "method:arg" pair for this
// invocation: at most one passphrase option may be given, and reading
// both the passphrase and the input file from standard input is rejected.
func (f *commonFlags) passphraseSpec(inputIsStdin bool) (method, arg string, err error) {
	if f.stdinOnce && f.passphrase != "" {
		return "", "", errors.New(errors.EINVAL, "cli", fmt.Errorf("only one of -P or --passphrase may be given"))
	}

	switch {
	case f.stdinOnce:
		method, arg = "dev:stdin-once", ""
	case f.passphrase != "":
		method, arg, err = ParsePassphraseSpec(f.passphrase)
		if err != nil {
			return "", "", err
		}
	default:
		method, arg = defaultPassphraseMethod, ""
	}

	stdinForPassphrase := usesStdin(method) || (method == "dev:tty-stdin" && !isTerminal(0))
	if inputIsStdin && stdinForPassphrase {
		return "", "", errors.New(errors.EINVAL, "cli", fmt.Errorf("cannot read both input and passphrase from standard input"))
	}
	return method, arg, nil
}

// usesStdin reports whether method unconditionally reads standard input.
// dev:tty-stdin only falls back to stdin when stdin isn't a terminal, so
// passphraseSpec checks that case separately with isTerminal.
func usesStdin(method string) bool {
	return method == "dev:stdin-once"
}
