package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/daafuq/scryptenc/internal/crypto"
	"github.com/daafuq/scryptenc/internal/errors"
	"github.com/daafuq/scryptenc/internal/log"
	"github.com/daafuq/scryptenc/internal/session"
)

func newDecCmd() *cobra.Command {
	f := &commonFlags{}
	cmd := &cobra.Command{
		Use:   "dec <infile> [outfile]",
		Short: "Decrypt a file given the correct passphrase",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDec(f, args)
		},
	}
	addCommonFlags(cmd, f)
	return cmd
}

func runDec(f *commonFlags, args []string) error {
	logger := log.New()
	log.SetVerbose(logger, f.verbose)

	in, inIsStdin, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	outPath := ""
	if len(args) == 2 {
		outPath = args[1]
	}

	method, arg, err := f.passphraseSpec(inIsStdin)
	if err != nil {
		return err
	}
	// dev:tty-stdin never confirms on decrypt: there's nothing to confirm
	// against, only a single passphrase to try.
	passphrase, err := ResolvePassphrase(method, arg, false)
	if err != nil {
		return err
	}
	km := crypto.NewKeyMaterial([]byte(passphrase))
	defer km.Close()

	budget, err := f.budget()
	if err != nil {
		return err
	}

	cookie, err := session.Prep(in, km.Bytes(), budget, f.force, logger)
	if err != nil {
		return err
	}

	out, tmpPath, err := openOutput(outPath)
	if err != nil {
		cookie.Zero()
		return err
	}

	copyErr := session.Copy(cookie, in, out)
	closeErr := out.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		removeOutput(outPath, tmpPath)
		return copyErr
	}

	if tmpPath != "" {
		if err := os.Rename(tmpPath, outPath); err != nil {
			return errors.New(errors.EWRFILE, "cli.runDec: rename output", err)
		}
	}
	return nil
}
