package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/daafuq/scryptenc/internal/crypto"
	"github.com/daafuq/scryptenc/internal/errors"
	"github.com/daafuq/scryptenc/internal/log"
	"github.com/daafuq/scryptenc/internal/session"
)

func newEncCmd() *cobra.Command {
	f := &commonFlags{}
	cmd := &cobra.Command{
		Use:   "enc <infile> [outfile]",
		Short: "Encrypt a file under a passphrase",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnc(f, args)
		},
	}
	addCommonFlags(cmd, f)
	return cmd
}

func runEnc(f *commonFlags, args []string) error {
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
	out, tmpPath, err := openOutput(outPath)
	if err != nil {
		return err
	}

	method, arg, err := f.passphraseSpec(inIsStdin)
	if err != nil {
		out.Close()
		removeOutput(outPath, tmpPath)
		return err
	}
	passphrase, err := ResolvePassphrase(method, arg, method == "dev:tty-stdin")
	if err != nil {
		out.Close()
		removeOutput(outPath, tmpPath)
		return err
	}
	km := crypto.NewKeyMaterial([]byte(passphrase))
	defer km.Close()

	budget, err := f.budget()
	if err != nil {
		out.Close()
		removeOutput(outPath, tmpPath)
		return err
	}
	explicit, err := f.explicitParams()
	if err != nil {
		out.Close()
		removeOutput(outPath, tmpPath)
		return err
	}

	err = session.Encrypt(in, out, km.Bytes(), session.EncryptParams{
		Explicit: explicit,
		Budget:   budget,
		Force:    f.force,
	}, logger)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		removeOutput(outPath, tmpPath)
		return err
	}

	if tmpPath != "" {
		if err := os.Rename(tmpPath, outPath); err != nil {
			return errors.New(errors.EWRFILE, "cli.runEnc: rename output", err)
		}
	}
	return nil
}

func openInput(path string) (io.ReadCloser, bool, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), true, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, false, errors.New(errors.ERDFILE, "cli.openInput", err)
	}
	return f, false, nil
}

// openOutput opens the file scryptenc writes to. For a real path it writes
// to a sibling ".partial" file created 0600 (it may hold plaintext or
// passphrase-adjacent material) and returns that temp path for the caller
// to rename into place once the write completes; a truncated write then
// never leaves a half-written file at the final name. Stdout needs neither
// a temp file nor a rename.
func openOutput(path string) (out io.WriteCloser, tmpPath string, err error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, "", nil
	}
	tmpPath = path + ".partial"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, "", errors.New(errors.EWRFILE, "cli.openOutput", err)
	}
	return f, tmpPath, nil
}

// removeOutput cleans up the partial output file left by a failed run.
func removeOutput(outPath, tmpPath string) {
	if tmpPath != "" {
		os.Remove(tmpPath)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
