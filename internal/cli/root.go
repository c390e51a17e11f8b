package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daafuq/scryptenc/internal/errors"
)

// Version is set by main.go.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "scryptenc",
	Short: "Password-based file encryption built on scrypt",
	Long: `scryptenc encrypts and decrypts a file under a passphrase using
scrypt for key derivation, AES-256-CTR for the cipher, and HMAC-SHA-256
for integrity. The chosen (or validated) scrypt cost parameters are
recorded in the output file's header.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI, mapping the error taxonomy of internal/errors to
// a process exit code: 0 on success, 1 on any failure, with the failure
// Kind and any OS error string on stderr.
func Execute(version string) int {
	Version = version
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		printDiagnostic(err)
		return 1
	}
	return 0
}

func printDiagnostic(err error) {
	if kind, ok := errors.KindOf(err); ok {
		fmt.Fprintf(os.Stderr, "%s: %v\n", kind, err)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(newEncCmd())
	rootCmd.AddCommand(newDecCmd())
	rootCmd.AddCommand(newInfoCmd())
}
