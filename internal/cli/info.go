package cli

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daafuq/scryptenc/internal/session"
	"github.com/daafuq/scryptenc/internal/util"
)

func newInfoCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "info <infile>",
		Short: "Print the scrypt parameters recorded in a file's header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	// -f is accepted and ignored: info never consults the Tuner, but
	// scripts that always pass -f shouldn't need a subcommand-specific
	// flag set.
	cmd.Flags().BoolVarP(&force, "force", "f", false, "ignored; accepted for script compatibility")
	return cmd
}

func runInfo(args []string) error {
	in, _, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := session.ReadInfo(in)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "logN = %d\nN = %d\nr = %d\np = %d\nsalt = %s\nworking set = %d bytes (%s)\n",
		info.LogN, info.N, info.R, info.P,
		hex.EncodeToString(info.Salt),
		info.WorkingSet, util.Sizeify(int64(info.WorkingSet)))
	return nil
}
