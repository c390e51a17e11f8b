package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/daafuq/scryptenc/internal/errors"
)

// defaultPassphraseMethod is used when neither -P nor --passphrase is given.
const defaultPassphraseMethod = "dev:tty-stdin"

// isTerminal reports whether fd is connected to a terminal.
func isTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// readHidden prompts on stderr and reads one line from fd without echo.
func readHidden(fd int, prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// ResolvePassphrase resolves one of five passphrase methods. method is the
// parsed "method:arg" form (arg may be empty); confirm requests a second
// read-and-compare, used only for dev:tty-stdin on encrypt.
//
// Every branch reads from the method/arg values passed in explicitly,
// never from a shared global, so a call can never pick up a stale option
// value left over from a previous invocation.
func ResolvePassphrase(method, arg string, confirm bool) (string, error) {
	switch method {
	case "dev:tty-stdin":
		return resolveTTYStdin(confirm)
	case "dev:stdin-once":
		return resolveStdinOnce()
	case "dev:tty-once":
		return resolveTTYOnce()
	case "env":
		return resolveEnv(arg)
	case "file":
		return resolveFile(arg)
	default:
		return "", errors.New(errors.EINVAL, "cli.ResolvePassphrase", fmt.Errorf("unknown passphrase method %q", method))
	}
}

func resolveTTYStdin(confirm bool) (string, error) {
	fd := int(os.Stdin.Fd())
	if isTerminal(fd) {
		pw, err := readHidden(fd, "Passphrase: ")
		if err != nil {
			return "", errors.New(errors.EINVAL, "cli.ResolvePassphrase: dev:tty-stdin", err)
		}
		if confirm {
			again, err := readHidden(fd, "Confirm passphrase: ")
			if err != nil {
				return "", errors.New(errors.EINVAL, "cli.ResolvePassphrase: dev:tty-stdin confirm", err)
			}
			if pw != again {
				return "", errors.New(errors.EINVAL, "cli.ResolvePassphrase: dev:tty-stdin", fmt.Errorf("passphrases do not match"))
			}
		}
		return pw, nil
	}
	return resolveStdinOnce()
}

func resolveStdinOnce() (string, error) {
	line, err := readLine(bufio.NewReader(os.Stdin))
	if err != nil {
		return "", errors.New(errors.EINVAL, "cli.ResolvePassphrase: dev:stdin-once", err)
	}
	return line, nil
}

func resolveTTYOnce() (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return "", errors.New(errors.EINVAL, "cli.ResolvePassphrase: dev:tty-once", fmt.Errorf("stdin is not a terminal"))
	}
	pw, err := readHidden(fd, "Passphrase: ")
	if err != nil {
		return "", errors.New(errors.EINVAL, "cli.ResolvePassphrase: dev:tty-once", err)
	}
	return pw, nil
}

func resolveEnv(name string) (string, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", errors.New(errors.EINVAL, "cli.ResolvePassphrase: env", fmt.Errorf("environment variable %q is not set", name))
	}
	return v, nil
}

func resolveFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.New(errors.ERDFILE, "cli.ResolvePassphrase: file", err)
	}
	defer f.Close()

	line, err := readLine(bufio.NewReader(f))
	if err != nil {
		return "", errors.New(errors.ERDFILE, "cli.ResolvePassphrase: file", err)
	}
	return line, nil
}

// ParsePassphraseSpec splits a "--passphrase method:arg" value into its
// method and argument parts. env:NAME and file:PATH require an arg;
// dev:tty-stdin, dev:stdin-once, dev:tty-once take none.
func ParsePassphraseSpec(spec string) (method, arg string, err error) {
	parts := strings.SplitN(spec, ":", 2)
	method = parts[0]
	if len(parts) == 2 {
		arg = parts[1]
	}

	switch method {
	case "dev":
		if arg != "tty-stdin" && arg != "stdin-once" && arg != "tty-once" {
			return "", "", errors.New(errors.EINVAL, "cli.ParsePassphraseSpec", fmt.Errorf("unknown dev passphrase method %q", spec))
		}
		return "dev:" + arg, "", nil
	case "env":
		if arg == "" {
			return "", "", errors.New(errors.EINVAL, "cli.ParsePassphraseSpec", fmt.Errorf("env: requires a variable name"))
		}
		return "env", arg, nil
	case "file":
		if arg == "" {
			return "", "", errors.New(errors.EINVAL, "cli.ParsePassphraseSpec", fmt.Errorf("file: requires a path"))
		}
		return "file", arg, nil
	default:
		return "", "", errors.New(errors.EINVAL, "cli.ParsePassphraseSpec", fmt.Errorf("unrecognized --passphrase method %q", spec))
	}
}
