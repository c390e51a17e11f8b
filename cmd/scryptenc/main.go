// Command scryptenc encrypts and decrypts files under a passphrase using
// scrypt, AES-256-CTR, and HMAC-SHA-256, and can print the parameters
// recorded in an existing ciphertext's header.
package main

import (
	"os"

	"github.com/daafuq/scryptenc/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
