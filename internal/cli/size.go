package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/daafuq/scryptenc/internal/errors"
	"github.com/daafuq/scryptenc/internal/util"
)

// parseSize parses a human-readable byte size such as "500M" or "2G" into
// a byte count. Size parsing is the CLI's own concern; the session and
// tuner packages only ever see a resolved byte count.
func parseSize(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New(errors.EINVAL, "cli.parseSize", fmt.Errorf("empty size"))
	}

	mult := uint64(1)
	suffix := s[len(s)-1]
	numPart := s
	switch suffix {
	case 'k', 'K':
		mult = util.KiB
		numPart = s[:len(s)-1]
	case 'm', 'M':
		mult = util.MiB
		numPart = s[:len(s)-1]
	case 'g', 'G':
		mult = util.GiB
		numPart = s[:len(s)-1]
	case 't', 'T':
		mult = util.TiB
		numPart = s[:len(s)-1]
	}

	n, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, errors.New(errors.EINVAL, "cli.parseSize", fmt.Errorf("invalid size %q", s))
	}
	if n < 0 {
		return 0, errors.New(errors.EINVAL, "cli.parseSize", fmt.Errorf("negative size %q", s))
	}
	return uint64(n * float64(mult)), nil
}
