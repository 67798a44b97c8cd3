package parser

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mahdiidarabi/hashhunt/pkg/hash160"
	"github.com/pkg/errors"
)

// ErrInvalidSettings is wrapped by every error caused by malformed settings.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the search definition read from a settings file.
type Settings struct {
	// Bits selects the key window [2^(Bits-1), 2^Bits).
	Bits int

	// Targets holds the primary digest first, followed by any extra
	// digests listed after it.
	Targets []hash160.Digest
}

// ParseSettingsFile reads a settings file.
//
// Expected format:
//
//	line 1: key bit length in decimal (1..256)
//	line 2: target HASH160 as 40 hex characters
//	line 3+: optional extra targets; blank lines and lines starting
//	         with '#' are skipped
func ParseSettingsFile(path string) (*Settings, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open settings file")
	}
	defer file.Close()

	s, err := ParseSettings(file)
	if err != nil {
		return nil, errors.WithMessagef(err, "settings file %s", path)
	}
	return s, nil
}

// ParseSettings reads settings from r. Whitespace around every line is
// trimmed and hex digits may be in either case.
func ParseSettings(r io.Reader) (*Settings, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read settings")
	}
	if len(lines) < 2 {
		return nil, errors.Wrapf(ErrInvalidSettings, "expected at least 2 lines, got %d", len(lines))
	}

	bits, err := strconv.Atoi(lines[0])
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSettings, "line 1: bit length %q is not a decimal integer", lines[0])
	}
	if bits < 1 || bits > 256 {
		return nil, errors.Wrapf(ErrInvalidSettings, "line 1: bit length %d outside [1, 256]", bits)
	}

	primary, err := hash160.ParseDigest(lines[1])
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSettings, "line 2: %v", err)
	}

	settings := &Settings{Bits: bits, Targets: []hash160.Digest{primary}}
	for i, line := range lines[2:] {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d, err := hash160.ParseDigest(line)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidSettings, "line %d: %v", i+3, err)
		}
		settings.Targets = append(settings.Targets, d)
	}
	return settings, nil
}
