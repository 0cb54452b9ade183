// SPDX-License-Identifier: Unlicense OR MIT

// Package config parses the crunch CLI grammar (spec.md §6.1) into an
// explicit Config value whose fields cmd/crunch passes to each stage — in
// place of the original C++ source's process-wide option globals (spec.md
// §9).
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MoonsideGames/crunch/internal/crunchutil"
)

// Config holds every CLI option plus the parsed positional arguments.
type Config struct {
	Output string
	Inputs []string

	XML    bool
	Binary bool
	JSON   bool

	Premultiply bool
	Trim        bool
	Verbose     bool
	Force       bool
	Unique      bool
	Rotate      bool

	PageSize int
	Padding  int
}

var validPageSizes = map[int]bool{
	64: true, 128: true, 256: true, 512: true,
	1024: true, 2048: true, 4096: true,
}

// ParseArgs parses crunch's CLI grammar: `crunch <OUTPUT> <INPUT1[,INPUT2,...]>
// [OPTIONS]`, with options in any order. `-p` alone is --premultiply;
// `-p<digits>` is --pad<digits>, disambiguated by the trailing numeric
// suffix (spec.md §6.1's parsing precedence note). args is os.Args[1:].
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{PageSize: 4096, Padding: 1}

	var positional []string
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			positional = append(positional, a)
			continue
		}
		switch a {
		case "-d", "--default":
			cfg.XML, cfg.Premultiply, cfg.Trim, cfg.Unique = true, true, true, true
		case "-x", "--xml":
			cfg.XML = true
		case "-b", "--binary":
			cfg.Binary = true
		case "-j", "--json":
			cfg.JSON = true
		case "-t", "--trim":
			cfg.Trim = true
		case "-v", "--verbose":
			cfg.Verbose = true
		case "-f", "--force":
			cfg.Force = true
		case "-u", "--unique":
			cfg.Unique = true
		case "-r", "--rotate":
			cfg.Rotate = true
		case "-p", "--premultiply":
			cfg.Premultiply = true
		default:
			if err := parseNumericFlag(a, cfg); err != nil {
				return nil, err
			}
		}
	}

	if len(positional) < 2 {
		return nil, fmt.Errorf("usage: crunch <OUTPUT> <INPUT1[,INPUT2,...]> [OPTIONS]: %w", crunchutil.ErrInvalidArguments)
	}
	cfg.Output = positional[0]
	cfg.Inputs = strings.Split(positional[1], ",")
	return cfg, nil
}

// parseNumericFlag handles -s<N>/--size<N> and -p<N>/--pad<N>, the two
// flags whose value is concatenated directly onto the flag token.
func parseNumericFlag(a string, cfg *Config) error {
	if n, ok := numericSuffix(a, "-s", "--size"); ok {
		if !validPageSizes[n] {
			return fmt.Errorf("%s: %w", a, crunchutil.ErrInvalidOptionValue)
		}
		cfg.PageSize = n
		return nil
	}
	if n, ok := numericSuffix(a, "-p", "--pad"); ok {
		if n < 0 || n > 16 {
			return fmt.Errorf("%s: %w", a, crunchutil.ErrInvalidOptionValue)
		}
		cfg.Padding = n
		return nil
	}
	return fmt.Errorf("%s: %w", a, crunchutil.ErrInvalidArguments)
}

// numericSuffix reports whether a is short or long followed immediately by
// one or more decimal digits, returning the parsed value.
func numericSuffix(a, short, long string) (int, bool) {
	var rest string
	switch {
	case strings.HasPrefix(a, long):
		rest = a[len(long):]
	case strings.HasPrefix(a, short):
		rest = a[len(short):]
	default:
		return 0, false
	}
	if rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
