// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"errors"
	"testing"

	"github.com/MoonsideGames/crunch/internal/crunchutil"
)

func TestParseArgsDefaults(t *testing.T) {
	cfg, err := ParseArgs([]string{"out", "in"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if cfg.PageSize != 4096 || cfg.Padding != 1 {
		t.Errorf("defaults: have size=%d pad=%d, want 4096/1", cfg.PageSize, cfg.Padding)
	}
	if cfg.Output != "out" || len(cfg.Inputs) != 1 || cfg.Inputs[0] != "in" {
		t.Errorf("positionals: have %q %v", cfg.Output, cfg.Inputs)
	}
}

func TestParseArgsMultipleInputs(t *testing.T) {
	cfg, err := ParseArgs([]string{"out", "a,b,c"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if len(cfg.Inputs) != 3 {
		t.Fatalf("inputs: have %v, want 3 entries", cfg.Inputs)
	}
}

func TestParseArgsDefaultFlag(t *testing.T) {
	cfg, err := ParseArgs([]string{"out", "in", "-d"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if !cfg.XML || !cfg.Premultiply || !cfg.Trim || !cfg.Unique {
		t.Errorf("-d should imply -x -p -t -u, got %+v", cfg)
	}
}

func TestParseArgsPremultiplyVsPad(t *testing.T) {
	cfg, err := ParseArgs([]string{"out", "in", "-p"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if !cfg.Premultiply || cfg.Padding != 1 {
		t.Errorf("-p alone should set Premultiply and leave Padding default, got %+v", cfg)
	}

	cfg2, err := ParseArgs([]string{"out", "in", "-p4"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if cfg2.Premultiply || cfg2.Padding != 4 {
		t.Errorf("-p4 should set Padding=4 and leave Premultiply false, got %+v", cfg2)
	}
}

func TestParseArgsSize(t *testing.T) {
	cfg, err := ParseArgs([]string{"out", "in", "-s2048"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if cfg.PageSize != 2048 {
		t.Errorf("PageSize: have %d, want 2048", cfg.PageSize)
	}
}

func TestParseArgsInvalidSize(t *testing.T) {
	_, err := ParseArgs([]string{"out", "in", "-s100"})
	if !errors.Is(err, crunchutil.ErrInvalidOptionValue) {
		t.Fatalf("err: have %v, want ErrInvalidOptionValue", err)
	}
}

func TestParseArgsInvalidPad(t *testing.T) {
	_, err := ParseArgs([]string{"out", "in", "--pad17"})
	if !errors.Is(err, crunchutil.ErrInvalidOptionValue) {
		t.Fatalf("err: have %v, want ErrInvalidOptionValue", err)
	}
}

func TestParseArgsMissingPositionals(t *testing.T) {
	_, err := ParseArgs([]string{"out"})
	if !errors.Is(err, crunchutil.ErrInvalidArguments) {
		t.Fatalf("err: have %v, want ErrInvalidArguments", err)
	}
}

func TestParseArgsUnknownFlag(t *testing.T) {
	_, err := ParseArgs([]string{"out", "in", "--bogus"})
	if !errors.Is(err, crunchutil.ErrInvalidArguments) {
		t.Fatalf("err: have %v, want ErrInvalidArguments", err)
	}
}
