// SPDX-License-Identifier: Unlicense OR MIT

package manifest

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MoonsideGames/crunch/internal/bitmap"
	"github.com/MoonsideGames/crunch/internal/crunchutil"
)

// ComputeFingerprint folds the CLI argument tokens, then every discovered
// source file's entire byte contents, into a single 64-bit fingerprint
// (spec.md §4.E). sources must already be in deterministic order (sorted
// per input, inputs in command-line order — see internal/discover).
func ComputeFingerprint(args []string, sources []bitmap.Source) (uint64, error) {
	var fp crunchutil.FingerprintHash
	for _, a := range args {
		fp.Add([]byte(a))
	}
	for _, src := range sources {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return 0, fmt.Errorf("%s: %w: %v", src.Path, crunchutil.ErrIoRead, err)
		}
		fp.Add(data)
	}
	return fp.Sum(), nil
}

// CheckGate reports whether the run is an unchanged no-op: force is unset,
// hashPath exists, and its stored fingerprint equals the new one.
func CheckGate(hashPath string, fingerprint uint64, force bool) (bool, error) {
	if force {
		return false, nil
	}
	data, err := os.ReadFile(hashPath)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w: %v", hashPath, crunchutil.ErrIoRead, err)
	}
	existing, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return false, nil
	}
	return existing == fingerprint, nil
}

// WriteFingerprint persists fingerprint as ASCII decimal to hashPath.
func WriteFingerprint(hashPath string, fingerprint uint64) error {
	if err := os.WriteFile(hashPath, []byte(strconv.FormatUint(fingerprint, 10)), 0o644); err != nil {
		return fmt.Errorf("%s: %w: %v", hashPath, crunchutil.ErrIoWrite, err)
	}
	return nil
}

// CleanOutputs unconditionally removes every file a prior run of this
// atlas may have produced, before new outputs are written (spec.md §4.E).
func CleanOutputs(outputPrefix string) error {
	paths := []string{
		outputPrefix + ".hash",
		outputPrefix + ".bin",
		outputPrefix + ".xml",
		outputPrefix + ".json",
	}
	for i := 0; i < 16; i++ {
		paths = append(paths, fmt.Sprintf("%s%d.png", outputPrefix, i))
	}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w: %v", p, crunchutil.ErrIoWrite, err)
		}
	}
	return nil
}
