// SPDX-License-Identifier: Unlicense OR MIT

package crunchutil

import "github.com/cespare/xxhash/v2"

// FingerprintHash accumulates a 64-bit fingerprint across an ordered
// sequence of byte-slice contributors (spec.md §4.E): CLI argument tokens,
// then every discovered input file's contents, in deterministic order.
//
// Each contributor is folded in with
//
//	h ← h XOR ( H(v) + 0x9E3779B9 + (h << 6) + (h >> 2) )
//
// where H is xxHash64, a portable 64-bit content hash (unlike the original
// C++ source's host-library string hash; see spec.md §9).
type FingerprintHash struct {
	h uint64
}

// Add folds one contributor into the running fingerprint.
func (f *FingerprintHash) Add(v []byte) {
	hv := xxhash.Sum64(v)
	f.h ^= hv + 0x9E3779B9 + (f.h << 6) + (f.h >> 2)
}

// Add64 folds a 64-bit value directly, for callers that already have a
// content hash (e.g. a Bitmap's hash_value) rather than raw bytes.
func (f *FingerprintHash) Add64(hv uint64) {
	f.h ^= hv + 0x9E3779B9 + (f.h << 6) + (f.h >> 2)
}

// Sum returns the accumulated fingerprint.
func (f *FingerprintHash) Sum() uint64 {
	return f.h
}

// ContentHash returns the portable 64-bit content hash used for Bitmap's
// hash_value field.
func ContentHash(pixels []byte) uint64 {
	return xxhash.Sum64(pixels)
}
