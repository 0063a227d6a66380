// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package seq provides small table-driven byte operations on ASCII
// nucleotide sequences: in-place uppercasing and reverse-complementing.
package seq

// upperTable maps every byte to its upper-cased ASCII form, leaving
// non-letters (and non-ASCII bytes) untouched.
var upperTable = func() (t [256]byte) {
	for i := range t {
		t[i] = byte(i)
	}
	for c := byte('a'); c <= 'z'; c++ {
		t[c] = c - ('a' - 'A')
	}
	return t
}()

// UppercaseInplace upper-cases every byte of b in place.
func UppercaseInplace(b []byte) {
	for i, c := range b {
		b[i] = upperTable[c]
	}
}

// complementTable maps an upper- or lower-case base to its complement.
// Anything that isn't A/C/G/T (either case) maps to 'N', matching the
// Reference Index's convention that stored sequences only ever contain
// upper-case A/C/G/T/N.
var complementTable = func() (t [256]byte) {
	for i := range t {
		t[i] = 'N'
	}
	pairs := []struct{ a, b byte }{
		{'A', 'T'}, {'C', 'G'}, {'G', 'C'}, {'T', 'A'},
		{'a', 'T'}, {'c', 'G'}, {'g', 'C'}, {'t', 'A'},
		{'N', 'N'}, {'n', 'N'},
	}
	for _, p := range pairs {
		t[p.a] = p.b
	}
	return t
}()

// ReverseComplement writes the reverse complement of src into dst. It
// panics if len(dst) != len(src); dst and src must not overlap.
func ReverseComplement(dst, src []byte) {
	if len(dst) != len(src) {
		panic("seq: ReverseComplement requires len(dst) == len(src)")
	}
	n := len(src)
	for i, j := 0, n-1; i < n; i, j = i+1, j-1 {
		dst[i] = complementTable[src[j]]
	}
}
