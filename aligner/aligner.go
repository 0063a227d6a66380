// Package aligner defines the pluggable pairwise-alignment capability
// consumed by the alignment pipeline's Worker component.
//
// The pipeline treats alignment as an external collaborator: it only
// depends on this interface, never on a particular kernel's internals.
// Two concrete backends are provided, github.com/grailbio/pawalign/aligner/edlib
// (banded edit distance) and github.com/grailbio/pawalign/aligner/wfa
// (gap-affine), and are interchangeable behind it.
package aligner

import "github.com/grailbio/hts/sam"

// Result is what a pairwise aligner reports for one (pattern, text) pair.
// A zero-value Result (OK == false) means the kernel rejected the
// alignment (distance bound exceeded, or some other kernel-internal
// failure); the Worker treats that the same as an AlignerFailure.
type Result struct {
	OK           bool
	EditDistance int
	AlignmentLen int
	Cigar        sam.Cigar
}

// Aligner computes a semi-global (query fully consumed, reference window
// may extend past either end) pairwise alignment of pattern against text.
//
// maxEditDistance bounds the search: a negative value means unbounded.
// Implementations must return a Result with OK == false, rather than an
// error, when no alignment within the bound exists -- per-record aligner
// failure is not a fatal condition; the record is skipped.
type Aligner interface {
	Align(pattern, text []byte, maxEditDistance int) Result
}
