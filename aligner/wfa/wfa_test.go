package wfa_test

import (
	"testing"

	"github.com/grailbio/pawalign/aligner/wfa"
)

func TestAlignExactMatch(t *testing.T) {
	a := wfa.New()
	res := a.Align([]byte("ACGTACGT"), []byte("TTACGTACGTTT"), -1)
	if !res.OK {
		t.Fatal("expected OK alignment")
	}
	if res.EditDistance != 0 {
		t.Errorf("EditDistance = %d, want 0", res.EditDistance)
	}
	if res.AlignmentLen != 8 {
		t.Errorf("AlignmentLen = %d, want 8", res.AlignmentLen)
	}
}

func TestAlignWithGap(t *testing.T) {
	a := wfa.New()
	// pattern drops one base relative to the embedded window -> a single
	// deletion (gap in pattern) under an affine scheme with GapOpen 0.
	res := a.Align([]byte("ACGTCGT"), []byte("TTACGTACGTTT"), -1)
	if !res.OK {
		t.Fatal("expected OK alignment")
	}
	if res.EditDistance < 1 {
		t.Errorf("EditDistance = %d, want >= 1", res.EditDistance)
	}
	total := 0
	for _, op := range res.Cigar {
		total += op.Len()
	}
	if total != res.AlignmentLen {
		t.Errorf("cigar op-length sum = %d, want AlignmentLen %d", total, res.AlignmentLen)
	}
}

func TestAlignRejectsTooDivergent(t *testing.T) {
	a := wfa.New()
	res := a.Align([]byte("AAAAAAAA"), []byte("TTTTTTTT"), 2)
	if res.OK {
		t.Fatalf("expected alignment to be rejected, got %+v", res)
	}
}

func TestAlignCustomPenalties(t *testing.T) {
	a := wfa.NewWithPenalties(wfa.Penalties{Mismatch: 4, GapOpen: 6, GapExtend: 2})
	res := a.Align([]byte("ACGTACGT"), []byte("ACGTACGT"), -1)
	if !res.OK || res.EditDistance != 0 {
		t.Errorf("expected exact match with custom penalties, got %+v", res)
	}
}
