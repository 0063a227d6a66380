// Package edlib implements a banded, semi-global (infix) edit-distance
// pairwise aligner: pattern is aligned end to end somewhere inside text,
// and text may extend freely beyond both ends of the match.
//
// The recurrence is the classic Levenshtein dynamic program, generalized
// from github.com/grailbio/bio/util.Levenshtein (a fixed-length barcode
// distance with a short downstream-extension heuristic) into a full
// infix alignment with traceback, banded around the diagonal implied by
// len(text)-len(pattern) so that a caller-supplied edit-distance bound
// also bounds the work done.
package edlib

import (
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/pawalign/aligner"
)

const sentinel = 1 << 30

// Aligner is a banded edit-distance aligner.Aligner.
type Aligner struct{}

// New returns a banded edit-distance Aligner.
func New() Aligner { return Aligner{} }

// Align implements aligner.Aligner.
func (Aligner) Align(pattern, text []byte, maxEditDistance int) aligner.Result {
	m, n := len(pattern), len(text)
	if m == 0 {
		return aligner.Result{}
	}

	// Effective band half-width. An unbounded search still needs *some*
	// finite band, so fall back to the loosest bound that can possibly
	// matter: the combined length of both sequences.
	k := maxEditDistance
	if k < 0 || k > m+n {
		k = m + n
	}

	// dp[i][j] holds the edit distance of the best alignment of
	// pattern[:i] ending at text position j; cells outside the band are
	// left at sentinel so they're never selected.
	dp := make([][]int32, m+1)
	tb := make([][]byte, m+1) // 0 = diag, 1 = up (insertion), 2 = left (deletion)
	for i := range dp {
		dp[i] = make([]int32, n+1)
		tb[i] = make([]byte, n+1)
		for j := range dp[i] {
			dp[i][j] = sentinel
		}
	}
	// Row 0: free start anywhere in text (infix alignment).
	for j := 0; j <= n; j++ {
		dp[0][j] = 0
	}

	diagShift := n - m // the diagonal a perfectly-placed match would follow
	for i := 1; i <= m; i++ {
		lo := i + diagShift - k
		if lo < 1 {
			lo = 1
		}
		hi := i + diagShift + k
		if hi > n {
			hi = n
		}
		for j := lo; j <= hi; j++ {
			var best int32 = sentinel
			var from byte
			if d := get(dp, i-1, j-1); d < sentinel {
				cost := d
				if pattern[i-1] != text[j-1] {
					cost++
				}
				best, from = cost, 0
			}
			if d := get(dp, i-1, j); d < sentinel && d+1 < best {
				best, from = d+1, 1
			}
			if d := get(dp, i, j-1); d < sentinel && d+1 < best {
				best, from = d+1, 2
			}
			dp[i][j] = best
			tb[i][j] = from
		}
	}

	// Free end anywhere in text: pick the cheapest cell in the final row.
	bestJ, bestCost := -1, int32(sentinel)
	for j := 0; j <= n; j++ {
		if dp[m][j] < bestCost {
			bestCost, bestJ = dp[m][j], j
		}
	}
	if bestJ < 0 || (maxEditDistance >= 0 && int(bestCost) > maxEditDistance) {
		return aligner.Result{}
	}

	cigar, alnLen := traceback(pattern, text, dp, tb, m, bestJ)
	return aligner.Result{
		OK:           true,
		EditDistance: int(bestCost),
		AlignmentLen: alnLen,
		Cigar:        cigar,
	}
}

func get(dp [][]int32, i, j int) int32 {
	if i < 0 || j < 0 {
		return sentinel
	}
	return dp[i][j]
}

// traceback walks the DP matrix backward from (m, j) to the row-0 boundary,
// producing a run-length-encoded extended CIGAR (=, X, I, D) and the total
// op length across all ops.
func traceback(pattern, text []byte, dp [][]int32, tb [][]byte, m, j int) (sam.Cigar, int) {
	type step struct {
		op  sam.CigarOpType
		run int
	}
	var rev []step
	i := m
	for i > 0 {
		switch tb[i][j] {
		case 0: // diagonal
			op := sam.CigarEqual
			if pattern[i-1] != text[j-1] {
				op = sam.CigarMismatch
			}
			rev = appendOp(rev, op)
			i, j = i-1, j-1
		case 1: // up: pattern consumed, text not -> insertion relative to reference
			rev = appendOp(rev, sam.CigarInsertion)
			i--
		default: // left: text consumed, pattern not -> deletion relative to reference
			rev = appendOp(rev, sam.CigarDeletion)
			j--
		}
	}

	cigar := make(sam.Cigar, 0, len(rev))
	total := 0
	for k := len(rev) - 1; k >= 0; k-- {
		cigar = append(cigar, sam.NewCigarOp(rev[k].op, rev[k].run))
		total += rev[k].run
	}
	return cigar, total
}

func appendOp(rev []struct {
	op  sam.CigarOpType
	run int
}, op sam.CigarOpType) []struct {
	op  sam.CigarOpType
	run int
} {
	if len(rev) > 0 && rev[len(rev)-1].op == op {
		rev[len(rev)-1].run++
		return rev
	}
	return append(rev, struct {
		op  sam.CigarOpType
		run int
	}{op, 1})
}
