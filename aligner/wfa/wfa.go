// Package wfa implements a gap-affine pairwise aligner using the
// penalty vocabulary of the wavefront alignment algorithm (Mismatch,
// GapOpen, GapExtend): it scores the same way WFA's edit-distance
// formulation does, but computes the optimum with a classical O(nm)
// Gotoh-style dynamic program (three matrices: best score ending in a
// match/mismatch, a reference-gap, and a query-gap) rather than WFA's
// sparse wavefront-by-diagonal-and-score propagation.
//
// Substituting the dense DP for the sparse wavefront trades away WFA's
// near-linear running time on similar sequences for a simpler, easier to
// reason about recurrence and traceback. Like aligner/edlib it performs
// semi-global (infix) alignment: pattern is consumed end to end, text may
// extend past either end.
package wfa

import (
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/pawalign/aligner"
)

const inf = 1 << 30

// Penalties is the gap-affine scoring scheme: a substitution costs
// Mismatch; a gap of length L costs GapOpen + L*GapExtend.
type Penalties struct {
	Mismatch  int
	GapOpen   int
	GapExtend int
}

// DefaultPenalties mirrors the edit-distance penalty set commonly used
// to drive WFA (mismatch and gap extend both cost 1 edit, gap open is
// free), so that Aligner and edlib.Aligner report comparable distances
// on the same input.
var DefaultPenalties = Penalties{Mismatch: 1, GapOpen: 0, GapExtend: 1}

// Aligner is a gap-affine aligner.Aligner.
type Aligner struct {
	Penalties Penalties
}

// New returns a gap-affine Aligner using DefaultPenalties.
func New() Aligner { return Aligner{Penalties: DefaultPenalties} }

// NewWithPenalties returns a gap-affine Aligner using p.
func NewWithPenalties(p Penalties) Aligner { return Aligner{Penalties: p} }

// Align implements aligner.Aligner.
func (a Aligner) Align(pattern, text []byte, maxEditDistance int) aligner.Result {
	m, n := len(pattern), len(text)
	if m == 0 {
		return aligner.Result{}
	}
	p := a.Penalties

	// mat[i][j]: best score of an alignment of pattern[:i] ending at text
	// position j with the last op being a (mis)match.
	// ins[i][j]: best score ending with a gap in text (a query insertion).
	// del[i][j]: best score ending with a gap in pattern (a query deletion).
	mat := newMatrix(m+1, n+1)
	ins := newMatrix(m+1, n+1) // insertion relative to reference (consumes pattern only)
	del := newMatrix(m+1, n+1) // deletion relative to reference (consumes text only)

	for j := 0; j <= n; j++ {
		mat[0][j] = 0 // free start anywhere in text
		ins[0][j] = inf
		del[0][j] = inf
	}
	for i := 1; i <= m; i++ {
		mat[i][0] = inf
		ins[i][0] = p.GapOpen + i*p.GapExtend
		del[i][0] = inf
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			sub := p.Mismatch
			if pattern[i-1] == text[j-1] {
				sub = 0
			}
			mat[i][j] = min3(mat[i-1][j-1], ins[i-1][j-1], del[i-1][j-1]) + sub

			insOpen := mat[i-1][j] + p.GapOpen + p.GapExtend
			insExt := ins[i-1][j] + p.GapExtend
			ins[i][j] = min2(insOpen, insExt)

			delOpen := mat[i][j-1] + p.GapOpen + p.GapExtend
			delExt := del[i][j-1] + p.GapExtend
			del[i][j] = min2(delOpen, delExt)
		}
	}

	bestJ, bestScore, bestState := -1, inf, 0
	for j := 0; j <= n; j++ {
		if s := min3(mat[m][j], ins[m][j], del[m][j]); s < bestScore {
			bestScore, bestJ = s, j
			switch {
			case s == mat[m][j]:
				bestState = 0
			case s == ins[m][j]:
				bestState = 1
			default:
				bestState = 2
			}
		}
	}
	if bestJ < 0 || (maxEditDistance >= 0 && bestScore > maxEditDistance) {
		return aligner.Result{}
	}

	cigar, alnLen := traceback(pattern, text, mat, ins, del, p, m, bestJ, bestState)
	return aligner.Result{
		OK:           true,
		EditDistance: editDistanceOf(cigar),
		AlignmentLen: alnLen,
		Cigar:        cigar,
	}
}

func newMatrix(rows, cols int) [][]int {
	mat := make([][]int, rows)
	for i := range mat {
		mat[i] = make([]int, cols)
	}
	return mat
}

func min2(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func min3(a, b, c int) int { return min2(min2(a, b), c) }

type opRun struct {
	op  sam.CigarOpType
	run int
}

func appendRun(rev []opRun, op sam.CigarOpType) []opRun {
	if len(rev) > 0 && rev[len(rev)-1].op == op {
		rev[len(rev)-1].run++
		return rev
	}
	return append(rev, opRun{op, 1})
}

// traceback walks the three matrices backward from (m, j, state) to the
// row-0 boundary, producing a run-length-encoded extended CIGAR.
func traceback(pattern, text []byte, mat, ins, del [][]int, p Penalties, m, j, state int) (sam.Cigar, int) {
	var rev []opRun
	i := m
	for i > 0 {
		switch state {
		case 0: // mat: last op was a (mis)match
			op := sam.CigarEqual
			if pattern[i-1] != text[j-1] {
				op = sam.CigarMismatch
			}
			rev = appendRun(rev, op)
			switch mat[i][j] - boolCost(pattern[i-1] != text[j-1], p.Mismatch) {
			case mat[i-1][j-1]:
				state = 0
			case ins[i-1][j-1]:
				state = 1
			default:
				state = 2
			}
			i, j = i-1, j-1
		case 1: // ins: consumes pattern only
			rev = appendRun(rev, sam.CigarInsertion)
			if ins[i][j] == mat[i-1][j]+p.GapOpen+p.GapExtend {
				state = 0
			}
			i--
		default: // del: consumes text only
			rev = appendRun(rev, sam.CigarDeletion)
			if del[i][j] == mat[i][j-1]+p.GapOpen+p.GapExtend {
				state = 0
			}
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

func boolCost(mismatch bool, cost int) int {
	if mismatch {
		return cost
	}
	return 0
}

func editDistanceOf(c sam.Cigar) int {
	d := 0
	for _, op := range c {
		if op.Type() != sam.CigarEqual {
			d += op.Len()
		}
	}
	return d
}
