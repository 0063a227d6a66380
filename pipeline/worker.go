package pipeline

import (
	"fmt"

	"github.com/grailbio/pawalign/aligner"
	"github.com/grailbio/pawalign/mapping"
	"github.com/grailbio/pawalign/refidx"
	"github.com/grailbio/pawalign/seq"
)

// runWorker drains q1 until closed, producing exactly one q2 element
// (possibly empty, on aligner failure) per workUnit. Workers are pure
// consumers of q1/producers of q2; the only shared state they touch is
// refs, which is immutable after refidx.Build returns.
func runWorker(cfg Config, refs *refidx.Index, al aligner.Aligner, q1 <-chan workUnit, q2 chan<- string) {
	for wu := range q1 {
		q2 <- alignOne(cfg, refs, al, wu)
	}
}

// alignOne resolves the reference and query windows for one mapping
// record, orients the query by strand, invokes the aligner, and returns the
// formatted output line, or "" if the aligner rejected the alignment.
func alignOne(cfg Config, refs *refidx.Index, al aligner.Aligner, wu workUnit) string {
	rec := wu.Record
	refRegion := refs.Get(rec.RefID)[rec.RStart : rec.REnd+1]
	queryRegion := wu.QuerySeq[rec.QStart : rec.QEnd+1]

	var pattern []byte
	if rec.Strand == mapping.REV {
		pattern = make([]byte, len(queryRegion))
		seq.ReverseComplement(pattern, queryRegion)
	} else {
		pattern = make([]byte, len(queryRegion))
		copy(pattern, queryRegion)
	}

	limit := -1
	if cfg.PercentageIdentity != 0 {
		limit = int((1 - cfg.PercentageIdentity/100) * float64(len(pattern)))
	}

	res := al.Align(pattern, refRegion, limit)
	if !res.OK || len(res.Cigar) == 0 {
		return ""
	}

	divergence := float64(res.EditDistance) / float64(res.AlignmentLen)
	return fmt.Sprintf("%s\ted:i:%d\tal:i%d\tad:f:%g\tcg:Z:%s\n",
		rec.Raw, res.EditDistance, res.AlignmentLen, divergence, res.Cigar.String())
}
