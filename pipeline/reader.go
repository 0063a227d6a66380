package pipeline

import (
	"bufio"
	"context"
	"io"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/grailbio/pawalign/fastascan"
	"github.com/grailbio/pawalign/mapping"
	"github.com/grailbio/pawalign/seq"
)

const mappingLineBufferSize = 16 * 1024 * 1024

// queryIterator yields FASTA records across a sequence of query files,
// opening (and decompressing) each one lazily as the previous one is
// exhausted, so the Reader never holds more than one file open.
type queryIterator struct {
	ctx     context.Context
	paths   []string
	idx     int
	cur     *fastascan.Scanner
	curFile file.File
}

func (it *queryIterator) next(rec *fastascan.Record) (bool, error) {
	for {
		if it.cur == nil {
			if it.idx >= len(it.paths) {
				return false, nil
			}
			f, err := file.Open(it.ctx, it.paths[it.idx])
			if err != nil {
				return false, err
			}
			it.idx++
			var r io.Reader = f.Reader(it.ctx)
			if z := compress.NewReaderPath(r, f.Name()); z != nil {
				r = z
			}
			it.cur, it.curFile = fastascan.NewScanner(r), f
		}
		if it.cur.Scan(rec) {
			return true, nil
		}
		err := it.cur.Err()
		it.curFile.Close(it.ctx) // nolint: errcheck
		it.cur, it.curFile = nil, nil
		if err != nil {
			return false, err
		}
		// This file is exhausted cleanly; loop around to open the next one.
	}
}

func (it *queryIterator) close(ctx context.Context) {
	if it.curFile != nil {
		it.curFile.Close(ctx) // nolint: errcheck
	}
}

// runReader walks the mapping file and the query FASTA files in lock-step
// (a two-pointer scan keyed on qId), emitting a workUnit onto q1 for every
// mapping line whose qId matches a query record. It always closes q1 before
// returning, successfully or not, so that Workers ranging over q1 are
// guaranteed to observe end-of-stream.
func runReader(ctx context.Context, cfg Config, q1 chan<- workUnit) error {
	defer close(q1)

	mapFile, err := file.Open(ctx, cfg.MashmapPafFile)
	if err != nil {
		return err
	}
	defer mapFile.Close(ctx) // nolint: errcheck

	var mr io.Reader = mapFile.Reader(ctx)
	if z := compress.NewReaderPath(mr, mapFile.Name()); z != nil {
		mr = z
	}
	mapSc := bufio.NewScanner(mr)
	mapSc.Buffer(nil, mappingLineBufferSize)

	var held mapping.Record
	haveHeld := false
	advance := func() error {
		if !mapSc.Scan() {
			haveHeld = false
			return mapSc.Err()
		}
		rec, err := mapping.Parse(mapSc.Text())
		if err != nil {
			return err
		}
		held, haveHeld = rec, true
		return nil
	}
	if err := advance(); err != nil {
		return err
	}

	qit := &queryIterator{ctx: ctx, paths: cfg.QuerySequences}
	defer qit.close(ctx)

	var qrec fastascan.Record
	for haveHeld {
		ok, err := qit.next(&qrec)
		if err != nil {
			return err
		}
		if !ok {
			break // end of FASTA: nothing left to pair mappings against.
		}
		seq.UppercaseInplace(qrec.Seq)

		if held.QID != qrec.ID {
			// This query has no mappings in this grouping; the held
			// mapping belongs to a later query and is retained.
			continue
		}

		owned := make([]byte, len(qrec.Seq))
		copy(owned, qrec.Seq)
		for haveHeld && held.QID == qrec.ID {
			q1 <- workUnit{Record: held, QuerySeq: owned}
			if err := advance(); err != nil {
				return err
			}
		}
		// haveHeld == false here means the mapping file is exhausted, so
		// the outer loop condition stops reading further queries.
	}
	return nil
}
