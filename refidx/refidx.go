// Package refidx loads DNA reference sequences into an immutable,
// thread-safe, read-only index keyed by sequence identifier.
//
// It is adapted from github.com/grailbio/bio/encoding/fasta, generalized to
// read several FASTA inputs (gzipped or plain) into one shared index rather
// than a single eagerly-loaded or faidx-indexed file.
package refidx

import (
	"bufio"
	"context"
	"io"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/pawalign/seq"
	"github.com/pkg/errors"
)

const bufferInitSize = 300 * 1024 * 1024

// Index is an immutable, concurrency-safe mapping from reference sequence
// identifier to its full upper-cased nucleotide sequence. An Index is built
// once by Build and is never mutated afterward, so Get requires no locking.
type Index struct {
	seqs map[string][]byte
}

// Build reads every FASTA file in paths, uppercases each sequence, and
// returns an Index keyed by the first whitespace-delimited token of each
// '>' header. It is a fatal error for a sequence identifier to repeat,
// whether within a single file or across files.
//
// Files are read in parallel (one goroutine per path, see
// github.com/grailbio/base/traverse) since each file's sequences are
// independent until the final merge, which is where cross-file duplicates
// are detected.
func Build(ctx context.Context, paths []string) (*Index, error) {
	if len(paths) == 0 {
		return nil, errors.New("refidx: no reference paths given")
	}
	perFile := make([]map[string][]byte, len(paths))
	err := traverse.Each(len(paths), func(i int) error {
		seqs, err := loadFile(ctx, paths[i])
		if err != nil {
			return errors.Wrapf(err, "refidx: %s", paths[i])
		}
		perFile[i] = seqs
		return nil
	})
	if err != nil {
		return nil, err
	}

	merged := make(map[string][]byte)
	for i, seqs := range perFile {
		for id, s := range seqs {
			if _, ok := merged[id]; ok {
				return nil, errors.Errorf("refidx: duplicate reference id %q (encountered again in %s)", id, paths[i])
			}
			merged[id] = s
		}
	}
	return &Index{seqs: merged}, nil
}

func loadFile(ctx context.Context, path string) (map[string][]byte, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer in.Close(ctx) // nolint: errcheck

	var r io.Reader = in.Reader(ctx)
	if z := compress.NewReaderPath(r, in.Name()); z != nil {
		r = z
	}

	seqs := make(map[string][]byte)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, bufferInitSize)

	var curID string
	var cur []byte
	flush := func() error {
		if curID == "" {
			return nil
		}
		if _, ok := seqs[curID]; ok {
			return errors.Errorf("duplicate reference id %q", curID)
		}
		seq.UppercaseInplace(cur)
		seqs[curID] = cur
		return nil
	}

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return nil, err
			}
			curID = firstToken(line[1:])
			cur = make([]byte, 0, 4096)
			continue
		}
		cur = append(cur, line...)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "couldn't read FASTA data")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return seqs, nil
}

// firstToken returns the leading whitespace-delimited token of a FASTA
// header, excluding the '>'.
func firstToken(header []byte) string {
	i := 0
	for i < len(header) && header[i] != ' ' && header[i] != '\t' {
		i++
	}
	return string(header[:i])
}

// Get returns the immutable byte sequence stored for refID. Calling Get with
// an identifier that was not present at Build time is a programmer error and
// panics. The pipeline Reader does not check mapping records' reference ids
// against the Index, so a mapping line naming an unknown reference reaches
// this panic.
func (x *Index) Get(refID string) []byte {
	s, ok := x.seqs[refID]
	if !ok {
		panic("refidx: unknown reference id " + refID)
	}
	return s
}

// Len returns the length of the sequence stored for refID, with the same
// panics-on-absent-key contract as Get.
func (x *Index) Len(refID string) int {
	return len(x.Get(refID))
}

// Has reports whether refID is present in the index.
func (x *Index) Has(refID string) bool {
	_, ok := x.seqs[refID]
	return ok
}
