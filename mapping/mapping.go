// Package mapping parses PAF-shaped query-to-reference mapping records
// produced by an upstream sketch-based mapper.
package mapping

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Strand is the orientation of a query against its mapped reference window.
type Strand byte

const (
	// FWD is the forward strand ('+' in the mapping file).
	FWD Strand = iota
	// REV is the reverse strand ('-' in the mapping file); the query
	// substring must be reverse-complemented before alignment.
	REV
)

func (s Strand) String() string {
	if s == REV {
		return "-"
	}
	return "+"
}

// Record is a single parsed mapping line. Field numbering follows the
// PAF-shaped column layout: qId(0), qStart(2), qEnd(3), strand(4), refId(5),
// rStart(7), rEnd(8). Columns beyond 8 are ignored. Raw retains the
// original line verbatim for pass-through into the output record.
type Record struct {
	QID    string
	QStart int
	QEnd   int
	Strand Strand
	RefID  string
	RStart int
	REnd   int
	Raw    string
}

// Parse converts one whitespace-delimited mapping line into a Record. It
// requires at least 9 columns, non-negative integer positions with
// QStart<=QEnd and RStart<=REnd, and a strand token of '+' or '-'. Any
// violation is a fatal (non-recoverable) parse error.
func Parse(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 9 {
		return Record{}, errors.Errorf("mapping: need at least 9 columns, got %d: %q", len(fields), line)
	}

	qStart, err := parsePos(fields[2])
	if err != nil {
		return Record{}, errors.Wrap(err, "mapping: qStart")
	}
	qEnd, err := parsePos(fields[3])
	if err != nil {
		return Record{}, errors.Wrap(err, "mapping: qEnd")
	}
	if qStart > qEnd {
		return Record{}, errors.Errorf("mapping: qStart %d > qEnd %d", qStart, qEnd)
	}

	var strand Strand
	switch fields[4] {
	case "+":
		strand = FWD
	case "-":
		strand = REV
	default:
		return Record{}, errors.Errorf("mapping: unknown strand token %q", fields[4])
	}

	rStart, err := parsePos(fields[7])
	if err != nil {
		return Record{}, errors.Wrap(err, "mapping: rStart")
	}
	rEnd, err := parsePos(fields[8])
	if err != nil {
		return Record{}, errors.Wrap(err, "mapping: rEnd")
	}
	if rStart > rEnd {
		return Record{}, errors.Errorf("mapping: rStart %d > rEnd %d", rStart, rEnd)
	}

	return Record{
		QID:    fields[0],
		QStart: qStart,
		QEnd:   qEnd,
		Strand: strand,
		RefID:  fields[5],
		RStart: rStart,
		REnd:   rEnd,
		Raw:    line,
	}, nil
}

func parsePos(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Errorf("invalid integer %q", s)
	}
	if n < 0 {
		return 0, errors.Errorf("negative position %d", n)
	}
	return int(n), nil
}
