// Package fastascan provides a streaming, one-record-at-a-time FASTA
// reader in the style of github.com/grailbio/bio/encoding/fastq's Scanner:
// Scan(*Record) fills in the next record and reports whether it succeeded,
// and Err distinguishes a clean end-of-stream from a read error.
//
// Unlike encoding/fasta (which loads an entire file into memory), Scanner
// is built for the pipeline Reader, which must walk a (potentially huge)
// query FASTA file one record at a time in lock-step with a mapping file.
package fastascan

import (
	"bufio"
	"errors"
	"io"
)

const bufferInitSize = 300 * 1024 * 1024

// Record is a single FASTA sequence: its identifier (the first
// whitespace-delimited token after '>') and raw sequence bytes.
type Record struct {
	ID  string
	Seq []byte
}

// Scanner reads FASTA records one at a time from an underlying stream.
// Scanners are not thread-safe.
type Scanner struct {
	sc      *bufio.Scanner
	err     error
	started bool
	done    bool
	nextID  string
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, bufferInitSize)
	return &Scanner{sc: sc}
}

// Scan reads the next FASTA record into rec and reports whether it
// succeeded. Once Scan returns false, it never returns true again; the
// caller should check Err to distinguish a clean EOF from a read error.
func (s *Scanner) Scan(rec *Record) bool {
	if s.err != nil || s.done {
		return false
	}

	id := s.nextID
	if !s.started {
		var found bool
		for s.sc.Scan() {
			line := s.sc.Bytes()
			if len(line) == 0 {
				continue
			}
			if line[0] != '>' {
				s.err = errors.New("fastascan: sequence data before first header")
				return false
			}
			id = firstToken(line[1:])
			found = true
			break
		}
		if !found {
			if err := s.sc.Err(); err != nil {
				s.err = err
			}
			s.done = true
			return false
		}
		s.started = true
	}

	var buf []byte
	for s.sc.Scan() {
		line := s.sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			s.nextID = firstToken(line[1:])
			rec.ID, rec.Seq = id, buf
			return true
		}
		buf = append(buf, line...)
	}
	if err := s.sc.Err(); err != nil {
		s.err = err
		return false
	}
	s.done = true
	rec.ID, rec.Seq = id, buf
	return true
}

// Err returns the error that stopped scanning, or nil if scanning stopped
// because the stream was exhausted cleanly.
func (s *Scanner) Err() error {
	return s.err
}

func firstToken(header []byte) string {
	i := 0
	for i < len(header) && header[i] != ' ' && header[i] != '\t' {
		i++
	}
	return string(header[:i])
}
