package seq_test

import (
	"testing"

	"github.com/grailbio/pawalign/seq"
)

func TestUppercaseInplace(t *testing.T) {
	b := []byte("acgtACGTnN")
	seq.UppercaseInplace(b)
	if got, want := string(b), "ACGTACGTNN"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReverseComplement(t *testing.T) {
	tests := []struct{ in, want string }{
		{"ACGT", "ACGT"},
		{"GGGG", "CCCC"},
		{"AAAACCCC", "GGGGTTTT"},
		{"N", "N"},
		{"ACGTN", "NACGT"},
	}
	for _, tt := range tests {
		dst := make([]byte, len(tt.in))
		seq.ReverseComplement(dst, []byte(tt.in))
		if got := string(dst); got != tt.want {
			t.Errorf("ReverseComplement(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
