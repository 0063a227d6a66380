package fastascan_test

import (
	"strings"
	"testing"

	"github.com/grailbio/pawalign/fastascan"
)

func TestScanMultipleRecords(t *testing.T) {
	data := ">q1\nACGT\nACGT\n>q2 description\nTTTT\n>q3\nG\n"
	sc := fastascan.NewScanner(strings.NewReader(data))

	var got []fastascan.Record
	var rec fastascan.Record
	for sc.Scan(&rec) {
		got = append(got, fastascan.Record{ID: rec.ID, Seq: append([]byte(nil), rec.Seq...)})
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	want := []struct {
		id  string
		seq string
	}{
		{"q1", "ACGTACGT"},
		{"q2", "TTTT"},
		{"q3", "G"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].ID != w.id || string(got[i].Seq) != w.seq {
			t.Errorf("record %d = %+v, want {%s %s}", i, got[i], w.id, w.seq)
		}
	}
}

func TestScanEmpty(t *testing.T) {
	sc := fastascan.NewScanner(strings.NewReader(""))
	var rec fastascan.Record
	if sc.Scan(&rec) {
		t.Fatal("expected no records from empty input")
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestScanDataBeforeHeader(t *testing.T) {
	sc := fastascan.NewScanner(strings.NewReader("ACGT\n>q1\nACGT\n"))
	var rec fastascan.Record
	if sc.Scan(&rec) {
		t.Fatal("expected scan failure")
	}
	if sc.Err() == nil {
		t.Fatal("expected error")
	}
}
