package pipeline

import "github.com/grailbio/pawalign/mapping"

// queueCapacity bounds Q1 and Q2 at roughly 2^17 slots each. Backpressure is
// then just the blocking-send behavior of a full Go channel.
const queueCapacity = 1 << 17

// workUnit is one Q1 element: a mapping record paired with an owned copy of
// the full query sequence it was grouped under. The Reader owns the copy so
// it can move on to the next FASTA record without pinning buffers that a
// Worker might still be reading.
type workUnit struct {
	Record   mapping.Record
	QuerySeq []byte
}
