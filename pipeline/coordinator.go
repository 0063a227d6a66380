package pipeline

import (
	"context"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/pawalign/aligner"
	"github.com/grailbio/pawalign/aligner/edlib"
	"github.com/grailbio/pawalign/aligner/wfa"
	"github.com/grailbio/pawalign/refidx"
	pkgerrors "github.com/pkg/errors"
)

// Run builds the Reference Index, allocates Q1/Q2, spawns the Reader, the
// Worker pool, and the Writer, and returns the first fatal error captured by
// any of them, or nil.
//
// Termination follows channel-close happens-before edges: the Reader closes
// q1 when it is done; each Worker ranges over q1 until it sees that close; a
// closer goroutine waits for every Worker to finish before closing q2; the
// Writer ranges over q2 until it sees that close.
func Run(ctx context.Context, cfg Config) error {
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}

	log.Printf("pawalign: building reference index from %v", cfg.RefSequences)
	refs, err := refidx.Build(ctx, cfg.RefSequences)
	if err != nil {
		return pkgerrors.Wrap(err, "pawalign: building reference index")
	}

	al, err := newAligner(cfg.AlignerBackend)
	if err != nil {
		return err
	}

	q1 := make(chan workUnit, queueCapacity)
	q2 := make(chan string, queueCapacity)

	var firstErr errors.Once

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		if err := runReader(ctx, cfg, q1); err != nil {
			log.Printf("pawalign: reader error: %v", err)
			firstErr.Set(err)
		}
	}()

	var workers sync.WaitGroup
	for i := 0; i < threads; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			runWorker(cfg, refs, al, q1, q2)
		}()
	}
	go func() {
		workers.Wait()
		close(q2)
	}()

	if err := runWriter(ctx, cfg.SamOutputFile, q2); err != nil {
		log.Printf("pawalign: writer error: %v", err)
		firstErr.Set(err)
	} else {
		// q2 only closes after every Worker saw q1 close, so the Reader has
		// returned; wait until its error, if any, has been recorded.
		<-readerDone
	}

	return firstErr.Err()
}

// newAligner constructs the pluggable pairwise aligner named by backend,
// defaulting to the banded edit-distance kernel.
func newAligner(backend string) (aligner.Aligner, error) {
	switch backend {
	case "", "edlib":
		return edlib.New(), nil
	case "wfa":
		return wfa.New(), nil
	default:
		return nil, pkgerrors.Errorf("pawalign: unknown aligner backend %q", backend)
	}
}
