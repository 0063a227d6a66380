package main

// pawalign-align computes base-level pairwise alignments for mapping
// records produced by an upstream sketch-based mapper, given the query and
// reference FASTA files the records were derived from.

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/pawalign/pipeline"
)

var (
	refSequences       = flag.String("ref", "", "Comma-separated list of reference FASTA paths (gzipped or plain)")
	querySequences     = flag.String("query", "", "Comma-separated list of query FASTA paths; qId order must match -mashmap-paf")
	mashmapPafFile     = flag.String("mashmap-paf", "", "Path to the sorted, qId-grouped mapping input")
	samOutputFile      = flag.String("out", "", "Path to the alignment output (PAF-shaped, despite the flag name)")
	threads            = flag.Int("threads", 1, "Number of alignment worker threads")
	percentageIdentity = flag.Float64("percentage-identity", 0, "Target minimum percent identity; 0 means unbounded edit distance")
	alignerBackend     = flag.String("aligner", "edlib", "Pairwise aligner backend: \"edlib\" (banded edit distance) or \"wfa\" (gap-affine)")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -ref r1.fa[,r2.fa...] -query q1.fa[,q2.fa...] -mashmap-paf map.paf -out out.paf\n", os.Args[0])
	flag.PrintDefaults()
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()
	flag.Parse()

	if *refSequences == "" || *querySequences == "" || *mashmapPafFile == "" || *samOutputFile == "" {
		usage()
		log.Panicf("missing one of -ref, -query, -mashmap-paf, -out")
	}

	cfg := pipeline.Config{
		RefSequences:       splitList(*refSequences),
		QuerySequences:     splitList(*querySequences),
		MashmapPafFile:     *mashmapPafFile,
		SamOutputFile:      *samOutputFile,
		Threads:            *threads,
		PercentageIdentity: *percentageIdentity,
		AlignerBackend:     *alignerBackend,
	}

	ctx := vcontext.Background()
	if err := pipeline.Run(ctx, cfg); err != nil {
		log.Panicf("pawalign-align: %v", err)
	}
	log.Debug.Printf("pawalign-align: done")
}
