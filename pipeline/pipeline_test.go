package pipeline_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/pawalign/pipeline"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func runPipeline(t *testing.T, cfg pipeline.Config) string {
	t.Helper()
	err := pipeline.Run(vcontext.Background(), cfg)
	require.NoError(t, err)
	out, err := os.ReadFile(cfg.SamOutputFile)
	require.NoError(t, err)
	return string(out)
}

// S1 — FWD single alignment.
func TestPipelineForwardStrandExactMatch(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.fa", ">r1\nACGTACGTAC\n")
	qry := writeFile(t, dir, "q.fa", ">q1\nACGTACGT\n")
	paf := writeFile(t, dir, "map.paf", "q1\t8\t0\t7\t+\tr1\t10\t0\t7\n")
	out := filepath.Join(dir, "out.paf")

	lines := strings.Split(strings.TrimSpace(runPipeline(t, pipeline.Config{
		RefSequences:   []string{ref},
		QuerySequences: []string{qry},
		MashmapPafFile: paf,
		SamOutputFile:  out,
		Threads:        2,
	})), "\n")
	require.Len(t, lines, 1)
	require.True(t, strings.HasPrefix(lines[0], "q1\t8\t0\t7\t+\tr1\t10\t0\t7"))
	require.Contains(t, lines[0], "cg:Z:8=")
}

// S2 — REV strand.
func TestPipelineReverseStrand(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.fa", ">r1\nAAAACCCC\n")
	qry := writeFile(t, dir, "q.fa", ">q1\nGGGG\n")
	paf := writeFile(t, dir, "map.paf", "q1\t4\t0\t3\t-\tr1\t8\t4\t7\n")
	out := filepath.Join(dir, "out.paf")

	result := runPipeline(t, pipeline.Config{
		RefSequences:   []string{ref},
		QuerySequences: []string{qry},
		MashmapPafFile: paf,
		SamOutputFile:  out,
		Threads:        1,
	})
	require.Contains(t, result, "cg:Z:4=")
}

// S3 — single mismatch with bounded divergence.
func TestPipelineBoundedDivergence(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.fa", ">r1\nACGTACGTAC\n")
	qry := writeFile(t, dir, "q.fa", ">q1\nACGTCCGTAC\n")
	paf := writeFile(t, dir, "map.paf", "q1\t10\t0\t9\t+\tr1\t10\t0\t9\n")
	out := filepath.Join(dir, "out.paf")

	result := runPipeline(t, pipeline.Config{
		RefSequences:       []string{ref},
		QuerySequences:     []string{qry},
		MashmapPafFile:     paf,
		SamOutputFile:      out,
		Threads:            1,
		PercentageIdentity: 80,
	})
	require.Contains(t, result, "ed:i:1")
}

// S4 — query without mappings is skipped.
func TestPipelineUnmappedQueryIsSkipped(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.fa", ">r1\nACGTACGTAC\n")
	qry := writeFile(t, dir, "q.fa", ">q1\nACGT\n>q2\nACGTACGT\n>q3\nTTTT\n")
	paf := writeFile(t, dir, "map.paf", "q2\t8\t0\t7\t+\tr1\t10\t0\t7\n")
	out := filepath.Join(dir, "out.paf")

	result := runPipeline(t, pipeline.Config{
		RefSequences:   []string{ref},
		QuerySequences: []string{qry},
		MashmapPafFile: paf,
		SamOutputFile:  out,
		Threads:        1,
	})
	lines := strings.Split(strings.TrimSpace(result), "\n")
	require.Len(t, lines, 1)
	require.True(t, strings.HasPrefix(lines[0], "q2"))
}

// S5 — interleaved groups.
func TestPipelineInterleavedGroups(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.fa", ">r1\nACGTACGTACGTACGT\n")
	qry := writeFile(t, dir, "q.fa", ">q1\nACGTACGT\n>q2\nACGT\n")
	paf := writeFile(t, dir, "map.paf",
		"q1\t8\t0\t3\t+\tr1\t16\t0\t3\n"+
			"q1\t8\t4\t7\t+\tr1\t16\t4\t7\n"+
			"q2\t4\t0\t3\t+\tr1\t16\t8\t11\n")
	out := filepath.Join(dir, "out.paf")

	result := runPipeline(t, pipeline.Config{
		RefSequences:   []string{ref},
		QuerySequences: []string{qry},
		MashmapPafFile: paf,
		SamOutputFile:  out,
		Threads:        4,
	})
	lines := strings.Split(strings.TrimSpace(result), "\n")
	require.Len(t, lines, 3)
}

// S6 — aligner failure under an impossibly tight edit-distance limit.
func TestPipelineAlignerFailureProducesNoOutput(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.fa", ">r1\nTTTTTTTTTT\n")
	qry := writeFile(t, dir, "q.fa", ">q1\nAAAAAAAAAA\n")
	paf := writeFile(t, dir, "map.paf", "q1\t10\t0\t9\t+\tr1\t10\t0\t9\n")
	out := filepath.Join(dir, "out.paf")

	result := runPipeline(t, pipeline.Config{
		RefSequences:       []string{ref},
		QuerySequences:     []string{qry},
		MashmapPafFile:     paf,
		SamOutputFile:      out,
		Threads:            1,
		PercentageIdentity: 100,
	})
	require.Empty(t, strings.TrimSpace(result))
}

func TestPipelineWfaBackend(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.fa", ">r1\nACGTACGTAC\n")
	qry := writeFile(t, dir, "q.fa", ">q1\nACGTACGT\n")
	paf := writeFile(t, dir, "map.paf", "q1\t8\t0\t7\t+\tr1\t10\t0\t7\n")
	out := filepath.Join(dir, "out.paf")

	result := runPipeline(t, pipeline.Config{
		RefSequences:   []string{ref},
		QuerySequences: []string{qry},
		MashmapPafFile: paf,
		SamOutputFile:  out,
		Threads:        1,
		AlignerBackend: "wfa",
	})
	require.Contains(t, result, "cg:Z:8=")
}

func TestPipelineUnknownBackendIsFatal(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.fa", ">r1\nACGT\n")
	qry := writeFile(t, dir, "q.fa", ">q1\nACGT\n")
	paf := writeFile(t, dir, "map.paf", "q1\t4\t0\t3\t+\tr1\t4\t0\t3\n")
	out := filepath.Join(dir, "out.paf")

	err := pipeline.Run(vcontext.Background(), pipeline.Config{
		RefSequences:   []string{ref},
		QuerySequences: []string{qry},
		MashmapPafFile: paf,
		SamOutputFile:  out,
		Threads:        1,
		AlignerBackend: "bogus",
	})
	require.Error(t, err)
}
