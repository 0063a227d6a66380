package pipeline

import (
	"bufio"
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// runWriter is the sole consumer of q2: it writes each non-empty line
// verbatim until q2 is closed (i.e. every Worker has terminated). Ordering
// follows q2's dequeue order, which is not guaranteed to match input order.
func runWriter(ctx context.Context, outPath string, q2 <-chan string) error {
	out, err := file.Create(ctx, outPath)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out.Writer(ctx))

	var once errors.Once
	for line := range q2 {
		if line == "" {
			continue
		}
		_, werr := w.WriteString(line)
		once.Set(werr)
	}
	once.Set(w.Flush())
	once.Set(out.Close(ctx))
	return once.Err()
}
