package glyphs

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// EncodeBatch encodes triples concurrently, bounded by WithWorkers. The
// result preserves input order and equals encoding each triple in turn.
// Only ctx cancellation can make it fail.
func (e *Encoder) EncodeBatch(ctx context.Context, triples []Triple) ([]Record, error) {
	start := time.Now()

	out := make([]Record, len(triples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.workers)

	for i := range triples {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = e.Encode(gctx, triples[i])
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		// The loop may have stopped early on a canceled parent context
		// without any goroutine observing it.
		err = ctx.Err()
	}

	e.opts.metricsCollector.RecordBatch(len(triples), time.Since(start), err)
	e.opts.logger.LogBatch(ctx, len(triples), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}
