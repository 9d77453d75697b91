package convert

import (
	"context"

	"golang.org/x/sync/errgroup"

	"mediaforge/internal/logging"
	"mediaforge/internal/media"
)

// Input is one file submitted to a batch conversion.
type Input struct {
	Name string
	Data []byte
}

// Failure records why one batch input did not convert.
type Failure struct {
	Name string `json:"name"`
	Err  error  `json:"-"`
}

// BatchResult aggregates a batch conversion. Items and Failures together
// cover every input, each in input order.
type BatchResult struct {
	Items    []*media.ConvertedMediaItem
	Failures []Failure
}

// ConvertAll converts every input with the same option set. Failures are
// isolated: a failing input is reported in the result and the rest of the
// batch still runs. Fan-out is bounded by limit; the engine serializes
// actual execution internally, so concurrent submission here only overlaps
// staging.
func (c *Converter) ConvertAll(ctx context.Context, inputs []Input, opts Options, limit int) BatchResult {
	if limit < 1 {
		limit = 1
	}

	items := make([]*media.ConvertedMediaItem, len(inputs))
	errs := make([]error, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			item, err := c.Convert(ctx, in.Data, in.Name, opts)
			if err != nil {
				logging.Warn("batch: convert %s: %v", in.Name, err)
				errs[i] = err
				return nil
			}
			items[i] = item
			return nil
		})
	}
	_ = g.Wait()

	var result BatchResult
	for i := range inputs {
		if errs[i] != nil {
			result.Failures = append(result.Failures, Failure{Name: inputs[i].Name, Err: errs[i]})
			continue
		}
		result.Items = append(result.Items, items[i])
	}
	return result
}
