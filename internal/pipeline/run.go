package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/internal/logging"
	"github.com/satprobe/satdsp/internal/signalio"
	"github.com/satprobe/satdsp/internal/store"
)

// ChannelResult is the output of one trace processed by RunChannels.
type ChannelResult struct {
	ID     int
	Name   string
	Output []float64
}

// RunChannels runs the named algorithm on every trace concurrently, then adds
// each trace to st with its output recorded through st.AddResult. At most
// limit traces are processed at once; limit <= 0 means no limit. The first
// error cancels the remaining work and leaves st untouched. Results are in
// trace order.
func (r *Registry) RunChannels(ctx context.Context, st *store.Store, name string, traces []signalio.Trace, limit int) ([]ChannelResult, error) {
	if _, ok := r.Lookup(name); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	for _, tr := range traces {
		if err := core.RequireSamples(tr.Voltage); err != nil {
			return nil, fmt.Errorf("trace %q: %w", tr.Name, err)
		}
	}

	outputs := make([][]float64, len(traces))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for k, tr := range traces {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := r.Process(gctx, name, tr.Voltage)
			if err != nil {
				return err
			}
			if len(out) != len(tr.Voltage) {
				return fmt.Errorf("%w: %s returned %d samples for trace %q of %d",
					store.ErrLengthMismatch, name, len(out), tr.Name, len(tr.Voltage))
			}
			outputs[k] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]ChannelResult, len(traces))
	for k, tr := range traces {
		id, err := st.Add(tr)
		if err != nil {
			return nil, err
		}
		if err := st.AddResult(id, name, outputs[k]); err != nil {
			return nil, err
		}
		results[k] = ChannelResult{ID: id, Name: tr.Name, Output: outputs[k]}
		r.log.WithContext(ctx).Info("channel processed", logging.Fields{
			"algorithm": name,
			"trace":     tr.Name,
			"id":        id,
		})
	}
	return results, nil
}
