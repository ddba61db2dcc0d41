package client

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/clearlydefined/client/batch"
	"github.com/adamwoolhether/clearlydefined/coordinate"
	"github.com/adamwoolhether/clearlydefined/definitions"
)

// AsyncOption is a functional option for [Client.DefinitionsAsync].
type AsyncOption func(*asyncOpts) error

type asyncOpts struct {
	concurrency int
}

// WithConcurrency bounds how many batches are in flight at once.
// Zero, the default, sends every batch at once.
func WithConcurrency(n int) AsyncOption {
	return func(opts *asyncOpts) error {
		if n < 0 {
			return errors.New("concurrency must not be negative")
		}
		opts.concurrency = n
		return nil
	}
}

// Pending is an in-flight [Client.DefinitionsAsync] call.
type Pending struct {
	queue   *batch.Queue
	results []*batch.Result[*definitions.Response]
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
}

// DefinitionsAsync is the non-blocking form of [Client.Definitions]. Each
// batch is sent from its own goroutine and a failing batch does not stop
// the others.
func (c *Client) DefinitionsAsync(ctx context.Context, coords []coordinate.Coordinate, optFns ...AsyncOption) *Pending {
	var opts asyncOpts
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			p := &Pending{
				queue:  batch.NewQueue(0),
				cancel: func() {},
				done:   make(chan struct{}),
				err:    fmt.Errorf("applying async option: %w", err),
			}
			close(p.done)
			return p
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	ctx, span := c.tracer.Start(ctx, "clearlydefined.DefinitionsAsync",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.Int("clearlydefined.coordinates", len(coords)),
			attribute.Int("clearlydefined.concurrency", opts.concurrency),
		),
	)

	p := &Pending{
		queue:  batch.NewQueue(opts.concurrency),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	batches := definitions.Batches(c.batchSize, coords)
	for i, b := range batches {
		r := batch.Start(ctx, p.queue, func(ctx context.Context) (*definitions.Response, error) {
			resp, err := c.fetchBatch(ctx, b)
			if err != nil {
				return nil, fmt.Errorf("batch %d of %d: %w", i+1, len(batches), err)
			}
			return resp, nil
		})
		p.results = append(p.results, r)
	}

	go func() {
		defer close(p.done)
		defer cancel()
		defer span.End()

		if err := p.queue.Wait(); err != nil {
			recordErr(span, err)
		}
	}()

	return p
}

// Done returns a channel that is closed once every batch has finished.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until every batch has finished and returns the merged
// response. On failure the response still holds the batches that
// succeeded, alongside every batch error joined.
func (p *Pending) Wait() (*definitions.Response, error) {
	<-p.done

	if p.err != nil {
		return nil, p.err
	}

	parts := make([]*definitions.Response, 0, len(p.results))
	for _, r := range p.results {
		if resp, err := r.Value(); err == nil {
			parts = append(parts, resp)
		}
	}

	return definitions.NewResponse(nil).Merge(parts...), p.queue.Wait()
}

// Cancel aborts every batch still waiting or in flight.
func (p *Pending) Cancel() {
	p.cancel()
}

// Results returns a handle per batch, in request order.
func (p *Pending) Results() []*batch.Result[*definitions.Response] {
	return p.results
}
