// Package batch runs units of work concurrently under a shared
// concurrency limit and collects their results.
//
// A [Queue] bounds how many units run at once. [Start] launches a unit
// on the queue and returns a [Result] that can be waited on or canceled
// on its own, while [Queue.Wait] blocks until every unit has finished:
//
//	q := batch.NewQueue(4)
//	r := batch.Start(ctx, q, func(ctx context.Context) (int, error) {
//		return fetch(ctx)
//	})
//	n, err := r.Value()
//	err = q.Wait() // every failure, joined
package batch
