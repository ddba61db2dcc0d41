package batch

import "context"

// Result represents an in-flight or completed unit of work.
type Result[T any] struct {
	done   chan struct{}
	val    T
	err    error
	cancel context.CancelFunc
	queue  *Queue
}

// Done returns a channel that is closed when this unit completes.
func (r *Result[T]) Done() <-chan struct{} { return r.done }

// Value blocks until this unit completes and returns what it produced.
func (r *Result[T]) Value() (T, error) {
	<-r.done
	return r.val, r.err
}

// Err blocks until this unit completes and returns its error.
func (r *Result[T]) Err() error {
	<-r.done
	return r.err
}

// Wait blocks until all work on the same queue completes.
// Returns all errors joined.
func (r *Result[T]) Wait() error {
	return r.queue.Wait()
}

// Cancel cancels this unit's context.
func (r *Result[T]) Cancel() {
	r.cancel()
}
