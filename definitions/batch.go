package definitions

import (
	"github.com/adamwoolhether/clearlydefined/coordinate"
)

// MaxBatchSize is the most coordinates the service accepts in a single
// batch request.
const MaxBatchSize = 1000

// Batches splits coords into chunks of at most size coordinates, preserving
// order. A size <= 0 or above [MaxBatchSize] is clamped to MaxBatchSize.
//
// Batch requests are slow on the service side and can time out, so callers
// fetching many coordinates usually want a modest size and several requests.
func Batches(size int, coords []coordinate.Coordinate) [][]coordinate.Coordinate {
	if size <= 0 || size > MaxBatchSize {
		size = MaxBatchSize
	}

	var batches [][]coordinate.Coordinate
	for start := 0; start < len(coords); start += size {
		end := min(start+size, len(coords))
		batches = append(batches, coords[start:end:end])
	}

	return batches
}

// Payload is the request body for the batch endpoint: a JSON array of
// canonical coordinate strings.
func Payload(coords []coordinate.Coordinate) []string {
	out := make([]string, len(coords))
	for i, c := range coords {
		out[i] = c.String()
	}

	return out
}
