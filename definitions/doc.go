// Package definitions models the definition documents served by
// ClearlyDefined and shapes the requests used to fetch them.
//
// A [Definition] is read-only: it mirrors the JSON the service returns for
// a coordinate, with the described and licensed sections left nil when the
// component has not been harvested.
//
// # Batches
//
// The batch endpoint accepts up to [MaxBatchSize] coordinates per request.
// Use [Batches] to split a larger set and [Payload] to build each body:
//
//	for _, b := range definitions.Batches(250, coords) {
//		body := definitions.Payload(b)
//		...
//	}
//
// Responses are decoded with [DecodeResponse]. Every decoding failure
// wraps [ErrDecode].
package definitions
