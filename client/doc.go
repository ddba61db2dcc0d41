// Package client talks to the ClearlyDefined definitions API over HTTP.
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(30 * time.Second),
//		client.WithUserAgent("myapp/1.0"),
//	)
//
// Without [WithBaseURL] the client talks to [DefaultBaseURL].
//
// # Fetching Definitions
//
// [Client.Definitions] posts the coordinates in batches and blocks until
// every batch has been answered:
//
//	resp, err := c.Definitions(ctx, coordinate.MustParse("npm/npmjs/-/lodash/4.17.21"))
//	def, ok := resp.Lookup(coord)
//
// [Client.DefinitionsAsync] sends the batches concurrently and returns
// immediately:
//
//	p := c.DefinitionsAsync(ctx, coords, client.WithConcurrency(4))
//	// ... do other work ...
//	resp, err := p.Wait()
//
// # Errors
//
// Failures to reach the service wrap [ErrTransport]. A response with an
// unexpected status is an [*UnexpectedStatusError] wrapping
// [ErrUnexpectedStatusCode], and a body that can't be decoded wraps
// [definitions.ErrDecode].
//
// # Lower Level Requests
//
// Endpoints without a typed method, such as curations, can be called by
// building a [Request] and executing it with [Client.Do], the same path
// the typed methods take:
//
//	u := c.BaseURL().JoinPath("curations", coord.Path())
//	req, err := client.Request(ctx, u, http.MethodGet)
//	err = c.Do(req, http.StatusOK, client.WithDestination(&result))
package client
