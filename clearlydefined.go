// Package clearlydefined is a client for the ClearlyDefined API, which
// serves license and provenance data for open source components.
//
// Components are named by coordinates, see the coordinate package. The
// client package does the HTTP work and the definitions package holds
// the decoded responses.
package clearlydefined

import (
	"github.com/adamwoolhether/clearlydefined/client"
)

// DefaultBaseURL is the public ClearlyDefined API.
const DefaultBaseURL = client.DefaultBaseURL

// NewClient instantiates a new *Client with the provided options.
// If not specified, requests go to [DefaultBaseURL] through the default
// http.Transport.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}
