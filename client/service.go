package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/clearlydefined/coordinate"
	"github.com/adamwoolhether/clearlydefined/definitions"
)

const definitionsPath = "definitions"

var acceptJSON = map[string][]string{"Accept": {"application/json"}}

// Definitions fetches the definitions for coords. Coordinates are sent in
// batches of the configured size, one request after another, and the
// responses are merged. The first failing batch aborts the call.
func (c *Client) Definitions(ctx context.Context, coords ...coordinate.Coordinate) (*definitions.Response, error) {
	ctx, span := c.tracer.Start(ctx, "clearlydefined.Definitions",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int("clearlydefined.coordinates", len(coords))),
	)
	defer span.End()

	batches := definitions.Batches(c.batchSize, coords)
	parts := make([]*definitions.Response, 0, len(batches))
	for i, b := range batches {
		resp, err := c.fetchBatch(ctx, b)
		if err != nil {
			return nil, recordErr(span, fmt.Errorf("batch %d of %d: %w", i+1, len(batches), err))
		}
		parts = append(parts, resp)
	}

	return definitions.NewResponse(nil).Merge(parts...), nil
}

// Definition fetches a single definition. Unlike [Client.Definitions] the
// coordinate travels in the URL path.
func (c *Client) Definition(ctx context.Context, coord coordinate.Coordinate) (*definitions.Definition, error) {
	ctx, span := c.tracer.Start(ctx, "clearlydefined.Definition",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("clearlydefined.coordinate", coord.String())),
	)
	defer span.End()

	// The coordinate becomes the URL path, so one that skipped Parse must
	// not reach the service.
	if err := coord.Validate(); err != nil {
		return nil, recordErr(span, fmt.Errorf("definition %s: %w", coord, err))
	}

	req, err := Request(ctx, c.endpoint(definitionsPath, coord.Path()), http.MethodGet, WithHeaders(acceptJSON))
	if err != nil {
		return nil, recordErr(span, err)
	}

	c.logger.DebugContext(ctx, "requesting definition", "url", req.URL.Redacted())

	var def definitions.Definition
	if err := c.Do(req, http.StatusOK, WithDestination(&def)); err != nil {
		return nil, recordErr(span, fmt.Errorf("definition %s: %w", coord, err))
	}

	return &def, nil
}

// Search returns the coordinates the service knows that match pattern.
func (c *Client) Search(ctx context.Context, pattern string) ([]coordinate.Coordinate, error) {
	if pattern == "" {
		return nil, errors.New("search pattern must not be empty")
	}

	ctx, span := c.tracer.Start(ctx, "clearlydefined.Search",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("clearlydefined.pattern", pattern)),
	)
	defer span.End()

	u := c.endpoint(definitionsPath)
	u.RawQuery = url.Values{"pattern": {pattern}}.Encode()

	req, err := Request(ctx, u, http.MethodGet, WithHeaders(acceptJSON))
	if err != nil {
		return nil, recordErr(span, err)
	}

	c.logger.DebugContext(ctx, "searching definitions", "url", req.URL.Redacted())

	var coords []coordinate.Coordinate
	if err := c.Do(req, http.StatusOK, WithDestination(&coords)); err != nil {
		return nil, recordErr(span, fmt.Errorf("search %q: %w", pattern, err))
	}

	span.SetAttributes(attribute.Int("clearlydefined.results", len(coords)))

	return coords, nil
}

// fetchBatch posts one batch to the definitions endpoint.
func (c *Client) fetchBatch(ctx context.Context, coords []coordinate.Coordinate) (*definitions.Response, error) {
	req, err := Request(ctx, c.endpoint(definitionsPath), http.MethodPost,
		WithPayload(definitions.Payload(coords)),
		WithHeaders(acceptJSON),
	)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "requesting definitions", "url", req.URL.Redacted(), "coordinates", len(coords))

	var out definitions.Response
	if err := c.Do(req, http.StatusOK, WithDestination(&out)); err != nil {
		return nil, err
	}

	return &out, nil
}

// endpoint resolves already escaped path elements against the base URL.
func (c *Client) endpoint(elem ...string) *url.URL {
	return c.baseURL.JoinPath(elem...)
}

func recordErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
