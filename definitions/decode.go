package definitions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/adamwoolhether/clearlydefined/coordinate"
)

// ErrDecode is wrapped by every failure to turn a response body into typed values.
var ErrDecode = errors.New("decoding response")

var (
	errMissingCoordinates = errors.New("definition is missing field 'coordinates'")
	errTrailingData       = errors.New("unexpected data after top-level value")
)

// UnmarshalJSON decodes a definition. Rather than failing for coordinates it
// has never harvested, the service returns a partially filled definition, so
// a described or licensed section that is incomplete is dropped to nil
// instead of failing the whole response.
func (d *Definition) UnmarshalJSON(b []byte) error {
	var raw struct {
		Coordinates *Coordinates    `json:"coordinates"`
		Described   json.RawMessage `json:"described"`
		Licensed    json.RawMessage `json:"licensed"`
		Files       []File          `json:"files"`
		Scores      Scores          `json:"scores"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	if raw.Coordinates == nil {
		return errMissingCoordinates
	}

	*d = Definition{
		Coordinates: *raw.Coordinates,
		Described:   decodeDescribed(raw.Described),
		Licensed:    decodeLicensed(raw.Licensed),
		Files:       raw.Files,
		Scores:      raw.Scores,
	}

	return nil
}

func decodeDescribed(b json.RawMessage) *Description {
	if isNull(b) {
		return nil
	}

	var probe struct {
		ReleaseDate *Date `json:"releaseDate"`
	}
	if err := json.Unmarshal(b, &probe); err != nil || probe.ReleaseDate == nil {
		return nil
	}

	var desc Description
	if err := json.Unmarshal(b, &desc); err != nil {
		return nil
	}

	return &desc
}

func decodeLicensed(b json.RawMessage) *License {
	if isNull(b) {
		return nil
	}

	var probe struct {
		Declared *string `json:"declared"`
	}
	if err := json.Unmarshal(b, &probe); err != nil || probe.Declared == nil {
		return nil
	}

	var lic License
	if err := json.Unmarshal(b, &lic); err != nil {
		return nil
	}

	return &lic
}

func isNull(b json.RawMessage) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

// Response holds the definitions returned for a batch, keyed by the
// coordinate string that was requested.
type Response struct {
	// Definitions are ordered by their request key.
	Definitions []Definition

	keys  []string
	index map[string]int
}

// NewResponse builds a Response from definitions keyed by coordinate string.
func NewResponse(items map[string]Definition) *Response {
	r := &Response{
		keys:  slices.Sorted(maps.Keys(items)),
		index: make(map[string]int, len(items)),
	}

	r.Definitions = make([]Definition, 0, len(items))
	for i, k := range r.keys {
		r.Definitions = append(r.Definitions, items[k])
		r.index[k] = i
	}

	return r
}

// Len returns the number of definitions.
func (r *Response) Len() int {
	if r == nil {
		return 0
	}

	return len(r.Definitions)
}

// Keys returns the request keys in the same order as Definitions.
func (r *Response) Keys() []string {
	if r == nil {
		return nil
	}

	return slices.Clone(r.keys)
}

// Lookup returns the definition requested for c.
func (r *Response) Lookup(c coordinate.Coordinate) (*Definition, bool) {
	if r == nil {
		return nil, false
	}

	i, ok := r.index[c.String()]
	if !ok {
		return nil, false
	}

	return &r.Definitions[i], true
}

// Merge combines r with others into a new Response. Later entries win
// when the same key appears more than once.
func (r *Response) Merge(others ...*Response) *Response {
	items := make(map[string]Definition)
	for _, resp := range append([]*Response{r}, others...) {
		if resp == nil {
			continue
		}
		for i, k := range resp.keys {
			items[k] = resp.Definitions[i]
		}
	}

	return NewResponse(items)
}

// MarshalJSON encodes the response in the same shape the service sends it.
func (r *Response) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("{}"), nil
	}

	items := make(map[string]Definition, len(r.keys))
	for i, k := range r.keys {
		items[k] = r.Definitions[i]
	}

	return json.Marshal(items)
}

// UnmarshalJSON implements [json.Unmarshaler].
func (r *Response) UnmarshalJSON(b []byte) error {
	var items map[string]Definition
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}

	*r = *NewResponse(items)
	return nil
}

// Decode reads exactly one JSON value from r into v. Anything but
// whitespace after the value is an error.
func Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrDecode, errTrailingData)
	}

	return nil
}

// DecodeResponse reads the body returned by the batch definitions endpoint.
func DecodeResponse(r io.Reader) (*Response, error) {
	var resp Response
	if err := Decode(r, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// DecodeDefinition reads the body returned for a single coordinate.
func DecodeDefinition(r io.Reader) (*Definition, error) {
	var def Definition
	if err := Decode(r, &def); err != nil {
		return nil, err
	}

	return &def, nil
}

// DecodeCoordinates reads a JSON array of coordinate strings, as returned
// by the search endpoint.
func DecodeCoordinates(r io.Reader) ([]coordinate.Coordinate, error) {
	var coords []coordinate.Coordinate
	if err := Decode(r, &coords); err != nil {
		return nil, err
	}

	return coords, nil
}
