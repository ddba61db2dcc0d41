package coordinate

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	separator = "/"

	// NoNamespace is the placeholder the service expects in the namespace
	// position when a component has none.
	NoNamespace = "-"

	curationMarker = "pr"
)

// Coordinate identifies a single component in the ClearlyDefined namespace.
//
// Type, Provider and Name are always present. Namespace is empty when the
// ecosystem has no grouping, Revision is zero when the latest revision is
// wanted, and CurationPR is zero unless a curation pull request should be
// applied on top of the harvested data.
type Coordinate struct {
	Type       Type     `coord:"type" validate:"required,cdtype"`
	Provider   Provider `coord:"provider" validate:"required,cdprovider"`
	Namespace  string   `coord:"namespace" validate:"omitempty,segment,ne=-"`
	Name       string   `coord:"name" validate:"required,segment"`
	Revision   Revision `coord:"revision" validate:"omitempty,segment"`
	CurationPR int      `coord:"pr" validate:"gte=0"`
}

// New builds a Coordinate from its parts and validates it. A namespace of
// [NoNamespace] is treated the same as an empty one.
func New(t Type, p Provider, namespace, name, revision string) (Coordinate, error) {
	if namespace == NoNamespace {
		namespace = ""
	}

	c := Coordinate{
		Type:      t,
		Provider:  p,
		Namespace: namespace,
		Name:      name,
		Revision:  NewRevision(revision),
	}

	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}

	return c, nil
}

// Parse reads the slash-delimited form of a coordinate:
//
//	type/provider/namespace/name
//	type/provider/namespace/name/revision
//	type/provider/namespace/name/revision/pr/number
func Parse(s string) (Coordinate, error) {
	parts := strings.Split(s, separator)

	switch len(parts) {
	case 4, 5, 7:
	default:
		return Coordinate{}, &ParseError{
			Input:  s,
			Reason: fmt.Sprintf("expected 4, 5 or 7 segments, got %d", len(parts)),
		}
	}

	for i, name := range [...]string{"type", "provider", "namespace", "name"} {
		if parts[i] == "" {
			return Coordinate{}, &ParseError{Input: s, Reason: name + " segment is empty"}
		}
	}

	c := Coordinate{
		Type:      Type(parts[0]),
		Provider:  Provider(parts[1]),
		Namespace: parts[2],
		Name:      parts[3],
	}
	if c.Namespace == NoNamespace {
		c.Namespace = ""
	}

	if len(parts) >= 5 {
		if parts[4] == "" {
			return Coordinate{}, &ParseError{Input: s, Reason: "revision segment is empty"}
		}
		c.Revision = NewRevision(parts[4])
	}

	if len(parts) == 7 {
		if parts[5] != curationMarker {
			return Coordinate{}, &ParseError{
				Input:  s,
				Reason: fmt.Sprintf("expected %q marker, got %q", curationMarker, parts[5]),
			}
		}

		pr, err := parsePR(parts[6])
		if err != nil {
			return Coordinate{}, &ParseError{Input: s, Reason: "bad curation pr number", Err: err}
		}
		c.CurationPR = pr
	}

	if err := c.Validate(); err != nil {
		return Coordinate{}, &ParseError{Input: s, Reason: "validation failed", Err: err}
	}

	return c, nil
}

// parsePR only accepts the canonical decimal form so that formatting
// the result reproduces the input.
func parsePR(s string) (int, error) {
	if s == "" || s[0] < '1' || s[0] > '9' {
		return 0, fmt.Errorf("%q is not a positive integer", s)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}

	return n, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse(s string) Coordinate {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return c
}

// Validate checks every field against what the service accepts in its position.
func (c Coordinate) Validate() error {
	if err := check(c); err != nil {
		return err
	}

	if c.CurationPR > 0 && c.Revision.IsZero() {
		return FieldErrors{{Field: "pr", Err: "a curation pr requires a revision"}}
	}

	return nil
}

// String returns the canonical slash-delimited form.
func (c Coordinate) String() string {
	var b strings.Builder

	ns := c.Namespace
	if ns == "" {
		ns = NoNamespace
	}

	b.WriteString(string(c.Type))
	b.WriteString(separator)
	b.WriteString(string(c.Provider))
	b.WriteString(separator)
	b.WriteString(ns)
	b.WriteString(separator)
	b.WriteString(c.Name)

	if !c.Revision.IsZero() {
		b.WriteString(separator)
		b.WriteString(c.Revision.String())
	}

	if c.CurationPR > 0 {
		b.WriteString(separator)
		b.WriteString(curationMarker)
		b.WriteString(separator)
		b.WriteString(strconv.Itoa(c.CurationPR))
	}

	return b.String()
}

// pathEscaper escapes only what would end a URL path early. Segments are
// otherwise already in the service's wire form, e.g. percent-encoded go
// module namespaces such as "github.com%2fgorilla".
var pathEscaper = strings.NewReplacer("?", "%3F", "#", "%23")

// Path returns the coordinate in the form used as a URL path.
func (c Coordinate) Path() string {
	return pathEscaper.Replace(c.String())
}

// WithRevision returns a copy of c pinned to rev.
func (c Coordinate) WithRevision(rev string) Coordinate {
	c.Revision = NewRevision(rev)
	return c
}

// Equal reports whether both coordinates have the same canonical form.
func (c Coordinate) Equal(o Coordinate) bool {
	return c.String() == o.String()
}

// MarshalText implements [encoding.TextMarshaler]; coordinates travel as
// plain strings in request payloads.
func (c Coordinate) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *Coordinate) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}
