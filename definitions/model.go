package definitions

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/adamwoolhether/clearlydefined/coordinate"
)

// Definition is everything the service knows about a single component.
type Definition struct {
	Coordinates Coordinates `json:"coordinates"`
	// Described is nil when the component has not been harvested.
	Described *Description `json:"described,omitempty"`
	// Licensed is nil when no license information could be determined.
	Licensed *License `json:"licensed,omitempty"`
	Files    []File   `json:"files,omitempty"`
	Scores   Scores   `json:"scores"`
}

// Harvested reports whether the service has processed the component.
// For unknown coordinates the service answers with a placeholder
// definition instead of an error.
func (d *Definition) Harvested() bool {
	return d.Described != nil
}

// DeclaredLicense returns the declared SPDX expression, or "" if unknown.
func (d *Definition) DeclaredLicense() string {
	if d.Licensed == nil {
		return ""
	}

	return d.Licensed.Declared
}

// Coordinates is the structured form of a coordinate as echoed back by the service.
type Coordinates struct {
	Type      coordinate.Type     `json:"type"`
	Provider  coordinate.Provider `json:"provider"`
	Namespace string              `json:"namespace,omitempty"`
	Name      string              `json:"name"`
	Revision  coordinate.Revision `json:"revision"`
}

// Coordinate converts c into a validated [coordinate.Coordinate].
func (c Coordinates) Coordinate() (coordinate.Coordinate, error) {
	return coordinate.New(c.Type, c.Provider, c.Namespace, c.Name, c.Revision.String())
}

func (c Coordinates) String() string {
	ns := c.Namespace
	if ns == "" {
		ns = coordinate.NoNamespace
	}

	return strings.Join([]string{string(c.Type), string(c.Provider), ns, c.Name, c.Revision.String()}, "/")
}

// Hashes of a file or of the whole component.
type Hashes struct {
	SHA1   string `json:"sha1"`
	SHA256 string `json:"sha256,omitempty"`
}

// Score is the breakdown of the description score.
type Score struct {
	Total  int `json:"total"`
	Date   int `json:"date"`
	Source int `json:"source"`
}

// SourceLocation points at the source a component was built from.
type SourceLocation struct {
	Type      string `json:"type"`
	Provider  string `json:"provider"`
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Revision  string `json:"revision"`
	URL       string `json:"url"`
}

// Description holds the described facet of a definition.
type Description struct {
	ReleaseDate    Date              `json:"releaseDate"`
	SourceLocation *SourceLocation   `json:"sourceLocation,omitempty"`
	ProjectWebsite string            `json:"projectWebsite,omitempty"`
	URLs           map[string]string `json:"urls"`
	Hashes         Hashes            `json:"hashes"`
	Files          int               `json:"files"`
	Tools          []string          `json:"tools"`
	ToolScore      Score             `json:"toolScore"`
	Score          Score             `json:"score"`
}

// LicenseScore is the breakdown of the licensed score.
type LicenseScore struct {
	Total       int `json:"total"`
	Declared    int `json:"declared"`
	Discovered  int `json:"discovered"`
	Consistency int `json:"consistency"`
	SPDX        int `json:"spdx"`
	Texts       int `json:"texts"`
}

// Attribution lists the parties credited in a facet.
type Attribution struct {
	Unknown int      `json:"unknown"`
	Parties []string `json:"parties,omitempty"`
}

// Discovered lists the license expressions found while scanning a facet.
type Discovered struct {
	Unknown     int      `json:"unknown"`
	Expressions []string `json:"expressions,omitempty"`
}

// Facet summarises one slice of a component's files.
type Facet struct {
	Attribution Attribution `json:"attribution"`
	Discovered  Discovered  `json:"discovered"`
	Files       int         `json:"files"`
}

// Facets groups files by purpose. Only Core is always reported.
type Facets struct {
	Core     Facet  `json:"core"`
	Data     *Facet `json:"data,omitempty"`
	Dev      *Facet `json:"dev,omitempty"`
	Doc      *Facet `json:"doc,omitempty"`
	Examples *Facet `json:"examples,omitempty"`
	Tests    *Facet `json:"tests,omitempty"`
}

// License holds the licensed facet of a definition.
type License struct {
	Declared  string       `json:"declared"`
	Facets    Facets       `json:"facets"`
	ToolScore LicenseScore `json:"toolScore"`
	Score     LicenseScore `json:"score"`
}

// File is a single file within the component.
type File struct {
	Path         string   `json:"path"`
	Hashes       *Hashes  `json:"hashes,omitempty"`
	License      string   `json:"license,omitempty"`
	Attributions []string `json:"attributions,omitempty"`
	Natures      []string `json:"natures,omitempty"`
	Token        string   `json:"token,omitempty"`
}

// Scores are the top level effective and tool scores, 0-100.
type Scores struct {
	Effective int `json:"effective"`
	Tool      int `json:"tool"`
}

const dateLayout = time.DateOnly

// Date is a calendar date without a time zone.
type Date struct {
	time.Time
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.Format(dateLayout)
}

// MarshalJSON shadows the RFC 3339 encoding promoted from [time.Time].
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON shadows the RFC 3339 decoding promoted from [time.Time].
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("parsing date: %w", err)
	}

	return d.UnmarshalText([]byte(s))
}

// MarshalText implements [encoding.TextMarshaler].
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. The service
// occasionally sends full timestamps; only the date part is kept.
func (d *Date) UnmarshalText(b []byte) error {
	s := string(b)
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", b, err)
	}

	d.Time = t
	return nil
}
