package coordinate

import (
	"github.com/Masterminds/semver/v3"
)

// Revision is the version, tag or commit of a component.
//
// Most ecosystems use semantic versions, so the raw text is parsed as one
// when possible. Anything else (git SHAs, debian revisions, date tags) is
// kept verbatim. String always returns the original text.
type Revision struct {
	raw     string
	version *semver.Version
}

// NewRevision wraps raw. An empty raw yields the zero Revision.
func NewRevision(raw string) Revision {
	if raw == "" {
		return Revision{}
	}

	r := Revision{raw: raw}
	if v, err := semver.NewVersion(raw); err == nil {
		r.version = v
	}

	return r
}

// String returns the revision exactly as it was given.
func (r Revision) String() string { return r.raw }

// IsZero reports whether no revision was specified.
func (r Revision) IsZero() bool { return r.raw == "" }

// Semver returns the parsed semantic version, if the revision is one.
func (r Revision) Semver() (*semver.Version, bool) {
	return r.version, r.version != nil
}

// Equal compares the raw text of both revisions.
func (r Revision) Equal(o Revision) bool { return r.raw == o.raw }

// MarshalText implements [encoding.TextMarshaler].
func (r Revision) MarshalText() ([]byte, error) {
	return []byte(r.raw), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (r *Revision) UnmarshalText(b []byte) error {
	*r = NewRevision(string(b))
	return nil
}
