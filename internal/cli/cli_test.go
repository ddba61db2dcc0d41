package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/clearlydefined/client"
	"github.com/adamwoolhether/clearlydefined/coordinate"
	"github.com/adamwoolhether/clearlydefined/definitions"
	"github.com/adamwoolhether/clearlydefined/internal/export"
)

const (
	lodash      = "npm/npmjs/-/lodash/4.17.21"
	placeholder = "crate/cratesio/-/not-a-real-crate/0.0.1"
	dropped     = "npm/npmjs/-/missing/1.0.0"
)

// fakeService answers the definitions and search endpoints. Coordinates
// named "missing" are left out of responses.
type fakeService struct {
	*httptest.Server
	posts atomic.Int32
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()

	fs := &fakeService{}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /definitions", func(w http.ResponseWriter, r *http.Request) {
		fs.posts.Add(1)

		var keys []string
		if err := json.NewDecoder(r.Body).Decode(&keys); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items := make(map[string]definitions.Definition, len(keys))
		for _, k := range keys {
			if strings.Contains(k, "missing") {
				continue
			}
			items[k] = fakeDefinition(t, k)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(items)
	})

	mux.HandleFunc("GET /definitions", func(w http.ResponseWriter, r *http.Request) {
		pattern := r.URL.Query().Get("pattern")
		if pattern == "boom" {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		var found []string
		if strings.Contains(lodash, pattern) {
			found = append(found, lodash, "npm/npmjs/-/lodash/4.17.20")
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(found)
	})

	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Close)

	return fs
}

func fakeDefinition(t *testing.T, key string) definitions.Definition {
	t.Helper()

	c := coordinate.MustParse(key)
	def := definitions.Definition{
		Coordinates: definitions.Coordinates{
			Type:      c.Type,
			Provider:  c.Provider,
			Namespace: c.Namespace,
			Name:      c.Name,
			Revision:  c.Revision,
		},
	}

	if c.Name == "lodash" {
		def.Described = &definitions.Description{
			ReleaseDate: definitions.Date{Time: time.Date(2021, 2, 20, 0, 0, 0, 0, time.UTC)},
		}
		def.Licensed = &definitions.License{Declared: "MIT"}
		def.Licensed.Facets.Core.Discovered.Expressions = []string{"MIT", "CC0-1.0"}
		def.Scores = definitions.Scores{Effective: 93, Tool: 91}
	}

	return def
}

// execute runs the root command and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, logs bytes.Buffer
	c := New(&out, &logs, LogInfo)

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(&logs)

	err := root.ExecuteContext(context.Background())
	t.Logf("logs:\n%s", logs.String())

	return out.String(), err
}

func TestGet(t *testing.T) {
	srv := newFakeService(t)

	testCases := map[string]struct {
		args       []string
		expContain []string
		expErr     bool
	}{
		"harvested": {
			args:       []string{lodash},
			expContain: []string{lodash, "declared", "MIT", "discovered", "MIT, CC0-1.0", "2021-02-20", "93", "tool 91"},
		},
		"notHarvested": {
			args:       []string{placeholder},
			expContain: []string{placeholder + ": not harvested"},
		},
		"missing": {
			args:       []string{lodash, dropped},
			expContain: []string{lodash, dropped + ": no definition returned"},
			expErr:     true,
		},
		"async": {
			args:       []string{"--async", "--batch-size", "1", lodash, placeholder},
			expContain: []string{lodash, "MIT", placeholder + ": not harvested"},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			args := append([]string{"get", "--base-url", srv.URL}, tc.args...)

			out, err := execute(t, args...)
			if (err != nil) != tc.expErr {
				t.Fatalf("exp err %t, got: %v", tc.expErr, err)
			}

			for _, exp := range tc.expContain {
				if !strings.Contains(out, exp) {
					t.Errorf("exp output to contain %q, got:\n%s", exp, out)
				}
			}
		})
	}
}

func TestGet_InvalidCoordinates(t *testing.T) {
	srv := newFakeService(t)

	_, err := execute(t, "get", "--base-url", srv.URL, lodash, "npm/npmjs", "nope/npmjs/-/x/1.0.0")
	if !errors.Is(err, coordinate.ErrInvalidCoordinate) {
		t.Fatalf("exp err %v; got: %v", coordinate.ErrInvalidCoordinate, err)
	}

	for _, input := range []string{"npm/npmjs", "nope/npmjs/-/x/1.0.0"} {
		if !strings.Contains(err.Error(), input) {
			t.Errorf("exp error to name %q, got: %v", input, err)
		}
	}

	if n := srv.posts.Load(); n != 0 {
		t.Errorf("exp no requests for invalid input, got %d", n)
	}
}

func TestGet_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	testCases := map[string]struct {
		args []string
	}{
		"sync":  {args: []string{lodash}},
		"async": {args: []string{"--async", lodash}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			args := append([]string{"get", "--base-url", srv.URL}, tc.args...)

			_, err := execute(t, args...)
			if !errors.Is(err, client.ErrUnexpectedStatusCode) {
				t.Errorf("exp err %v; got: %v", client.ErrUnexpectedStatusCode, err)
			}
		})
	}
}

func TestGet_JSON(t *testing.T) {
	srv := newFakeService(t)

	out, err := execute(t, "get", "--base-url", srv.URL, "--json", lodash, placeholder)
	if err != nil {
		t.Fatalf("exp nil err, got: %v", err)
	}

	resp, err := definitions.DecodeResponse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}

	if diff := cmp.Diff([]string{placeholder, lodash}, resp.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestGet_Output(t *testing.T) {
	srv := newFakeService(t)
	dest := filepath.Join(t.TempDir(), "defs.json")

	out, err := execute(t, "get", "--base-url", srv.URL, "-o", dest, lodash, placeholder)
	if err != nil {
		t.Fatalf("exp nil err, got: %v", err)
	}

	if !strings.Contains(out, "Wrote 2 definitions") || !strings.Contains(out, dest) {
		t.Errorf("unexpected output:\n%s", out)
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()

	resp, err := definitions.DecodeResponse(f)
	if err != nil {
		t.Fatalf("decoding output file: %v", err)
	}

	def, ok := resp.Lookup(coordinate.MustParse(lodash))
	if !ok || def.DeclaredLicense() != "MIT" {
		t.Errorf("exp lodash with MIT in output file, got %+v", def)
	}

	_, err = execute(t, "get", "--base-url", srv.URL, "-o", dest, "--no-clobber", lodash)
	if !errors.Is(err, export.ErrExists) {
		t.Errorf("exp err %v; got: %v", export.ErrExists, err)
	}
}

func TestGet_MissingMachineOutput(t *testing.T) {
	srv := newFakeService(t)

	testCases := map[string]struct {
		args func(dir string) []string
	}{
		"json":   {args: func(string) []string { return []string{"--json"} }},
		"output": {args: func(dir string) []string { return []string{"-o", filepath.Join(dir, "defs.json")} }},
		"asyncJSON": {args: func(string) []string {
			return []string{"--async", "--batch-size", "1", "--json"}
		}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			args := append([]string{"get", "--base-url", srv.URL}, tc.args(t.TempDir())...)
			args = append(args, lodash, dropped)

			out, err := execute(t, args...)
			if err == nil {
				t.Fatal("exp error for a coordinate missing from the response")
			}
			if !strings.Contains(err.Error(), "1 of 2 coordinates missing") {
				t.Errorf("unexpected error: %v", err)
			}

			if strings.Contains(out, "no definition returned") {
				t.Errorf("exp machine output free of the human report, got:\n%s", out)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	srv := newFakeService(t)

	out, err := execute(t, "search", "--base-url", srv.URL, "lodash")
	if err != nil {
		t.Fatalf("exp nil err, got: %v", err)
	}

	exp := lodash + "\nnpm/npmjs/-/lodash/4.17.20\n"
	if out != exp {
		t.Errorf("exp %q, got %q", exp, out)
	}

	out, err = execute(t, "search", "--base-url", srv.URL, "--json", "lodash")
	if err != nil {
		t.Fatalf("exp nil err, got: %v", err)
	}

	var got []string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if diff := cmp.Diff([]string{lodash, "npm/npmjs/-/lodash/4.17.20"}, got); diff != "" {
		t.Errorf("coordinates mismatch (-want +got):\n%s", diff)
	}

	out, err = execute(t, "search", "--base-url", srv.URL, "zzz")
	if err != nil {
		t.Fatalf("exp nil err, got: %v", err)
	}
	if !strings.Contains(out, `No coordinates match "zzz"`) {
		t.Errorf("unexpected output: %q", out)
	}

	_, err = execute(t, "search", "--base-url", srv.URL, "boom")
	if !errors.Is(err, client.ErrUnexpectedStatusCode) {
		t.Errorf("exp err %v; got: %v", client.ErrUnexpectedStatusCode, err)
	}
}

func TestParse(t *testing.T) {
	testCases := map[string]struct {
		args       []string
		expContain []string
		expErr     bool
	}{
		"semver": {
			args:       []string{"npm/npmjs/@babel/core/7.24.0"},
			expContain: []string{"npm/npmjs/@babel/core/7.24.0", "namespace", "@babel", "semver 7.24.0"},
		},
		"curation": {
			args:       []string{"npm/npmjs/-/lodash/4.17.21/pr/42"},
			expContain: []string{"curation pr", "42"},
		},
		"mixed": {
			args:       []string{lodash, "npm/npmjs/-/lodash/4.17.21/rp/1"},
			expContain: []string{lodash, `expected "pr" marker`},
			expErr:     true,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, append([]string{"parse"}, tc.args...)...)
			if (err != nil) != tc.expErr {
				t.Fatalf("exp err %t, got: %v", tc.expErr, err)
			}

			for _, exp := range tc.expContain {
				if !strings.Contains(out, exp) {
					t.Errorf("exp output to contain %q, got:\n%s", exp, out)
				}
			}
		})
	}
}

func TestSetVersion(t *testing.T) {
	defer SetVersion(version, commit, date)

	SetVersion("1.0.0", "abc123", "2026-01-01")

	if version != "1.0.0" {
		t.Errorf("version = %q, want %q", version, "1.0.0")
	}
	if commit != "abc123" {
		t.Errorf("commit = %q, want %q", commit, "abc123")
	}
	if date != "2026-01-01" {
		t.Errorf("date = %q, want %q", date, "2026-01-01")
	}

	out, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("exp nil err, got: %v", err)
	}
	if !strings.Contains(out, "clearlydefined 1.0.0") || !strings.Contains(out, "commit: abc123") {
		t.Errorf("unexpected version output: %q", out)
	}
}
