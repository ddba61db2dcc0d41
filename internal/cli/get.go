package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/clearlydefined/client"
	"github.com/adamwoolhether/clearlydefined/coordinate"
	"github.com/adamwoolhether/clearlydefined/definitions"
	"github.com/adamwoolhether/clearlydefined/internal/export"
)

type getOpts struct {
	json      bool
	output    string
	noClobber bool
	async     bool
}

func (c *CLI) getCommand() *cobra.Command {
	var opts getOpts

	cmd := &cobra.Command{
		Use:   "get <coordinate>...",
		Short: "Fetch definitions for one or more coordinates",
		Long: `Fetch the definitions of one or more components and print their declared
license, discovered license expressions and score.

Coordinates have the form type/provider/namespace/name[/revision[/pr/number]],
with "-" standing in for an empty namespace.`,
		Example: `  clearlydefined get npm/npmjs/-/lodash/4.17.21
  clearlydefined get --json crate/cratesio/-/serde/1.0.197 pypi/pypi/-/flask/3.0.0
  clearlydefined get --async -o defs.json $(cat coords.txt)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGet(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the decoded definitions as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the definitions as JSON to a file")
	cmd.Flags().BoolVar(&opts.noClobber, "no-clobber", false, "fail instead of overwriting an existing --output file")
	cmd.Flags().BoolVar(&opts.async, "async", false, "fetch batches concurrently")

	return cmd
}

func (c *CLI) runGet(ctx context.Context, args []string, opts getOpts) error {
	coords, err := parseAll(args)
	if err != nil {
		return err
	}

	cl, err := c.newClient()
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)

	var resp *definitions.Response
	var fetchErr error
	if opts.async {
		pending := cl.DefinitionsAsync(ctx, coords, client.WithConcurrency(c.cfg.Concurrency))
		resp, fetchErr = pending.Wait()
	} else {
		resp, fetchErr = cl.Definitions(ctx, coords...)
	}

	// Async fetches can fail some batches and still return the rest.
	if resp == nil {
		return fmt.Errorf("fetching definitions: %w", fetchErr)
	}
	prog.done(fmt.Sprintf("Fetched %d definitions", resp.Len()))

	if opts.output != "" {
		if err := c.writeOutput(ctx, resp, opts); err != nil {
			return errors.Join(fetchErr, err)
		}
	}

	missing := missingFrom(resp, coords)

	switch {
	case opts.json:
		if err := writeJSON(c.out, resp); err != nil {
			return errors.Join(fetchErr, err)
		}
	case opts.output == "":
		c.report(resp, coords)
	}

	// JSON and file output stay machine-readable, so gaps go to the log.
	if opts.json || opts.output != "" {
		for _, coord := range missing {
			c.Logger.Warn("no definition returned", "coordinate", coord.String())
		}
	}

	if fetchErr != nil {
		return fmt.Errorf("fetching definitions: %w", fetchErr)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%d of %d coordinates missing from response", len(missing), len(coords))
	}

	return nil
}

func (c *CLI) writeOutput(ctx context.Context, resp *definitions.Response, opts getOpts) error {
	var exportOpts []export.Option
	if opts.noClobber {
		exportOpts = append(exportOpts, export.WithNoClobber())
	}

	logger := slog.New(c.Logger)
	err := export.WriteFile(ctx, opts.output, logger, func(w io.Writer) error {
		return writeJSON(w, resp)
	}, exportOpts...)
	if err != nil {
		return fmt.Errorf("writing %s: %w", opts.output, err)
	}

	printSuccess(c.out, "Wrote %d definitions", resp.Len())
	printFile(c.out, opts.output)

	return nil
}

// missingFrom returns the coordinates that have no entry in resp.
func missingFrom(resp *definitions.Response, coords []coordinate.Coordinate) []coordinate.Coordinate {
	var missing []coordinate.Coordinate
	for _, coord := range coords {
		if _, ok := resp.Lookup(coord); !ok {
			missing = append(missing, coord)
		}
	}

	return missing
}

// report prints one block per requested coordinate.
func (c *CLI) report(resp *definitions.Response, coords []coordinate.Coordinate) {
	for _, coord := range coords {
		def, ok := resp.Lookup(coord)
		switch {
		case !ok:
			printError(c.out, "%s: no definition returned", coord)
			continue
		case !def.Harvested():
			printWarning(c.out, "%s: not harvested", coord)
			continue
		}

		printSuccess(c.out, "%s", styleTitle.Render(coord.String()))
		printDefinition(c.out, def)
	}
}

func printDefinition(w io.Writer, def *definitions.Definition) {
	declared := def.DeclaredLicense()
	if declared == "" {
		declared = styleDim.Render("unknown")
	}
	printKeyValue(w, "declared", declared)

	var discovered []string
	if def.Licensed != nil {
		discovered = def.Licensed.Facets.Core.Discovered.Expressions
	}
	if len(discovered) > 0 {
		printKeyValue(w, "discovered", strings.Join(discovered, ", "))
	}

	if def.Described != nil && !def.Described.ReleaseDate.IsZero() {
		printKeyValue(w, "released", def.Described.ReleaseDate.String())
	}

	score := styleNumber.Render(strconv.Itoa(def.Scores.Effective)) +
		styleDim.Render(fmt.Sprintf(" (tool %d)", def.Scores.Tool))
	printKeyValue(w, "score", score)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}

	return nil
}

// parseAll parses every argument, reporting all invalid ones together.
func parseAll(args []string) ([]coordinate.Coordinate, error) {
	coords := make([]coordinate.Coordinate, 0, len(args))

	var errs []error
	for _, arg := range args {
		coord, err := coordinate.Parse(arg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		coords = append(coords, coord)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return coords, nil
}
