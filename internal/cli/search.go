package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) searchCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <pattern>",
		Short: "List known coordinates matching a pattern",
		Example: `  clearlydefined search lodash
  clearlydefined search --json npm/npmjs/-/lodash`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd.Context(), args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the coordinates as a JSON array")

	return cmd
}

func (c *CLI) runSearch(ctx context.Context, pattern string, asJSON bool) error {
	cl, err := c.newClient()
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	coords, err := cl.Search(ctx, pattern)
	if err != nil {
		return fmt.Errorf("searching %q: %w", pattern, err)
	}
	prog.done(fmt.Sprintf("Found %d coordinates", len(coords)))

	if asJSON {
		return writeJSON(c.out, coords)
	}

	if len(coords) == 0 {
		printInfo(c.out, "No coordinates match %q", pattern)
		return nil
	}

	for _, coord := range coords {
		fmt.Fprintln(c.out, coord)
	}

	return nil
}
