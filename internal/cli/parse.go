package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/clearlydefined/coordinate"
)

func (c *CLI) parseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <coordinate>...",
		Short: "Validate coordinates without contacting the service",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(args)
		},
	}
}

func (c *CLI) runParse(args []string) error {
	var invalid int

	for _, arg := range args {
		coord, err := coordinate.Parse(arg)
		if err != nil {
			printError(c.out, "%v", err)
			invalid++
			continue
		}

		printSuccess(c.out, "%s", styleTitle.Render(coord.String()))
		printCoordinate(c, coord)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d coordinates invalid", invalid, len(args))
	}

	return nil
}

func printCoordinate(c *CLI, coord coordinate.Coordinate) {
	printKeyValue(c.out, "type", coord.Type.String())
	printKeyValue(c.out, "provider", coord.Provider.String())

	if coord.Namespace != "" {
		printKeyValue(c.out, "namespace", coord.Namespace)
	}
	printKeyValue(c.out, "name", coord.Name)

	if !coord.Revision.IsZero() {
		rev := coord.Revision.String()
		if v, ok := coord.Revision.Semver(); ok {
			rev += styleDim.Render(" (semver " + v.String() + ")")
		}
		printKeyValue(c.out, "revision", rev)
	}

	if coord.CurationPR > 0 {
		printKeyValue(c.out, "curation pr", strconv.Itoa(coord.CurationPR))
	}
}
