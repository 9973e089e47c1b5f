package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/asnops"
	"github.com/golangsnmp/asnops/cmd/internal/cliutil"
)

func (c *cli) newParseCmd() *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse documents and print the catalog",
		Long: `Parse one or more documents and print every OPERATION and ERROR definition
as a single catalog. With no file, or with "-", the document is read from
standard input. Definitions from several files are merged in argument order.`,
		Example: `  asnops parse map-ops.asn
  asnops parse -f yaml map-ops.asn map-errors.asn
  cat map-ops.asn | asnops parse --indent 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.readCatalog(cmd, args)
			if err != nil {
				return err
			}
			return c.writeCatalog(cmd, &out, cat)
		},
	}

	out.register(cmd)
	addStrictFlag(cmd)
	return cmd
}

func addStrictFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("strict-duplicates", false, "fail on a repeated definition name instead of replacing it")
}

// readCatalog parses the files named by args, or stdin.
func (c *cli) readCatalog(cmd *cobra.Command, args []string) (*asnops.Catalog, error) {
	opts := c.parseOptions(cmd)

	stdin, err := cliutil.UseStdin(args)
	if err != nil {
		return nil, err
	}
	if !stdin {
		return asnops.Load(cmd.Context(), asnops.Files(args, asnops.WithNoHeuristic()), opts...)
	}

	data, name, err := cliutil.ReadInput(cliutil.Stdin, c.stdin)
	if err != nil {
		return nil, err
	}
	cat, err := asnops.Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return cat, nil
}
