package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/asnops"
	"github.com/golangsnmp/asnops/cmd/internal/cliutil"
)

func (c *cli) newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [file]",
		Short: "Print the preprocessed form of a document",
		Long: `Print a document as the parser sees it: comments removed, whitespace
collapsed to single spaces between words, and all other spaces dropped.
Error offsets refer to this text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			data, _, err := cliutil.ReadInput(path, c.stdin)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.stdout, asnops.Normalize(data))
			return err
		},
	}
}
