package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/asnops"
)

func (c *cli) newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show document search paths",
		Long: `Show the directories "asnops load" reads when no -p is given: [parse] paths
from the configuration file if set, otherwise the search path built from
the defaults, /etc/asnops.conf, ~/.asnopsrc, and $` + asnops.PathEnv + `.
Each directory is read recursively.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := c.cfg.Parse.Paths
			if len(paths) == 0 {
				paths = asnops.SearchPaths()
			}
			if len(paths) == 0 {
				_, _ = fmt.Fprintln(c.stderr, "no search paths found")
				return nil
			}
			for _, p := range paths {
				if _, err := fmt.Fprintln(c.stdout, p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
