package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/asnops"
)

func (c *cli) newLoadCmd() *cobra.Command {
	var out outputFlags
	var paths []string
	var noHeuristic bool

	cmd := &cobra.Command{
		Use:   "load [name...]",
		Short: "Load document directories and print the merged catalog",
		Long: `Load every document under the given directories (recursively) and print
the merged catalog. With names, only those documents (file names without
extension) are loaded, in the given order.

Without -p, directories come from [parse] paths in the configuration file,
then from the search path (see "asnops paths").`,
		Example: `  asnops load -p ./specs
  asnops load -p ./specs -p ./vendor map-ops map-errors
  ASNOPS_PATH=./specs asnops load -f yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.parseOptions(cmd)

			source, err := c.buildSource(paths, noHeuristic)
			if err != nil {
				return err
			}
			if source == nil {
				opts = append(opts, asnops.WithSearchPaths())
			}

			var cat *asnops.Catalog
			if len(args) > 0 {
				cat, err = asnops.LoadNamed(cmd.Context(), args, source, opts...)
			} else {
				cat, err = asnops.Load(cmd.Context(), source, opts...)
			}
			if err != nil {
				return err
			}
			return c.writeCatalog(cmd, &out, cat)
		},
	}

	cmd.Flags().StringArrayVarP(&paths, "path", "p", nil, "document directory (repeatable)")
	cmd.Flags().BoolVar(&noHeuristic, "no-heuristic", false, "parse every matching file, even if it has no definitions")
	out.register(cmd)
	addStrictFlag(cmd)
	return cmd
}

// buildSource returns a source over the -p directories, or the configured
// paths when none are given. It returns nil when neither is set, meaning
// the search path should be used.
func (c *cli) buildSource(paths []string, noHeuristic bool) (asnops.Source, error) {
	if len(paths) == 0 {
		paths = c.cfg.Parse.Paths
	}
	if len(paths) == 0 {
		return nil, nil
	}

	var opts []asnops.SourceOption
	if c.cfg.Parse.Extensions != nil {
		opts = append(opts, asnops.WithExtensions(c.cfg.Parse.Extensions...))
	}
	if noHeuristic {
		opts = append(opts, asnops.WithNoHeuristic())
	}

	var sources []asnops.Source
	for _, p := range paths {
		src, err := asnops.DirTree(p, opts...)
		if err != nil {
			return nil, fmt.Errorf("cannot access path %s: %w", p, err)
		}
		sources = append(sources, src)
	}
	if len(sources) == 1 {
		return sources[0], nil
	}
	return asnops.Multi(sources...), nil
}
