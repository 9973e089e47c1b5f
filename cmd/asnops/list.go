package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// listEntry is one row of list --json output.
type listEntry struct {
	Name string  `json:"name"`
	Kind string  `json:"kind"`
	Code *uint32 `json:"code"`
}

func (c *cli) newListCmd() *cobra.Command {
	var count, jsonOut bool

	cmd := &cobra.Command{
		Use:   "list [file...]",
		Short: "List definitions with their kind and code",
		Long: `List every definition, one per line: kind, name, and code ("-" when the
definition has no CODE clause).`,
		Example: `  asnops list map-ops.asn
  asnops list --count map-ops.asn
  asnops list --json < map-ops.asn`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.readCatalog(cmd, args)
			if err != nil {
				return err
			}

			if count {
				_, err := fmt.Fprintln(c.stdout, cat.Len())
				return err
			}

			if jsonOut {
				entries := make([]listEntry, 0, cat.Len())
				for name, def := range cat.All() {
					e := listEntry{Name: name, Kind: def.Kind.String()}
					if code, ok := def.Code(); ok {
						e.Code = &code
					}
					entries = append(entries, e)
				}
				enc := json.NewEncoder(c.stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(entries); err != nil {
					return fmt.Errorf("encoding JSON: %w", err)
				}
				return nil
			}

			tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
			for name, def := range cat.All() {
				code := "-"
				if v, ok := def.Code(); ok {
					code = strconv.FormatUint(uint64(v), 10)
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", def.Kind, name, code)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&count, "count", false, "print only the definition count")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON array")
	addStrictFlag(cmd)
	return cmd
}
