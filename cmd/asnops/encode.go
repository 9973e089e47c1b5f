package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/golangsnmp/asnops"
	"github.com/golangsnmp/asnops/cmd/internal/cliutil"
)

// Output formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatCBOR = "cbor"
)

var formats = []string{formatJSON, formatYAML, formatCBOR}

// encodeCatalog writes cat to w. indent applies to JSON and YAML; zero
// selects compact JSON.
func encodeCatalog(w io.Writer, cat *asnops.Catalog, format string, indent int) error {
	switch format {
	case formatJSON:
		var data []byte
		var err error
		if indent > 0 {
			data, err = json.MarshalIndent(cat, "", strings.Repeat(" ", indent))
		} else {
			data, err = json.Marshal(cat)
		}
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err

	case formatYAML:
		enc := yaml.NewEncoder(w)
		if indent > 0 {
			enc.SetIndent(indent)
		}
		if err := enc.Encode(cat); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()

	case formatCBOR:
		data, err := cbor.Marshal(cat)
		if err != nil {
			return fmt.Errorf("encode cbor: %w", err)
		}
		_, err = w.Write(data)
		return err

	default:
		return fmt.Errorf("unknown format: %s (expected %s)", format, strings.Join(formats, ", "))
	}
}

// outputFlags are the catalog output flags shared by parse and load.
type outputFlags struct {
	format string
	output string
	indent int
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", formatJSON, "output format ("+strings.Join(formats, ", ")+")")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write output to file instead of stdout")
	cmd.Flags().IntVar(&o.indent, "indent", 2, "indentation for json and yaml (0 for compact json)")
}

// writeCatalog encodes cat with config values overridden by flags that
// were set on cmd.
func (c *cli) writeCatalog(cmd *cobra.Command, o *outputFlags, cat *asnops.Catalog) error {
	format, indent := c.cfg.Output.Format, c.cfg.Output.Indent
	if cmd.Flags().Changed("format") {
		format = o.format
	}
	if cmd.Flags().Changed("indent") {
		indent = o.indent
	}
	if !slices.Contains(formats, format) {
		return fmt.Errorf("unknown format: %s (expected %s)", format, strings.Join(formats, ", "))
	}
	if indent < 0 {
		return errors.New("indent must not be negative")
	}

	w, done, err := cliutil.GetOutput(o.output, c.stdout)
	if err != nil {
		return err
	}
	defer done()
	return encodeCatalog(w, cat, format, indent)
}
