package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().String("output", "text", "Result format: text, json or yaml")
}

// writeResult prints v in the requested format; text uses the supplied printer.
func writeResult(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case "", "text":
		text(w)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
