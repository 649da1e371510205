package main

import (
	"context"
	"fmt"
	"maps"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// addOptionFlags registers the widget option flags shared by play and simulate.
func addOptionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("treatment", "t", "", "Treatment preset to start from")
	f.StringP("options", "o", "", "YAML file with widget options")
	f.StringP("method", "m", "", "Elicitation method (Bomb, Lottery)")
	f.Int("boxes", 0, "Number of boxes")
	f.Float64("scale", 0, "Reward per box")
	f.String("currency", "", "Currency symbol or code")
	f.Bool("with-prize", true, "Show the per-box value and cumulative prize")
	f.Int("rows", 0, "Lottery rows")
	f.Int64("seed", 0, "Fixed random seed (default: random)")
}

// collectOptions merges the treatment, the options file and explicit flags, later sources winning.
func collectOptions(ctx context.Context, cmd *cobra.Command) (map[string]any, error) {
	options := map[string]any{}

	if name, _ := cmd.Flags().GetString("treatment"); name != "" {
		loader, err := treatmentLoader()
		if err != nil {
			return nil, err
		}
		if loader == nil {
			return nil, fmt.Errorf("--treatment needs --treatments or BOMBRISK_TREATMENTS")
		}
		t, err := loader.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		maps.Copy(options, t.Options)
	}

	if path, _ := cmd.Flags().GetString("options"); path != "" {
		fromFile, err := readOptionsFile(path)
		if err != nil {
			return nil, err
		}
		maps.Copy(options, fromFile)
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		options["method"], _ = flags.GetString("method")
	}
	if flags.Changed("boxes") {
		options["boxCount"], _ = flags.GetInt("boxes")
	}
	if flags.Changed("scale") {
		options["scale"], _ = flags.GetFloat64("scale")
	}
	if flags.Changed("currency") {
		options["currency"], _ = flags.GetString("currency")
	}
	if flags.Changed("with-prize") {
		options["withPrize"], _ = flags.GetBool("with-prize")
	}
	if flags.Changed("rows") {
		options["rows"], _ = flags.GetInt("rows")
	}
	return options, nil
}

func readOptionsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	var options map[string]any
	if err := yaml.Unmarshal(data, &options); err != nil {
		return nil, fmt.Errorf("parse options %s: %w", path, err)
	}
	return options, nil
}
