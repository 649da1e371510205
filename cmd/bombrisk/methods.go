package main

import (
	"fmt"

	"github.com/aretw0/bombrisk"
	"github.com/spf13/cobra"
)

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List elicitation methods and treatments",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		w, err := bombrisk.New(widgetOptions(logger)...)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Methods:")
		for _, name := range w.Methods() {
			fmt.Fprintf(out, "  %s\n", name)
		}

		loader, err := treatmentLoader()
		if err != nil || loader == nil {
			return err
		}
		names, err := loader.List(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Treatments:")
		for _, name := range names {
			t, err := loader.Get(cmd.Context(), name)
			if err != nil {
				return err
			}
			method, _ := t.Options["method"].(string)
			if method == "" {
				method = "Bomb"
			}
			fmt.Fprintf(out, "  %-20s %-8s %s\n", name, method, t.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(methodsCmd)
}
