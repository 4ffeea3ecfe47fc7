package main

import (
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [path]",
	Short: "Pretty-print the linked records and their context nodes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, records, err := collect(cmd.Context(), cfg, targetPath(args))
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return errNothingToDocument
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "package %s: %d records\n", pkg, len(records))
		for _, r := range records {
			if _, err := pp.Fprintln(out, r); err != nil {
				return err
			}
		}
		return nil
	},
}
