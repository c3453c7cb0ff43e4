package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"turbo/internal/options"
	"turbo/internal/target"
)

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List compilation targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def := options.Default().Target()
			rows := make([]tableRow, 0, len(target.All()))
			for _, t := range target.All() {
				info := target.Describe(t)
				desc := fmt.Sprintf("%-8s %d-byte pointers", info.Ext, info.PointerSize)
				if t == def {
					desc += " (default)"
				}
				rows = append(rows, tableRow{key: t.String(), value: desc})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), renderTable(rows))
			return err
		},
	}
}
