package cli

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockify/internal/quantize"
)

func newAlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the conversion algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def := quantize.DefaultOptions().Algorithm

			table := NewTable("NAME", "LABEL", "DESCRIPTION")
			table.SetColumnMaxWidth(2, 60)
			for _, alg := range quantize.ValidAlgorithms() {
				label := alg.Label()
				if alg == def {
					label += " (default)"
				}
				table.AddRow(string(alg), label, alg.Description())
			}
			_, err := table.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}
