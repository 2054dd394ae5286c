package cli

import (
	"github.com/spf13/cobra"
)

func newPollCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Run one refresh cycle and print the readings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			services := a.newServices(nil, nil)
			snap, err := services.Poll(cmd.Context())
			if err != nil {
				return err
			}
			return renderSnapshot(cmd.OutOrStdout(), newColorPrinter(), snap)
		},
	}
}
