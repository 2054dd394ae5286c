package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func newCreateSensorCmd(a *app) *cobra.Command {
	var frequency int
	cmd := &cobra.Command{
		Use:     "create-sensor",
		Short:   "Ask the satellite to create a sensor",
		Example: `satrelay create-sensor --frequency 1245`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("frequency") {
				return errors.New(`flag "frequency" must be a valid integer`)
			}
			services := a.newServices(nil, nil)
			st := services.CreateSensor(cmd.Context(), frequency)

			p := newColorPrinter()
			out := cmd.OutOrStdout()
			if st.Code == http.StatusOK {
				fmt.Fprintln(out, p.Success("%d", st.Code))
				return nil
			}
			fmt.Fprintln(out, p.Error("%d %s", st.Code, st.Message))
			return fmt.Errorf("satellite answered %d", st.Code)
		},
	}
	cmd.Flags().IntVarP(&frequency, "frequency", "f", 0, "Sensor frequency")
	return cmd
}
