package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"sensor_relay/internal/models"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

type colorPrinter struct {
	Success func(format string, a ...interface{}) string
	Error   func(format string, a ...interface{}) string
	Warning func(format string, a ...interface{}) string
}

func newColorPrinter() *colorPrinter {
	return &colorPrinter{
		Success: color.New(color.FgGreen).SprintfFunc(),
		Error:   color.New(color.FgRed).SprintfFunc(),
		Warning: color.New(color.FgYellow).SprintfFunc(),
	}
}

// renderSnapshot prints readings in satellite order, then any skipped sensors.
func renderSnapshot(w io.Writer, p *colorPrinter, snap models.Snapshot) error {
	table := tablewriter.NewTable(w)
	table.Header([]string{"ID", "Frequency", "Status", "Measurement", "Timestamp"})

	for _, r := range snap.Readings {
		if err := table.Append([]string{
			r.ID.String(),
			strconv.Itoa(r.Frequency),
			prettyStatus(p, r.Status),
			strconv.FormatFloat(r.Measurement, 'f', -1, 64),
			r.Timestamp.Format(time.RFC3339Nano),
		}); err != nil {
			return fmt.Errorf("an error occurred while appending to the table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("an error occurred while rendering the table: %w", err)
	}

	for _, f := range snap.Failures {
		fmt.Fprintln(w, p.Warning("sensor %s skipped after %d attempts: %s", f.ID, f.Attempts, f.Reason))
	}
	fmt.Fprintln(w, p.Success("%d readings cached at %s", len(snap.Readings), snap.RefreshedAt.Format(time.RFC3339)))
	return nil
}

func prettyStatus(p *colorPrinter, s models.SensorStatus) string {
	switch s {
	case models.StatusActive:
		return p.Success(string(s))
	case models.StatusInactive:
		return p.Warning(string(s))
	default:
		return string(s)
	}
}
