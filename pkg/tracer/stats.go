package tracer

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

// StatsTable renders per-frame statistics as a table with a totals footer.
func StatsTable(w io.Writer, frames []FrameStats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Samples", "Rays", "Lines", "In view", "Time", "Rays/s"})

	var total time.Duration
	var rays int
	for _, f := range frames {
		total += f.Duration
		rays += f.Rays
		table.Append([]string{
			fmt.Sprintf("%d", f.Frame),
			fmt.Sprintf("%d", f.Samples),
			fmt.Sprintf("%d", f.Rays),
			fmt.Sprintf("%d", f.Lines),
			fmt.Sprintf("%d", f.InView),
			f.Duration.String(),
			rate(f.Rays, f.Duration),
		})
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("%d", rays), "", "", total.String(), rate(rays, total)})
	table.Render()
}

func rate(rays int, d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f", float64(rays)/d.Seconds())
}
