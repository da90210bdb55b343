package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"

	"github.com/Veraticus/rollcall/internal/model"
)

// shortIDLength is how much of a run id the history table shows.
const shortIDLength = 8

// RenderRunSummary renders the headline numbers of a run in a box. When
// output is set it is listed as the report destination.
func RenderRunSummary(run *model.Run, output string) string {
	summary := fmt.Sprintf("  • Students: %d\n", len(run.Lines)) +
		fmt.Sprintf("  • Sessions: %d\n", run.TotalSessions) +
		fmt.Sprintf("  • Reference date: %s\n", run.Reference)

	never := fmt.Sprintf("  • Never attended: %d", run.NeverAttended())
	if run.NeverAttended() > 0 {
		never = WarningStyle.Render(never)
	}
	summary += never

	if output != "" {
		summary += "\n" + fmt.Sprintf("  • Written to: %s", output)
	}
	if run.ID != "" {
		summary += "\n" + SubtleStyle.Render("  • Run: "+run.ID)
	}

	return RenderBox(ChartIcon+" Grade Report Summary", summary)
}

// ShortID trims a run id for display.
func ShortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

// RenderHistory writes stored runs as an aligned table.
func RenderHistory(w io.Writer, runs []model.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("ID"),
		TableHeaderStyle.Render("Created"),
		TableHeaderStyle.Render("Source"),
		TableHeaderStyle.Render("Reference"),
		TableHeaderStyle.Render("Students"),
		TableHeaderStyle.Render("Sessions"),
	); err != nil {
		return err
	}

	for _, run := range runs {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ShortID(run.ID),
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Source,
			run.Reference,
			strconv.Itoa(run.StudentCount),
			strconv.Itoa(run.TotalSessions),
		); err != nil {
			return err
		}
	}

	if err := tw.Flush(); err != nil {
		slog.Error("failed to flush table writer", "error", err)
		return err
	}
	return nil
}
