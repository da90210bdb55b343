package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/rollcall/internal/attendance"
	"github.com/Veraticus/rollcall/internal/cli"
	"github.com/Veraticus/rollcall/internal/config"
	"github.com/Veraticus/rollcall/internal/report"
	"github.com/Veraticus/rollcall/internal/roster"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func reportCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <attendance.csv>",
		Short: "Generate a grade report from an attendance sheet",
		Long: `Read an attendance CSV with "Student Name", "Class Date" and "Attendance"
columns and report each student's attendance rate and the days since they
last attended.

Days are counted from the latest class date in the file unless --date names
another date or "today".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, v, args[0])
		},
	}

	cmd.Flags().StringP("output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().String("date", "", `reference date, or "today" (default: latest date in the input)`)
	cmd.Flags().String("date-order", "mdy", "field order of dates: mdy or ymd")
	cmd.Flags().Bool("progress", false, "show a row counter while reading")
	cmd.Flags().Bool("save", false, "save the run to history")
	cmd.Flags().Bool("sheets", false, "export the report to Google Sheets")

	_ = v.BindPFlag("report.output", cmd.Flags().Lookup("output"))
	_ = v.BindPFlag("report.date", cmd.Flags().Lookup("date"))
	_ = v.BindPFlag("report.date_order", cmd.Flags().Lookup("date-order"))
	_ = v.BindPFlag("report.progress", cmd.Flags().Lookup("progress"))
	_ = v.BindPFlag("history.enabled", cmd.Flags().Lookup("save"))
	_ = v.BindPFlag("sheets.enabled", cmd.Flags().Lookup("sheets"))

	return cmd
}

func runReport(cmd *cobra.Command, v *viper.Viper, path string) error {
	ctx := cmd.Context()

	settings, err := config.Load(v)
	if err != nil {
		return err
	}

	src, err := roster.OpenFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			slog.Warn("Failed to close input", "path", path, "error", closeErr)
		}
	}()

	opts := []attendance.Option{attendance.WithLogger(slog.Default())}
	var progress *cli.RowProgress
	if settings.Report.Progress {
		progress = cli.NewRowProgress(cmd.ErrOrStderr(), "Reading attendance...")
		opts = append(opts, attendance.WithRowObserver(progress.Observe))
	}

	result, err := attendance.Aggregate(src, settings.Report.DateOrder, opts...)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if sessions := result.Sessions.Sorted(); len(sessions) > 0 {
		slog.Debug("Read attendance",
			"path", path,
			"rows", result.Rows,
			"first_session", sessions[0].String(),
			"last_session", sessions[len(sessions)-1].String())
	}

	ref, err := report.ResolveReference(settings.Report.Date, settings.Report.DateOrder, result.Latest, now)
	if err != nil {
		return err
	}

	rep, err := report.Generate(result, ref)
	if err != nil {
		return fmt.Errorf("failed to generate report for %s: %w", path, err)
	}

	slog.Info("Generated grade report",
		"students", len(rep.Lines),
		"sessions", rep.TotalSessions,
		"reference", rep.Reference.String())

	if n := rep.NeverAttendedCount(); n > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(fmt.Sprintf("%d of %d students never attended", n, len(rep.Lines)))) //nolint:forbidigo // User-facing output
	}

	out := cmd.OutOrStdout()
	if settings.Report.Output != "" {
		if err := rep.WriteFile(settings.Report.Output); err != nil {
			return err
		}
	} else if err := rep.Render(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	run := rep.Snapshot(uuid.NewString(), path, src.Digest(), now().UTC())

	if settings.History.Enabled {
		store, err := openStore(ctx, settings.History)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer closeStore(store)

		if err := store.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		slog.Info("Saved run to history", "id", run.ID)
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Saved run "+run.ID)) //nolint:forbidigo // User-facing output
	}

	if v.GetBool("sheets.enabled") {
		exporter, err := newExporter(ctx, v)
		if err != nil {
			return err
		}
		if err := exporter.Export(ctx, run); err != nil {
			return fmt.Errorf("failed to export to sheets: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Exported report to Google Sheets")) //nolint:forbidigo // User-facing output
	}

	if settings.Report.Output != "" {
		fmt.Fprintln(out, cli.RenderRunSummary(run, settings.Report.Output)) //nolint:forbidigo // User-facing output
	}

	return nil
}
