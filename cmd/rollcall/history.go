package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/rollcall/internal/cli"
	"github.com/Veraticus/rollcall/internal/common"
	"github.com/Veraticus/rollcall/internal/config"
	"github.com/Veraticus/rollcall/internal/report"
	"github.com/Veraticus/rollcall/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func historyCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved report runs",
		Long: `Runs saved with 'rollcall report --save' are kept in the configured
history store (SQLite by default, or Postgres).`,
	}

	cmd.AddCommand(historyListCmd(v))
	cmd.AddCommand(historyShowCmd(v))

	return cmd
}

func historyListCmd(v *viper.Viper) *cobra.Command {
	var filter service.RunFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			settings, err := config.Load(v)
			if err != nil {
				return err
			}

			store, err := openStore(ctx, settings.History)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer closeStore(store)

			return listRuns(ctx, cmd.OutOrStdout(), store, filter)
		},
	}

	cmd.Flags().IntVar(&filter.Limit, "limit", 20, "maximum number of runs to show")
	cmd.Flags().StringVar(&filter.Source, "source", "", "only show runs of this input path")

	return cmd
}

func historyShowCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a saved run's report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			settings, err := config.Load(v)
			if err != nil {
				return err
			}

			store, err := openStore(ctx, settings.History)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer closeStore(store)

			return showRun(ctx, cmd.OutOrStdout(), store, args[0])
		},
	}
}

func listRuns(ctx context.Context, out io.Writer, store service.RunStore, filter service.RunFilter) error {
	runs, err := store.ListRuns(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No saved runs. Use 'rollcall report --save' to record one.")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle("Report History")) //nolint:forbidigo // User-facing output
	return cli.RenderHistory(out, runs)
}

func showRun(ctx context.Context, out io.Writer, store service.RunStore, id string) error {
	run, err := store.GetRun(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return common.NewUserError(fmt.Sprintf("no saved run with id %q", id), err)
	}
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	rep, err := report.FromRun(run)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.RenderRunSummary(run, "")) //nolint:forbidigo // User-facing output
	fmt.Fprintln(out)                                 //nolint:forbidigo // User-facing output
	return rep.Render(out)
}
