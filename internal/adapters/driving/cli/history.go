package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tap-sheets/internal/core/ports/driving"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded discover and sync runs",
	Long: `Lists previous runs, most recent first, or shows one run in detail when
a run ID is given. Runs are only kept across invocations when history_dir
is set in the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	history, closer, err := newHistory(cfg)
	if err != nil {
		return err
	}
	defer closer()

	if len(args) == 1 {
		return showRun(cmd, history, args[0])
	}

	runs, err := history.Recent(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tSTREAM\tSTARTED\tDURATION\tITEMS\tSTATUS")
	for _, run := range runs {
		stream := run.StreamID
		if stream == "" {
			stream = "-"
		}
		status := "ok"
		if !run.Succeeded() {
			status = "error: " + run.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			run.ID, run.Mode, stream,
			run.StartedAt.Local().Format(time.DateTime),
			run.Duration().Round(time.Millisecond),
			run.Items, status)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, history driving.HistoryService, id string) error {
	run, err := history.Get(context.Background(), id)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	stream := run.StreamID
	if stream == "" {
		stream = "-"
	}
	finished := "-"
	if !run.FinishedAt.IsZero() {
		finished = run.FinishedAt.Local().Format(time.DateTime)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", run.ID)
	fmt.Fprintf(w, "Mode:\t%s\n", run.Mode)
	fmt.Fprintf(w, "Stream:\t%s\n", stream)
	fmt.Fprintf(w, "Started:\t%s\n", run.StartedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "Finished:\t%s\n", finished)
	fmt.Fprintf(w, "Duration:\t%s\n", run.Duration().Round(time.Millisecond))
	fmt.Fprintf(w, "Items:\t%d\n", run.Items)
	if run.Succeeded() {
		fmt.Fprintln(w, "Status:\tok")
	} else {
		fmt.Fprintf(w, "Status:\terror\nError:\t%s\n", run.Error)
	}
	return w.Flush()
}
