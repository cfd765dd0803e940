package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/distdist/internal/config"
	"github.com/nao1215/distdist/internal/database"
	"github.com/nao1215/distdist/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or show recorded analysis runs",
		Long: `History shows analysis runs recorded by 'distdist plot'.

Without flags, all runs are listed newest first. Use --id to print one run
as JSON, or --delete to remove it.

Examples:
  # List recorded runs
  distdist history

  # Print run 3 as JSON
  distdist history --id 3

  # Delete run 3
  distdist history --delete 3`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int64P("id", "i", 0,
		"Print the run with this ID as JSON")
	cmd.Flags().Int64("delete", 0,
		"Delete the run with this ID")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// openHistory opens the run database from the --db-dir flag or the XDG
// data directory.
func openHistory(cmd *cobra.Command) (*database.RunDB, error) {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	deleteID, err := cmd.Flags().GetInt64("delete")
	if err != nil {
		return err
	}
	if id != 0 && deleteID != 0 {
		return fmt.Errorf("--id and --delete cannot be used together")
	}

	db, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case deleteID != 0:
		deleted, err := db.DeleteRun(ctx, deleteID)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("run %d not found", deleteID)
		}
		fmt.Fprintf(out, "Deleted run %d\n", deleteID)
		return nil
	case id != 0:
		a, err := db.GetRunByID(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("run %d not found", id)
		}
		_, err = report.NewJSONWriter(out, report.WithPrettyPrint()).Write(a)
		return err
	default:
		return listRuns(cmd, db, out)
	}
}

// listRuns prints a table of all recorded runs.
func listRuns(cmd *cobra.Command, db *database.RunDB, out io.Writer) error {
	runs, err := db.ListRuns(cmd.Context())
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		fmt.Fprintln(out, "\nUse 'distdist plot' to run the analysis.")
		return nil
	}

	fmt.Fprintf(out, "Recorded runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-6s  %-20s  %-9s  %-4s  %-3s  %-12s  %s\n",
		"ID", "Date", "Threshold", "Near", "Far", "Mean period", "Figure")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 76))

	for _, meta := range runs {
		mean := "failed"
		if meta.NearMeanPeriod.Valid {
			mean = fmt.Sprintf("%.4f", meta.NearMeanPeriod.Float64)
		}
		figure := meta.FigurePath
		if figure == "" {
			figure = "-"
		}
		fmt.Fprintf(out, "  %-6d  %-20s  %-9s  %-4d  %-3d  %-12s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			report.FormatFloat(meta.Threshold),
			meta.NearCount,
			meta.FarCount,
			mean,
			figure,
		)
	}

	fmt.Fprintln(out, "\nUse 'distdist history --id <id>' to see a run in full.")
	fmt.Fprintln(out, "Use 'distdist compare <id> <id>' to compare two runs.")

	return nil
}
