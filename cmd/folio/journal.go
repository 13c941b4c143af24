package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/folio/pkg/journal"
	"mercator-hq/folio/pkg/journal/retention"
	"mercator-hq/folio/pkg/journal/storage"
)

var journalFlags struct {
	operation string
	container string
	code      string
	refused   bool
	since     time.Duration
	limit     int
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect and prune the decision journal",
	Long: `The journal records every containment decision taken by insert, move,
remove and check when journal.enabled is set.`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journaled decisions, newest first",
	Long: `List journaled decisions, newest first.

Examples:
  # Refused edits of the last day
  folio journal list --refused --since 24h

  # Decisions refused for row/cell overflow, as CSV
  folio journal list --code ROW_CELL_OVERFLOW -o csv`,
	Args: cobra.NoArgs,
	RunE: runJournalList,
}

var journalPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply the retention policy now",
	Long: `Delete journal records older than journal.retention.days, then the oldest
records beyond journal.retention.max_records.`,
	Args: cobra.NoArgs,
	RunE: runJournalPrune,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd, journalPruneCmd)

	journalListCmd.Flags().StringVar(&journalFlags.operation, "operation", "", "filter by operation (insert, move, remove, check, can_insert)")
	journalListCmd.Flags().StringVar(&journalFlags.container, "container", "", "filter by container ID")
	journalListCmd.Flags().StringVar(&journalFlags.code, "code", "", "filter by violation code")
	journalListCmd.Flags().BoolVar(&journalFlags.refused, "refused", false, "only refused decisions")
	journalListCmd.Flags().DurationVar(&journalFlags.since, "since", 0, "only decisions newer than this")
	journalListCmd.Flags().IntVar(&journalFlags.limit, "limit", 50, "maximum number of records (0 for all)")
}

// openJournal opens the configured journal even when journaling of new
// decisions is disabled.
func openJournal(a *app) (journal.Storage, error) {
	if a.journal != nil {
		return a.journal, nil
	}
	store, err := storage.New(a.cfg.Journal)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	a.journal = store
	return store, nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := openJournal(a)
	if err != nil {
		return err
	}

	query := &journal.Query{
		Operation:   journalFlags.operation,
		ContainerID: journalFlags.container,
		Code:        journalFlags.code,
		Limit:       journalFlags.limit,
	}
	if journalFlags.refused {
		allowed := false
		query.Allowed = &allowed
	}
	if journalFlags.since > 0 {
		start := time.Now().Add(-journalFlags.since)
		query.StartTime = &start
	}

	records, err := store.Query(commandContext(cmd, ""), query)
	if err != nil {
		return err
	}
	return a.print(cmd, recordList(records))
}

func runJournalPrune(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := openJournal(a)
	if err != nil {
		return err
	}

	deleted, err := retention.NewPruner(store, a.cfg.Journal.Retention, a.logger).
		WithRecorder(a.collector).
		Prune(commandContext(cmd, ""))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "pruned %d record(s)\n", deleted)
	return err
}
