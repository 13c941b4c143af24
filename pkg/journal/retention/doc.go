// Package retention prunes old journal records.
//
// A Pruner deletes records older than the configured number of days, then
// trims the oldest records while the journal holds more than MaxRecords.
// A Scheduler runs the pruner on a cron expression:
//
//	pruner := retention.NewPruner(store, cfg.Journal.Retention, logger)
//	if err := pruner.Start(ctx); err != nil {
//	    return err
//	}
//	defer pruner.Stop()
//
// An empty schedule disables scheduled pruning; Prune may still be called
// directly, as the "folio journal prune" command does.
package retention
