package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mercator-hq/folio/pkg/config"
	"mercator-hq/folio/pkg/journal"
	"mercator-hq/folio/pkg/telemetry/logging"
)

// Recorder receives the outcome of each pruning run.
type Recorder interface {
	RecordPrune(deleted int64, duration time.Duration)
}

// Pruner enforces the retention policy on a journal.
type Pruner struct {
	storage   journal.Storage
	config    config.RetentionConfig
	logger    *slog.Logger
	recorder  Recorder
	scheduler *Scheduler
	now       func() time.Time
}

// NewPruner creates a pruner for storage. A nil logger discards output.
func NewPruner(storage journal.Storage, cfg config.RetentionConfig, logger *slog.Logger) *Pruner {
	p := &Pruner{
		storage: storage,
		config:  cfg,
		logger:  logging.Component(logger, "journal.retention"),
		now:     time.Now,
	}
	p.scheduler = NewScheduler(p)
	return p
}

// WithRecorder reports each run to r, typically a metrics.Collector.
func (p *Pruner) WithRecorder(r Recorder) *Pruner {
	p.recorder = r
	return p
}

// Prune deletes records older than the retention period, then the oldest
// records beyond MaxRecords. It returns the total number deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	started := p.now()
	var total int64

	if p.config.Days > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return total, fmt.Errorf("prune by age failed: %w", err)
		}
		total += deleted
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return total, fmt.Errorf("prune by count failed: %w", err)
		}
		total += deleted
	}

	if p.recorder != nil {
		p.recorder.RecordPrune(total, time.Since(started))
	}

	if total == 0 {
		p.logger.Debug("no journal records pruned",
			"retention_days", p.config.Days,
			"max_records", p.config.MaxRecords,
		)
	} else {
		p.logger.Info("journal pruning completed",
			"total_deleted", total,
			"retention_days", p.config.Days,
			"max_records", p.config.MaxRecords,
		)
	}
	return total, nil
}

func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := p.now().AddDate(0, 0, -p.config.Days)

	deleted, err := p.storage.Delete(ctx, &journal.Query{EndTime: &cutoff})
	if err != nil {
		return 0, journal.NewRetentionError(p.config.Days, err)
	}
	p.logger.Debug("pruned journal records by age", "deleted", deleted, "cutoff", cutoff)
	return deleted, nil
}

func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	if count <= p.config.MaxRecords {
		return 0, nil
	}

	excess := count - p.config.MaxRecords
	oldest, err := p.storage.Query(ctx, &journal.Query{SortOrder: "asc", Limit: int(excess)})
	if err != nil {
		return 0, fmt.Errorf("failed to query oldest records: %w", err)
	}
	if len(oldest) == 0 {
		return 0, nil
	}

	// Records sharing the cutoff timestamp go with it.
	cutoff := oldest[len(oldest)-1].Time
	deleted, err := p.storage.Delete(ctx, &journal.Query{EndTime: &cutoff})
	if err != nil {
		return 0, journal.NewRetentionError(p.config.Days, err)
	}
	p.logger.Info("journal exceeded record limit, pruned oldest",
		"count", count,
		"max_records", p.config.MaxRecords,
		"deleted", deleted,
	)
	return deleted, nil
}

// Start runs the pruner on its configured schedule until ctx is done.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops scheduled pruning and waits for a running prune to finish.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the next scheduled run, or nil when not scheduled.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
