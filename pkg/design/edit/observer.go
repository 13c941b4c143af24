package edit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	designErrors "mercator-hq/folio/pkg/design/errors"
	"mercator-hq/folio/pkg/design/model"
	"mercator-hq/folio/pkg/journal"
	"mercator-hq/folio/pkg/telemetry/logging"
	"mercator-hq/folio/pkg/telemetry/metrics"
)

// Decision describes one containment decision taken by the editor.
type Decision struct {
	Operation     string
	Document      string
	ContainerID   string
	ContainerType string
	Slot          string
	ElementID     string
	ElementType   string
	ElementName   string
	Allowed       bool

	// Checked is set when the containment validator ran.
	Checked    bool
	Violations designErrors.Violations

	// Err is set when the edit failed for a reason other than violations.
	Err      error
	Duration time.Duration
}

func (d *Decision) setElement(e *model.Element) {
	d.ElementID = e.ID
	d.ElementType = e.TypeName()
	d.ElementName = e.Name
}

// Codes returns the violation codes of the decision.
func (d Decision) Codes() []string {
	if len(d.Violations) == 0 {
		return nil
	}
	return d.Violations.Codes()
}

// Result classifies the decision as "applied", "refused" or "failed".
// Refusals are containment violations and frozen containers.
func (d Decision) Result() string {
	switch {
	case d.Allowed && d.Err == nil:
		return "applied"
	case d.Err == nil, errors.Is(d.Err, ErrFrozen), errors.Is(d.Err, ErrReadOnly):
		return "refused"
	default:
		return "failed"
	}
}

// Observer is notified of every decision. Implementations must not call
// back into the editor.
type Observer interface {
	Observe(ctx context.Context, d Decision)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, d Decision)

// Observe calls f.
func (f ObserverFunc) Observe(ctx context.Context, d Decision) {
	f(ctx, d)
}

// MultiObserver fans a decision out to several observers in order.
type MultiObserver []Observer

// Observe notifies each non-nil observer.
func (m MultiObserver) Observe(ctx context.Context, d Decision) {
	for _, o := range m {
		if o != nil {
			o.Observe(ctx, d)
		}
	}
}

type nopObserver struct{}

func (nopObserver) Observe(context.Context, Decision) {}

// MetricsObserver records decisions on a metrics.Collector.
type MetricsObserver struct {
	collector *metrics.Collector
}

// NewMetricsObserver returns an observer backed by collector.
func NewMetricsObserver(collector *metrics.Collector) *MetricsObserver {
	return &MetricsObserver{collector: collector}
}

// Observe records the check and, for edits, the edit result.
func (o *MetricsObserver) Observe(_ context.Context, d Decision) {
	if o.collector == nil {
		return
	}

	api := "element"
	if d.Operation == OpCanInsert {
		api = "type"
	}
	// Reorders and removals never reach the validator.
	if d.Checked {
		o.collector.RecordCheck(api, d.ElementType, d.Allowed, d.Duration, d.Codes())
	}

	switch d.Operation {
	case OpInsert, OpMove, OpRemove:
		o.collector.RecordEdit(d.Operation, d.Result())
	}
}

// WriteRecorder receives the outcome of journal writes.
type WriteRecorder interface {
	RecordJournalWrite(backend string, err error)
}

// JournalObserver writes every decision to a journal.
type JournalObserver struct {
	store    journal.Storage
	recorder WriteRecorder
	logger   *slog.Logger
}

// NewJournalObserver returns an observer writing to store. recorder may be
// nil.
func NewJournalObserver(store journal.Storage, recorder WriteRecorder, logger *slog.Logger) *JournalObserver {
	return &JournalObserver{
		store:    store,
		recorder: recorder,
		logger:   logging.Component(logger, "edit.journal"),
	}
}

// Observe stores the decision. Write failures are logged, not returned.
func (o *JournalObserver) Observe(ctx context.Context, d Decision) {
	record := journal.NewRecord(d.Operation)
	record.Document = d.Document
	record.ContainerID = d.ContainerID
	record.ContainerType = d.ContainerType
	record.Slot = d.Slot
	record.ElementID = d.ElementID
	record.ElementType = d.ElementType
	record.ElementName = d.ElementName
	record.Allowed = d.Allowed
	record.Codes = d.Codes()
	record.Duration = d.Duration
	switch {
	case len(d.Violations) > 0:
		record.Message = d.Violations.Error()
	case d.Err != nil:
		record.Message = d.Err.Error()
	}

	err := o.store.Store(ctx, record)
	if o.recorder != nil {
		o.recorder.RecordJournalWrite(o.store.Backend(), err)
	}
	if err != nil {
		o.logger.ErrorContext(ctx, "failed to journal decision",
			"operation", d.Operation,
			"error", err,
		)
	}
}
