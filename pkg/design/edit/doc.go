// Package edit is the command layer for structural changes to a design.
//
// An Editor owns one model.Module and serializes every edit with a mutex.
// Insertions and moves ask the containment validator first and are refused,
// unchanged, when it reports violations. Removals are refused when the
// container is frozen or belongs to an included library.
//
// Every decision is logged and handed to an Observer. MetricsObserver feeds
// the Prometheus collector; JournalObserver writes a journal.Record.
//
//	editor, err := edit.NewEditor(module, dict,
//	    edit.WithLogger(logger),
//	    edit.WithObserver(edit.MultiObserver{
//	        edit.NewMetricsObserver(collector),
//	        edit.NewJournalObserver(store, collector, logger),
//	    }),
//	)
//	label, _ := editor.NewElement("Label", "title")
//	if err := editor.Insert(ctx, cellID, "content", label, -1); err != nil {
//	    var v errors.Violations
//	    if stderrors.As(err, &v) { ... }
//	}
package edit
