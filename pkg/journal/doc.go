// Package journal records containment decisions made by the edit layer.
//
// Every Insert, Move and Remove attempted through an edit.Editor produces a
// Record: which container and slot were targeted, which element type was
// proposed, whether it was allowed, and the violation codes when it was not.
// Records are written to a Storage backend (see the storage subpackage) and
// pruned on a schedule by the retention subpackage.
//
// # Querying
//
//	allowed := false
//	records, err := store.Query(ctx, &journal.Query{
//	    Allowed: &allowed,
//	    Code:    "ROW_CELL_OVERFLOW",
//	    Limit:   20,
//	})
//
// Results are ordered newest first unless SortOrder is "asc".
package journal
