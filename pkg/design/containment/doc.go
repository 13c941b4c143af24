// Package containment decides whether a design element, or an element type,
// may be inserted into a container slot.
//
// A Provider is created for one focus slot and runs a fixed chain of guards.
// The first failing guard decides:
//
//  1. the slot accepts the type, and a single-cardinality slot is empty
//     (template types are exempt from the count);
//  2. templates are not placed in libraries or library components;
//  3. the container does not belong to an included library;
//  4. the container is neither virtual nor extended;
//  5. a summary table's detail slot stays empty;
//  6. a theme only holds predefined styles of its own type;
//  7. an element never becomes its own ancestor.
//
// When every guard passes, the nearest listing or master page above the
// focus applies its positional content rules and its answer is final.
//
// Two entry points exist. CheckContainmentContext works on an element and
// returns the violations found. CanContainDefn works on a type only, for
// previews before an element exists; it skips the theme and self-containment
// guards because both need a concrete element.
//
// The provider reads the tree and the dictionary and never writes either.
// Callers serialize tree edits around it.
package containment
