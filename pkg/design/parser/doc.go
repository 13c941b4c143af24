// Package parser loads report designs and libraries from YAML documents and
// writes them back.
//
// A document names its kind (report or library), optional library includes
// and the contents of the root element's slots:
//
//	kind: report
//	name: sales
//	includes:
//	  - path: shared.yaml
//	slots:
//	  body:
//	    - type: Table
//	      name: orders
//	      properties:
//	        isSummaryTable: true
//	      slots:
//	        header:
//	          - type: Row
//
// Included libraries are parsed relative to the including file and attached
// with model.Module.IncludeLibrary, which makes them read-only. Element IDs
// are generated when a document does not provide them.
//
// # Errors
//
// Load errors are returned as *errors.ErrorList. Each entry is typed
// (syntax, structural, io) and carries the file, line and column of the
// offending node, plus a suggestion when a misspelled type, slot or kind is
// close to a known one.
//
// The builder only refuses contents whose type the slot does not accept.
// Positional and context rules are left to the containment package and the
// edit layer.
package parser
