// Package meta holds the metadata dictionary: the element definitions,
// their slots and the predefined styles that every design document is
// checked against.
//
// A dictionary is loaded from YAML:
//
//	elements:
//	  - name: Table
//	    extends: Listing
//	    properties:
//	      isSummaryTable: false
//	    slots:
//	      - id: detail
//	        multiple: true
//	        content: [Row]
//	styles:
//	  - {name: table-header, type: table}
//
// Builtin returns the standard vocabulary embedded in the binary. Loading
// links every definition to its parent and rejects unknown parents,
// inheritance cycles, duplicate names and unknown slot content types.
//
// Dictionaries are immutable once loaded. Initialize and Get keep one
// process-wide instance; consumers receive it as a parameter so tests can
// substitute their own.
package meta
