// Package errors provides the error types shared by the design packages.
//
// Two families live here:
//
// Load errors (Error, ErrorList) describe problems found while reading design
// documents and metadata dictionaries. They carry a source Location, optional
// surrounding context and a suggestion:
//
//	reports/sales.yaml:12:13: structural error: Unknown element type "Lable"
//	    11 |     - name: title
//	  > 12 |       type: Lable
//	       |             ^
//	    13 |       slots:
//	  hint: Did you mean 'Label'?
//
// Containment violations (ContentError, Violations) describe why a candidate
// element cannot be placed in a container slot. A check that accepts the
// candidate returns an empty Violations list:
//
//	if v := provider.CheckContainmentContext(module, element); len(v) > 0 {
//	    return v.ToError()
//	}
package errors
