// Folio checks and edits report designs against the containment rules of
// the design element dictionary.
//
// Usage:
//
//	# Audit a whole document
//	folio check report.yaml
//
//	# Ask whether a Label may go into a cell
//	folio check report.yaml --container summary-cell --slot content --type Label
//
//	# Insert, move and remove elements; refused edits exit with status 2
//	folio insert report.yaml --container orders --slot detail --type Row
//	folio move report.yaml --element total --container root --slot body
//	folio remove report.yaml --element total
//
//	# Print the element tree or the dictionary
//	folio tree report.yaml
//	folio dict Table
//
//	# Re-audit whenever the document or its libraries change
//	folio watch report.yaml
//
//	# Inspect and prune the decision journal
//	folio journal list --refused
//	folio journal prune
package main

func main() {
	Execute()
}
