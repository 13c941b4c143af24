package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mercator-hq/folio/pkg/cli"
	"mercator-hq/folio/pkg/design/edit"
	designErrors "mercator-hq/folio/pkg/design/errors"
	"mercator-hq/folio/pkg/design/model"
)

var checkFlags struct {
	container string
	slot      string
	typeName  string
	element   string
}

var checkCmd = &cobra.Command{
	Use:   "check <document>",
	Short: "Audit a design or test one containment",
	Long: `Check a report design or library against the containment rules.

Without --slot every element is checked against the slot that holds it.
With --slot and either --type or --element, check answers whether that
candidate could be placed in the slot; nothing is changed.

Containers and elements are given by ID or name; "root" is the module root.

Examples:
  # Audit the whole document
  folio check report.yaml

  # Could a Label go into the content of cell "total-cell"?
  folio check report.yaml --container total-cell --slot content --type Label

  # Could the existing element "summary" move into the page footer?
  folio check report.yaml --container default --slot pageFooter --element summary`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkFlags.container, "container", "root", "container element ID or name")
	checkCmd.Flags().StringVar(&checkFlags.slot, "slot", "", "slot of the container")
	checkCmd.Flags().StringVar(&checkFlags.typeName, "type", "", "candidate element type")
	checkCmd.Flags().StringVar(&checkFlags.element, "element", "", "candidate element ID or name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	module, err := a.load(args[0])
	if err != nil {
		return err
	}
	editor, err := a.editor(module)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd, args[0])

	if checkFlags.slot == "" {
		if checkFlags.typeName != "" || checkFlags.element != "" {
			return fmt.Errorf("--slot is required with --type or --element")
		}
		violations := editor.Audit(ctx)
		if err := a.print(cmd, auditView{
			Document:   args[0],
			Valid:      len(violations) == 0,
			Violations: violationViews(violations),
		}); err != nil {
			return err
		}
		return violations.ToError()
	}

	if (checkFlags.typeName == "") == (checkFlags.element == "") {
		return fmt.Errorf("exactly one of --type or --element is required")
	}

	container, err := resolve(module, checkFlags.container)
	if err != nil {
		return err
	}
	view := decisionView{
		Document:  args[0],
		Operation: edit.OpCheck,
		Container: describe(container),
		Slot:      checkFlags.slot,
	}

	var violations designErrors.Violations
	if checkFlags.typeName != "" {
		view.Operation = edit.OpCanInsert
		view.Candidate = checkFlags.typeName
		view.Allowed, err = editor.CanInsert(ctx, container.ID, checkFlags.slot, checkFlags.typeName)
		if err != nil {
			return err
		}
	} else {
		element, err := resolve(module, checkFlags.element)
		if err != nil {
			return err
		}
		view.Candidate = describe(element)
		violations, err = editor.Check(ctx, element.ID, container.ID, checkFlags.slot)
		if err != nil {
			return err
		}
		view.Allowed = len(violations) == 0
		view.Violations = violationViews(violations)
	}

	if err := a.print(cmd, view); err != nil {
		return err
	}
	if len(violations) > 0 {
		return violations
	}
	if !view.Allowed {
		return cli.ErrRefused
	}
	return nil
}

// describe names an element as Type "name".
func describe(e *model.Element) string {
	if e.Name == "" {
		return e.TypeName()
	}
	return e.TypeName() + " " + strconv.Quote(e.Name)
}
