package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/folio/pkg/cli"
	"mercator-hq/folio/pkg/design/edit"
	designErrors "mercator-hq/folio/pkg/design/errors"
)

var insertFlags struct {
	container string
	slot      string
	typeName  string
	name      string
	pos       int
	dryRun    bool
}

var insertCmd = &cobra.Command{
	Use:   "insert <document>",
	Short: "Insert a new element into a slot",
	Long: `Create an element of the given type and insert it into a container slot.

The insertion is checked first; a refused insertion leaves the document
unchanged and exits with status 2.

Examples:
  # Append a Label to the report body
  folio insert report.yaml --slot body --type Label --name title

  # Insert a Row first in the detail band of table "orders"
  folio insert report.yaml --container orders --slot detail --type Row --pos 0

  # Check and print without saving
  folio insert report.yaml --slot body --type Grid --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runInsert,
}

func init() {
	rootCmd.AddCommand(insertCmd)

	insertCmd.Flags().StringVar(&insertFlags.container, "container", "root", "container element ID or name")
	insertCmd.Flags().StringVar(&insertFlags.slot, "slot", "", "slot of the container")
	insertCmd.Flags().StringVar(&insertFlags.typeName, "type", "", "element type to create")
	insertCmd.Flags().StringVar(&insertFlags.name, "name", "", "name of the new element")
	insertCmd.Flags().IntVar(&insertFlags.pos, "pos", -1, "position in the slot (-1 appends)")
	insertCmd.Flags().BoolVar(&insertFlags.dryRun, "dry-run", false, "do not write the document")
	_ = insertCmd.MarkFlagRequired("slot")
	_ = insertCmd.MarkFlagRequired("type")
}

func runInsert(cmd *cobra.Command, args []string) error {
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
	container, err := resolve(module, insertFlags.container)
	if err != nil {
		return err
	}
	element, err := editor.NewElement(insertFlags.typeName, insertFlags.name)
	if err != nil {
		return err
	}

	err = editor.Insert(commandContext(cmd, args[0]), container.ID, insertFlags.slot, element, insertFlags.pos)
	return finishEdit(cmd, a, editor, err, decisionView{
		Document:  args[0],
		Operation: edit.OpInsert,
		Container: describe(container),
		Slot:      insertFlags.slot,
		Candidate: describe(element),
	}, insertFlags.dryRun)
}

// finishEdit prints the outcome of an edit and saves the document when the
// edit was applied.
func finishEdit(cmd *cobra.Command, a *app, editor *edit.Editor, editErr error, view decisionView, dryRun bool) error {
	var violations designErrors.Violations
	switch {
	case errors.As(editErr, &violations):
		view.Violations = violationViews(violations)
	case errors.Is(editErr, edit.ErrFrozen), errors.Is(editErr, edit.ErrReadOnly):
		view.Violations = []violationView{{Message: editErr.Error()}}
		editErr = fmt.Errorf("%w: %w", cli.ErrRefused, editErr)
	case editErr != nil:
		return editErr
	default:
		view.Allowed = true
		view.Applied = !dryRun
	}

	if view.Applied {
		if err := a.save(editor.Module()); err != nil {
			return err
		}
	}
	if err := a.print(cmd, view); err != nil {
		return err
	}
	return editErr
}
