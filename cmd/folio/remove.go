package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/folio/pkg/design/edit"
)

var removeFlags struct {
	element string
	dryRun  bool
}

var removeCmd = &cobra.Command{
	Use:   "remove <document>",
	Short: "Remove an element",
	Long: `Remove an element and its contents from the document.

Elements inside virtual or extended containers, or inside an included
library, cannot be removed.

Examples:
  folio remove report.yaml --element total`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().StringVar(&removeFlags.element, "element", "", "element ID or name to remove")
	removeCmd.Flags().BoolVar(&removeFlags.dryRun, "dry-run", false, "do not write the document")
	_ = removeCmd.MarkFlagRequired("element")
}

func runRemove(cmd *cobra.Command, args []string) error {
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
	element, err := resolve(module, removeFlags.element)
	if err != nil {
		return err
	}
	view := decisionView{
		Document:  args[0],
		Operation: edit.OpRemove,
		Candidate: describe(element),
	}
	if c := element.ContainerElement(); c != nil {
		view.Container = describe(c)
		view.Slot = element.Container().SlotID()
	}

	err = editor.Remove(commandContext(cmd, args[0]), element.ID)
	return finishEdit(cmd, a, editor, err, view, removeFlags.dryRun)
}
