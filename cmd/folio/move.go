package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/folio/pkg/design/edit"
)

var moveFlags struct {
	element   string
	container string
	slot      string
	pos       int
	dryRun    bool
}

var moveCmd = &cobra.Command{
	Use:   "move <document>",
	Short: "Move an element to another slot or position",
	Long: `Move an existing element into a container slot.

Moving into a different slot is checked like an insertion. Moving within
the slot that already holds the element only reorders it.

Examples:
  # Move label "total" into the report body
  folio move report.yaml --element total --slot body

  # Make the grid the first item of the body
  folio move report.yaml --element summary --slot body --pos 0`,
	Args: cobra.ExactArgs(1),
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)

	moveCmd.Flags().StringVar(&moveFlags.element, "element", "", "element ID or name to move")
	moveCmd.Flags().StringVar(&moveFlags.container, "container", "root", "target container ID or name")
	moveCmd.Flags().StringVar(&moveFlags.slot, "slot", "", "target slot")
	moveCmd.Flags().IntVar(&moveFlags.pos, "pos", -1, "position in the target slot (-1 appends)")
	moveCmd.Flags().BoolVar(&moveFlags.dryRun, "dry-run", false, "do not write the document")
	_ = moveCmd.MarkFlagRequired("element")
	_ = moveCmd.MarkFlagRequired("slot")
}

func runMove(cmd *cobra.Command, args []string) error {
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
	element, err := resolve(module, moveFlags.element)
	if err != nil {
		return err
	}
	container, err := resolve(module, moveFlags.container)
	if err != nil {
		return err
	}

	err = editor.Move(commandContext(cmd, args[0]), element.ID, container.ID, moveFlags.slot, moveFlags.pos)
	return finishEdit(cmd, a, editor, err, decisionView{
		Document:  args[0],
		Operation: edit.OpMove,
		Container: describe(container),
		Slot:      moveFlags.slot,
		Candidate: describe(element),
	}, moveFlags.dryRun)
}
