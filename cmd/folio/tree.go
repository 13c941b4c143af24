package main

import (
	"github.com/spf13/cobra"
)

var treeFlags struct {
	ids       bool
	libraries bool
}

var treeCmd = &cobra.Command{
	Use:   "tree <document>",
	Short: "Print the element tree of a document",
	Long: `Print the element tree of a report design or library.

Examples:
  folio tree report.yaml
  folio tree report.yaml --ids
  folio tree report.yaml --libraries -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().BoolVar(&treeFlags.ids, "ids", false, "show element IDs")
	treeCmd.Flags().BoolVar(&treeFlags.libraries, "libraries", false, "also print included libraries")
}

func runTree(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	module, err := a.load(args[0])
	if err != nil {
		return err
	}

	if err := a.print(cmd, newTreeNode(module.Root(), treeFlags.ids)); err != nil {
		return err
	}
	if treeFlags.libraries {
		for _, lib := range module.Libraries() {
			if err := a.print(cmd, newTreeNode(lib.Root(), treeFlags.ids)); err != nil {
				return err
			}
		}
	}
	return nil
}
