package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var dictFlags struct {
	concrete bool
}

var dictCmd = &cobra.Command{
	Use:   "dict [type]",
	Short: "Show the element dictionary",
	Long: `List the element types of the dictionary, or show the slots of one type.

The dictionary is the builtin one unless dictionary.path is configured.

Examples:
  folio dict
  folio dict --concrete -o csv
  folio dict Table`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDict,
}

func init() {
	rootCmd.AddCommand(dictCmd)

	dictCmd.Flags().BoolVar(&dictFlags.concrete, "concrete", false, "list only non-abstract types")
}

func runDict(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 1 {
		defn := a.dict.Element(args[0])
		if defn == nil {
			return fmt.Errorf("unknown element type %q", args[0])
		}
		return a.print(cmd, newTypeView(defn))
	}

	var types typeList
	for _, d := range a.dict.Elements() {
		if dictFlags.concrete && d.IsAbstract() {
			continue
		}
		types = append(types, d)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name() < types[j].Name() })
	return a.print(cmd, types)
}

