package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/folio/pkg/cli"
)

var (
	// Global flags
	cfgFile      string
	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Folio - report design containment toolkit",
	Long: `Folio loads report designs and libraries written in YAML and decides
which design elements may be placed in which container slots.

Every edit is checked before it is applied:
  - slot content types and cardinality
  - frozen (virtual or extended) containers and included libraries
  - template elements outside libraries
  - summary tables, themes and self-containment
  - row/cell, group and master page rules of listings and pages

Refused edits leave the document unchanged and exit with status 2.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the status for its error.
func Execute() {
	err := rootCmd.Execute()
	code := cli.ExitCode(err)
	if err != nil && code != cli.ExitRefused {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(code)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults apply when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json, csv")
}
