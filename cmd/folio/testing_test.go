package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"mercator-hq/folio/pkg/config"
)

const salesDoc = `kind: report
name: sales
slots:
  body:
    - type: Table
      name: orders
      slots:
        columns:
          - type: Column
          - type: Column
        header:
          - type: Row
            name: header-row
            slots:
              cells:
                - type: Cell
                - type: Cell
    - type: Grid
      name: summary
      slots:
        rows:
          - type: Row
            slots:
              cells:
                - type: Cell
                  name: total-cell
                  slots:
                    content:
                      - type: Label
                        name: total
`

// setup writes the sales document to a temp dir and installs a config that
// journals into SQLite beside it.
func setup(t *testing.T) (doc string, cfg *config.Config) {
	t.Helper()
	dir := t.TempDir()

	doc = filepath.Join(dir, "sales.yaml")
	if err := os.WriteFile(doc, []byte(salesDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg = config.Default()
	cfg.Journal.Enabled = true
	cfg.Journal.Backend = "sqlite"
	cfg.Journal.SQLite.Path = filepath.Join(dir, "journal.db")
	cfg.Telemetry.Logging.Level = "error"
	config.SetConfig(cfg)
	t.Cleanup(func() { config.SetConfig(nil) })

	resetFlags()
	return doc, cfg
}

func resetFlags() {
	cfgFile, verbose, outputFormat = "", false, "text"
	checkFlags.container, checkFlags.slot, checkFlags.typeName, checkFlags.element = "root", "", "", ""
	insertFlags.container, insertFlags.slot, insertFlags.typeName, insertFlags.name = "root", "", "", ""
	insertFlags.pos, insertFlags.dryRun = -1, false
	moveFlags.element, moveFlags.container, moveFlags.slot = "", "root", ""
	moveFlags.pos, moveFlags.dryRun = -1, false
	removeFlags.element, removeFlags.dryRun = "", false
	treeFlags.ids, treeFlags.libraries = false, false
	dictFlags.concrete = false
	journalFlags.operation, journalFlags.container, journalFlags.code = "", "", ""
	journalFlags.refused, journalFlags.since, journalFlags.limit = false, 0, 50
}

// run executes the root command and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	defer resetFlags()
	err := rootCmd.Execute()
	return out.String(), err
}
