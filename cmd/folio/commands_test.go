package main

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"mercator-hq/folio/pkg/cli"
	designErrors "mercator-hq/folio/pkg/design/errors"
)

func TestCheckCommand_Audit(t *testing.T) {
	doc, _ := setup(t)

	out, err := run(t, "check", doc)
	if err != nil {
		t.Fatalf("check error = %v", err)
	}
	if !strings.HasSuffix(out, ": ok\n") {
		t.Errorf("output = %q", out)
	}
}

func TestCheckCommand_Queries(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{
			name:    "label into cell",
			args:    []string{"--container", "total-cell", "--slot", "content", "--type", "Label"},
			wantOut: "allowed",
		},
		{
			name:     "column into body",
			args:     []string{"--slot", "body", "--type", "Column"},
			wantCode: cli.ExitRefused,
			wantOut:  "refused",
		},
		{
			name:     "table into its own cell",
			args:     []string{"--container", "total-cell", "--slot", "content", "--element", "summary"},
			wantCode: cli.ExitRefused,
			wantOut:  "refused",
		},
		{
			name:     "unknown container",
			args:     []string{"--container", "nope", "--slot", "content", "--type", "Label"},
			wantCode: cli.ExitError,
		},
		{
			name:     "type and element",
			args:     []string{"--slot", "body", "--type", "Label", "--element", "total"},
			wantCode: cli.ExitError,
		},
		{
			name:     "type without slot",
			args:     []string{"--type", "Label"},
			wantCode: cli.ExitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := setup(t)
			out, err := run(t, append([]string{"check", doc}, tt.args...)...)
			if code := cli.ExitCode(err); code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (err %v)", code, tt.wantCode, err)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("output = %q, want %q", out, tt.wantOut)
			}
		})
	}
}

func TestInsertCommand(t *testing.T) {
	doc, _ := setup(t)

	out, err := run(t, "insert", doc, "--slot", "body", "--type", "Label", "--name", "title")
	if err != nil {
		t.Fatalf("insert error = %v", err)
	}
	if !strings.HasPrefix(out, "applied:") {
		t.Errorf("output = %q", out)
	}

	data, err := os.ReadFile(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "title") {
		t.Errorf("saved document does not contain the new label:\n%s", data)
	}

	out, err = run(t, "tree", doc)
	if err != nil {
		t.Fatalf("tree error = %v", err)
	}
	if !strings.Contains(out, `Label "title"`) {
		t.Errorf("tree = %q", out)
	}
}

func TestInsertCommand_Refused(t *testing.T) {
	doc, _ := setup(t)
	before, _ := os.ReadFile(doc)

	out, err := run(t, "-o", "json", "insert", doc, "--container", "header-row", "--slot", "cells", "--type", "Cell")
	var violations designErrors.Violations
	if !errors.As(err, &violations) || !violations.HasCode(designErrors.CodeRowCellOverflow) {
		t.Fatalf("insert error = %v, want ROW_CELL_OVERFLOW", err)
	}
	if cli.ExitCode(err) != cli.ExitRefused {
		t.Errorf("exit code = %d", cli.ExitCode(err))
	}

	var view decisionView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if view.Allowed || view.Applied || len(view.Violations) != 1 {
		t.Errorf("view = %+v", view)
	}
	if view.Violations[0].Code != string(designErrors.CodeRowCellOverflow) {
		t.Errorf("code = %q", view.Violations[0].Code)
	}

	after, _ := os.ReadFile(doc)
	if string(before) != string(after) {
		t.Error("refused insert rewrote the document")
	}
}

func TestInsertCommand_DryRun(t *testing.T) {
	doc, _ := setup(t)
	before, _ := os.ReadFile(doc)

	out, err := run(t, "insert", doc, "--slot", "body", "--type", "Label", "--dry-run")
	if err != nil {
		t.Fatalf("insert error = %v", err)
	}
	if !strings.HasPrefix(out, "allowed:") {
		t.Errorf("output = %q", out)
	}
	after, _ := os.ReadFile(doc)
	if string(before) != string(after) {
		t.Error("dry run rewrote the document")
	}
}

func TestMoveAndRemoveCommands(t *testing.T) {
	doc, _ := setup(t)

	if _, err := run(t, "move", doc, "--element", "total", "--slot", "body", "--pos", "0"); err != nil {
		t.Fatalf("move error = %v", err)
	}
	out, err := run(t, "tree", doc)
	if err != nil {
		t.Fatal(err)
	}
	_, body, found := strings.Cut(out, "body:\n")
	if !found || !strings.HasPrefix(strings.TrimSpace(body), `Label "total"`) {
		t.Errorf("label should be first in the body:\n%s", out)
	}

	if _, err := run(t, "remove", doc, "--element", "total"); err != nil {
		t.Fatalf("remove error = %v", err)
	}
	out, _ = run(t, "tree", doc)
	if strings.Contains(out, `"total"`) {
		t.Errorf("label still present:\n%s", out)
	}
}

func TestJournalCommands(t *testing.T) {
	doc, _ := setup(t)

	if _, err := run(t, "insert", doc, "--slot", "body", "--type", "Label"); err != nil {
		t.Fatal(err)
	}
	_, _ = run(t, "insert", doc, "--container", "header-row", "--slot", "cells", "--type", "Cell")

	out, err := run(t, "journal", "list")
	if err != nil {
		t.Fatalf("journal list error = %v", err)
	}
	if !strings.Contains(out, "OPERATION") || strings.Count(out, "insert") != 2 {
		t.Errorf("journal list =\n%s", out)
	}

	out, err = run(t, "journal", "list", "--refused", "-o", "csv")
	if err != nil {
		t.Fatalf("journal list error = %v", err)
	}
	if !strings.Contains(out, string(designErrors.CodeRowCellOverflow)) || strings.Contains(out, ",allowed,") {
		t.Errorf("refused list =\n%s", out)
	}

	out, err = run(t, "journal", "prune")
	if err != nil {
		t.Fatalf("journal prune error = %v", err)
	}
	if out != "pruned 0 record(s)\n" {
		t.Errorf("prune output = %q", out)
	}
}

func TestDictCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "dict", "Row")
	if err != nil {
		t.Fatalf("dict error = %v", err)
	}
	if !strings.Contains(out, "cells") {
		t.Errorf("dict Row = %q", out)
	}

	if _, err := run(t, "dict", "NoSuchType"); err == nil {
		t.Error("dict with unknown type should fail")
	}
}

func TestUnknownOutputFormat(t *testing.T) {
	doc, _ := setup(t)

	_, err := run(t, "-o", "xml", "tree", doc)
	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("error = %v, want ConfigError", err)
	}
}
