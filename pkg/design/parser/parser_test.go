package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	designErrors "mercator-hq/folio/pkg/design/errors"
	"mercator-hq/folio/pkg/design/meta"
	"mercator-hq/folio/pkg/design/model"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	return NewParser(meta.MustBuiltin())
}

func TestParser_Parse_Report(t *testing.T) {
	module, err := newTestParser(t).Parse("testdata/sales.yaml")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	root := module.Root()
	if root.Name != "sales" {
		t.Errorf("Name = %q, want %q", root.Name, "sales")
	}
	if root.ID != "5f0c1a52-3d47-4a51-9a1e-7c38f8e2b0d1" {
		t.Errorf("root ID = %q", root.ID)
	}
	if module.IsLibrary() {
		t.Error("report parsed as library")
	}

	body := root.Contents(meta.BodySlot)
	if len(body) != 2 {
		t.Fatalf("len(body) = %d, want 2", len(body))
	}

	table := body[0]
	if table.TypeName() != meta.TableElement || table.Name != "orders" {
		t.Errorf("body[0] = %s, want Table \"orders\"", table)
	}
	if table.ExtendsName != "corp.base-table" {
		t.Errorf("ExtendsName = %q", table.ExtendsName)
	}
	if !table.BoolProperty(module, meta.IsSummaryTableProp) {
		t.Error("isSummaryTable should be true")
	}
	if table.Location.Line == 0 || table.Location.File != "testdata/sales.yaml" {
		t.Errorf("Location = %+v, want a line in testdata/sales.yaml", table.Location)
	}

	label := module.FindByName("title")
	if label == nil {
		t.Fatal("label \"title\" not found")
	}
	if got := label.StringProperty(module, "text"); got != "Orders" {
		t.Errorf("text = %q, want %q", got, "Orders")
	}
	if label.ID == "" {
		t.Error("generated ID is empty")
	}

	page := root.Contents(meta.PageSlot)
	if len(page) != 1 || len(page[0].Contents(meta.PageFooterSlot)) != 1 {
		t.Errorf("master page footer not loaded: %v", page)
	}
}

func TestParser_Parse_Includes(t *testing.T) {
	module, err := newTestParser(t).Parse("testdata/sales.yaml")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	lib := module.Library("corp")
	if lib == nil {
		t.Fatal("library corp not included")
	}
	if lib.Host() != module {
		t.Error("library host not set")
	}
	if !lib.IsReadOnly() {
		t.Error("included library should be read-only")
	}

	base := module.ResolveExtends("corp.base-table")
	if base == nil {
		t.Fatal("corp.base-table did not resolve")
	}
	if !base.IsRootIncludedByModule() {
		t.Error("library element should report IsRootIncludedByModule")
	}
	if len(base.Contents(meta.ColumnSlot)) != 2 {
		t.Errorf("base table columns = %d, want 2", len(base.Contents(meta.ColumnSlot)))
	}
}

func TestParser_ParseBytes_Errors(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		wantType       designErrors.ErrorType
		wantMessage    string
		wantSuggestion string
	}{
		{
			name:        "invalid yaml",
			input:       "kind: report\nslots: [unclosed",
			wantType:    designErrors.ErrorTypeSyntax,
			wantMessage: "YAML parsing failed",
		},
		{
			name:        "missing kind",
			input:       "name: x\n",
			wantType:    designErrors.ErrorTypeStructural,
			wantMessage: "missing required field 'kind'",
		},
		{
			name:           "unknown kind",
			input:          "kind: reprot\n",
			wantType:       designErrors.ErrorTypeStructural,
			wantMessage:    "Unknown document kind",
			wantSuggestion: "Did you mean 'report'?",
		},
		{
			name:        "library without namespace",
			input:       "kind: library\nname: lib\n",
			wantType:    designErrors.ErrorTypeStructural,
			wantMessage: "missing required field 'namespace'",
		},
		{
			name:           "unknown type",
			input:          "kind: report\nslots:\n  body:\n    - type: Lable\n",
			wantType:       designErrors.ErrorTypeStructural,
			wantMessage:    "Unknown element type \"Lable\"",
			wantSuggestion: "Did you mean 'Label'?",
		},
		{
			name:           "unknown slot",
			input:          "kind: report\nslots:\n  bdy:\n    - type: Label\n",
			wantType:       designErrors.ErrorTypeStructural,
			wantMessage:    "has no slot \"bdy\"",
			wantSuggestion: "Did you mean 'body'?",
		},
		{
			name:        "abstract type",
			input:       "kind: report\nslots:\n  body:\n    - type: Listing\n",
			wantType:    designErrors.ErrorTypeStructural,
			wantMessage: "is abstract",
		},
		{
			name:        "type not accepted by slot",
			input:       "kind: report\nslots:\n  body:\n    - type: Row\n",
			wantType:    designErrors.ErrorTypeStructural,
			wantMessage: "does not accept Row",
		},
		{
			name:        "missing type",
			input:       "kind: report\nslots:\n  body:\n    - name: x\n",
			wantType:    designErrors.ErrorTypeStructural,
			wantMessage: "missing required field 'type'",
		},
		{
			name:        "duplicate id",
			input:       "kind: report\nslots:\n  body:\n    - {type: Label, id: a}\n    - {type: Label, id: a}\n",
			wantType:    designErrors.ErrorTypeStructural,
			wantMessage: "Duplicate element id \"a\"",
		},
		{
			name:        "unresolved extends",
			input:       "kind: report\nslots:\n  body:\n    - {type: Label, extends: missing}\n",
			wantType:    designErrors.ErrorTypeStructural,
			wantMessage: "extends unknown element \"missing\"",
		},
		{
			name:           "extends from unknown library",
			input:          "kind: report\nslots:\n  body:\n    - {type: Label, extends: corp.title}\n",
			wantType:       designErrors.ErrorTypeStructural,
			wantMessage:    "extends unknown element",
			wantSuggestion: "namespace \"corp\"",
		},
		{
			name:        "slots not a mapping",
			input:       "kind: report\nslots: [body]\n",
			wantType:    designErrors.ErrorTypeStructural,
			wantMessage: "must be a mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestParser(t).ParseBytes([]byte(tt.input), "test.yaml")
			if err == nil {
				t.Fatal("ParseBytes() expected error, got nil")
			}

			var found *designErrors.Error
			switch e := err.(type) {
			case *designErrors.Error:
				found = e
			case *designErrors.ErrorList:
				for _, item := range e.Errors {
					if strings.Contains(item.Message, tt.wantMessage) {
						found = item
						break
					}
				}
			default:
				t.Fatalf("unexpected error type %T", err)
			}

			if found == nil || !strings.Contains(found.Message, tt.wantMessage) {
				t.Fatalf("error %v does not mention %q", err, tt.wantMessage)
			}
			if found.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", found.Type, tt.wantType)
			}
			if tt.wantSuggestion != "" && !strings.Contains(found.Suggestion, tt.wantSuggestion) {
				t.Errorf("Suggestion = %q, want it to contain %q", found.Suggestion, tt.wantSuggestion)
			}
		})
	}
}

func TestParser_ErrorLocation(t *testing.T) {
	input := "kind: report\nslots:\n  body:\n    - type: Label\n    - type: Nope\n"
	_, err := newTestParser(t).ParseBytes([]byte(input), "loc.yaml")

	list, ok := err.(*designErrors.ErrorList)
	if !ok || list.Count() != 1 {
		t.Fatalf("expected one error, got %v", err)
	}
	loc := list.Errors[0].Location
	if loc.File != "loc.yaml" || loc.Line != 5 || loc.Column != 7 {
		t.Errorf("Location = %s, want loc.yaml:5:7", loc)
	}
}

func TestParser_MaxFileSize(t *testing.T) {
	p := newTestParser(t).WithMaxFileSize(16)

	_, err := p.ParseBytes([]byte("kind: report\nname: far-too-long\n"), "big.yaml")
	e, ok := err.(*designErrors.Error)
	if !ok || e.Type != designErrors.ErrorTypeIO {
		t.Fatalf("expected io error, got %v", err)
	}

	if _, err := p.Parse("testdata/sales.yaml"); err == nil {
		t.Error("Parse() should enforce the size limit")
	}
}

func TestParser_Parse_MissingFile(t *testing.T) {
	_, err := newTestParser(t).Parse(filepath.Join(t.TempDir(), "absent.yaml"))
	e, ok := err.(*designErrors.Error)
	if !ok || e.Type != designErrors.ErrorTypeIO {
		t.Fatalf("expected io error, got %v", err)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParser_IncludeErrors(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		wantMessage string
	}{
		{
			name: "include cycle",
			files: map[string]string{
				"main.yaml": "kind: report\nincludes:\n  - path: a.yaml\n",
				"a.yaml":    "kind: library\nnamespace: a\nincludes:\n  - path: b.yaml\n",
				"b.yaml":    "kind: library\nnamespace: b\nincludes:\n  - path: a.yaml\n",
			},
			wantMessage: "Include cycle",
		},
		{
			name: "include of a report",
			files: map[string]string{
				"main.yaml":  "kind: report\nincludes:\n  - path: other.yaml\n",
				"other.yaml": "kind: report\n",
			},
			wantMessage: "is not a library",
		},
		{
			name: "missing include",
			files: map[string]string{
				"main.yaml": "kind: report\nincludes:\n  - path: gone.yaml\n",
			},
			wantMessage: "Failed to access file",
		},
		{
			name: "duplicate namespace",
			files: map[string]string{
				"main.yaml": "kind: report\nincludes:\n  - path: a.yaml\n  - path: b.yaml\n",
				"a.yaml":    "kind: library\nnamespace: corp\n",
				"b.yaml":    "kind: library\nnamespace: corp\n",
			},
			wantMessage: "already in use",
		},
		{
			name: "include without path",
			files: map[string]string{
				"main.yaml": "kind: report\nincludes:\n  - namespace: corp\n",
			},
			wantMessage: "missing required field 'path'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}

			_, err := newTestParser(t).Parse(filepath.Join(dir, "main.yaml"))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMessage) {
				t.Errorf("error %q does not mention %q", err, tt.wantMessage)
			}
		})
	}
}

func TestParser_IncludeNamespaceOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.yaml", "kind: library\nnamespace: corp\nslots:\n  components:\n    - {type: Label, name: title}\n")
	main := writeFile(t, dir, "main.yaml",
		"kind: report\nincludes:\n  - {path: lib.yaml, namespace: brand}\nslots:\n  body:\n    - {type: Label, extends: brand.title}\n")

	module, err := newTestParser(t).Parse(main)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if module.Library("brand") == nil || module.Library("corp") != nil {
		t.Errorf("namespace override not applied: %v", module.Libraries())
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	p := newTestParser(t)
	original, err := p.Parse("testdata/sales.yaml")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	// Written next to the original so the include path still resolves.
	dir := t.TempDir()
	shared, err := os.ReadFile("testdata/shared.yaml")
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "shared.yaml", string(shared))
	path := writeFile(t, dir, "sales.yaml", string(data))

	reloaded, err := p.Parse(path)
	if err != nil {
		t.Fatalf("Parse(marshaled) failed: %v\n%s", err, data)
	}

	want := describe(original)
	got := describe(reloaded)
	if len(got) != len(want) {
		t.Fatalf("element count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMarshal_Library(t *testing.T) {
	lib, err := model.NewLibrary(meta.MustBuiltin(), "shared", "corp")
	if err != nil {
		t.Fatal(err)
	}

	data, err := Marshal(lib)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	out := string(data)
	for _, want := range []string{"kind: library", "namespace: corp", "name: shared"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "slots:") {
		t.Errorf("empty slots should be omitted:\n%s", out)
	}

	if _, err := Marshal(nil); err == nil {
		t.Error("Marshal(nil) expected error")
	}
}

// describe flattens a module into comparable lines.
func describe(m *model.Module) []string {
	var lines []string
	for _, e := range model.Descendants(m, m.Root()) {
		lines = append(lines, strings.Join([]string{
			e.TypeName(), e.Name, e.ID, e.ExtendsName, e.Container().SlotID(),
			e.StringProperty(m, meta.DataSetProp),
		}, "|"))
	}
	return lines
}
