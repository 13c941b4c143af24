package errors

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocation_String(t *testing.T) {
	tests := []struct {
		loc  Location
		want string
	}{
		{Location{}, "<unknown>"},
		{Location{File: "sales.yaml"}, "sales.yaml"},
		{Location{File: "sales.yaml", Line: 3, Column: 5}, "sales.yaml:3:5"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.loc, got, tt.want)
		}
	}
}

func TestErrorList(t *testing.T) {
	list := NewErrorList()
	if list.ToError() != nil {
		t.Error("empty list should convert to nil")
	}

	list.Add(nil)
	list.AddError(ErrorTypeSyntax, "bad indentation", Location{File: "a.yaml", Line: 2, Column: 1})
	if list.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", list.Count())
	}
	if got := list.Error(); !strings.HasPrefix(got, "a.yaml:2:1: syntax error: bad indentation") {
		t.Errorf("single error = %q", got)
	}

	list.AddErrorWithSuggestion(ErrorTypeStructural, `unknown slot "bdy"`, Location{File: "a.yaml", Line: 4}, "Did you mean 'body'?")
	msg := list.Error()
	if !strings.HasPrefix(msg, "2 errors:") || !strings.Contains(msg, "hint: Did you mean 'body'?") {
		t.Errorf("Error() = %q", msg)
	}
	if !list.HasErrorType(ErrorTypeStructural) || list.HasErrorType(ErrorTypeIO) {
		t.Error("HasErrorType() mismatch")
	}
	if got := list.ByType(ErrorTypeSyntax); len(got) != 1 {
		t.Errorf("ByType(syntax) = %v", got)
	}
}

func TestAddContextToError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.yaml")
	doc := "kind: report\nslots:\n  body:\n    - type: Lable\n      name: title\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	err := AddContextToError(&Error{
		Type:     ErrorTypeStructural,
		Message:  `unknown element type "Lable"`,
		Location: Location{File: path, Line: 4, Column: 13},
	})
	lines := strings.Split(strings.TrimRight(err.Context, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("context has %d lines, want 5:\n%s", len(lines), err.Context)
	}
	if !strings.HasPrefix(lines[2], "  > 4 |") {
		t.Errorf("marked line = %q", lines[2])
	}
	if caret := strings.Index(lines[3], "^"); caret != strings.Index(lines[2], "Lable") {
		t.Errorf("caret at %d, want under %q:\n%s", caret, "Lable", err.Context)
	}

	missing := AddContextToError(&Error{Location: Location{File: filepath.Join(t.TempDir(), "none.yaml"), Line: 1}})
	if missing.Context != "" {
		t.Errorf("context for a missing file = %q", missing.Context)
	}
}

func TestSuggestName(t *testing.T) {
	known := []string{"body", "pages", "styles", "components", "dataSets", "themes"}
	tests := []struct {
		unknown string
		want    string
	}{
		{"bdy", "Did you mean 'body'?"},
		{"STYLES", "Did you mean 'styles'?"},
		{"parameters", "Valid names include: body, pages, styles, components, dataSets, ..."},
	}
	for _, tt := range tests {
		if got := SuggestName(tt.unknown, known); got != tt.want {
			t.Errorf("SuggestName(%q) = %q, want %q", tt.unknown, got, tt.want)
		}
	}
	if got := SuggestName("x", nil); got != "" {
		t.Errorf("SuggestName with no names = %q", got)
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"Label", "Label", 0},
		{"Lable", "Label", 2},
		{"", "Row", 3},
		{"Cell", "Call", 1},
	}
	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
