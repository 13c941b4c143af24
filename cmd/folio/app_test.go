package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"mercator-hq/folio/pkg/design/edit"
	"mercator-hq/folio/pkg/design/meta"
	"mercator-hq/folio/pkg/design/model"
	"mercator-hq/folio/pkg/design/parser"
)

func TestResolve(t *testing.T) {
	dict := meta.MustBuiltin()
	module, err := model.NewReportDesign(dict, "sales")
	if err != nil {
		t.Fatal(err)
	}
	label := model.NewElement(dict.Element("Label"), "title")
	if err := module.Root().Slot(meta.BodySlot).Add(label, -1); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		ref     string
		want    *model.Element
		wantErr error
	}{
		{name: "empty", ref: "", want: module.Root()},
		{name: "root", ref: "root", want: module.Root()},
		{name: "by id", ref: label.ID, want: label},
		{name: "by name", ref: "title", want: label},
		{name: "unknown", ref: "missing", wantErr: edit.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolve(module, tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolve() = %v, want %v", got.ID, tt.want.ID)
			}
		})
	}
}

func TestLoadState(t *testing.T) {
	s := &loadState{}
	if err := s.check(context.Background()); err != nil {
		t.Errorf("fresh state check = %v", err)
	}
	s.set(errors.New("bad yaml"))
	if err := s.check(context.Background()); err == nil {
		t.Error("check after failed reload should fail")
	}
	s.set(nil)
	if err := s.check(context.Background()); err != nil {
		t.Errorf("check after successful reload = %v", err)
	}
}

func TestDocumentFiles(t *testing.T) {
	dict := meta.MustBuiltin()
	module, err := model.NewReportDesign(dict, "sales")
	if err != nil {
		t.Fatal(err)
	}
	if got := documentFiles(module); len(got) != 0 {
		t.Errorf("documentFiles() of an unsaved module = %v", got)
	}

	parsed, err := parser.NewParser(dict).Parse(filepath.Join("..", "..", "pkg", "design", "parser", "testdata", "sales.yaml"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := documentFiles(parsed)
	if len(got) != 2 || filepath.Base(got[0]) != "sales.yaml" || filepath.Base(got[1]) != "shared.yaml" {
		t.Errorf("documentFiles() = %v", got)
	}
}
