package containment

import (
	"testing"

	"mercator-hq/folio/pkg/design/meta"
	"mercator-hq/folio/pkg/design/model"
)

// boxDictionary is a minimal vocabulary with a single-cardinality slot.
const boxDictionary = `
elements:
  - name: Module
    abstract: true
    slots:
      - id: components
        multiple: true
        content: [Item, TemplateReportItem]
  - name: ReportDesign
    extends: Module
    slots:
      - id: body
        multiple: true
        content: [Item, TemplateReportItem]
  - name: Library
    extends: Module
  - name: Item
    abstract: true
  - name: Label
    extends: Item
  - name: Box
    extends: Item
    slots:
      - id: content
        multiple: false
        content: [Item, TemplateReportItem]
  - name: TemplateElement
    abstract: true
  - name: TemplateReportItem
    extends: TemplateElement
`

func builtin(t *testing.T) *meta.Dictionary {
	t.Helper()
	d, err := meta.Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	return d
}

func boxDict(t *testing.T) *meta.Dictionary {
	t.Helper()
	d, err := meta.LoadBytes([]byte(boxDictionary), "box.yaml")
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}
	return d
}

func newReport(t *testing.T, dict *meta.Dictionary) *model.Module {
	t.Helper()
	m, err := model.NewReportDesign(dict, "report")
	if err != nil {
		t.Fatalf("NewReportDesign() error = %v", err)
	}
	return m
}

func newLibrary(t *testing.T, dict *meta.Dictionary, ns string) *model.Module {
	t.Helper()
	m, err := model.NewLibrary(dict, "lib-"+ns, ns)
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	return m
}

// element creates a detached element of the named type.
func element(t *testing.T, dict *meta.Dictionary, typeName, name string) *model.Element {
	t.Helper()
	defn := dict.Element(typeName)
	if defn == nil {
		t.Fatalf("unknown type %q", typeName)
	}
	return model.NewElement(defn, name)
}

// add creates an element and attaches it to parent.slot.
func add(t *testing.T, dict *meta.Dictionary, parent *model.Element, slot, typeName, name string) *model.Element {
	t.Helper()
	e := element(t, dict, typeName, name)
	if err := parent.Slot(slot).Add(e, -1); err != nil {
		t.Fatalf("Add(%s into %s) error = %v", typeName, slot, err)
	}
	return e
}

// tableWithColumns adds a table with n columns to the report body.
func tableWithColumns(t *testing.T, dict *meta.Dictionary, m *model.Module, n int) *model.Element {
	t.Helper()
	table := add(t, dict, m.Root(), meta.BodySlot, meta.TableElement, "orders")
	for i := 0; i < n; i++ {
		add(t, dict, table, meta.ColumnSlot, meta.ColumnElement, "")
	}
	return table
}

// row creates a detached row with the given number of cells.
func row(t *testing.T, dict *meta.Dictionary, cells int) *model.Element {
	t.Helper()
	r := element(t, dict, meta.RowElement, "")
	for i := 0; i < cells; i++ {
		add(t, dict, r, meta.CellSlot, meta.CellElement, "")
	}
	return r
}
