package model

import (
	"fmt"
	"strings"

	"mercator-hq/folio/pkg/design/meta"
)

// Module is a report design or library: the root of a design tree.
type Module struct {
	root      *Element
	dict      *meta.Dictionary
	readOnly  bool
	host      *Module
	namespace string
	fileName  string
	libraries []*Module
}

// NewModule creates a module whose root element has the given type, which
// must be a kind of Module in dict.
func NewModule(dict *meta.Dictionary, typeName, name string) (*Module, error) {
	defn := dict.Element(typeName)
	if defn == nil {
		return nil, fmt.Errorf("unknown module type %q", typeName)
	}
	if !defn.IsKindOfName(meta.ModuleElement) {
		return nil, fmt.Errorf("type %q is not a module type", typeName)
	}

	m := &Module{dict: dict}
	m.root = NewElement(defn, name)
	m.root.module = m
	return m, nil
}

// NewReportDesign creates an empty report design.
func NewReportDesign(dict *meta.Dictionary, name string) (*Module, error) {
	return NewModule(dict, meta.ReportDesignElement, name)
}

// NewLibrary creates an empty library with the given namespace.
func NewLibrary(dict *meta.Dictionary, name, namespace string) (*Module, error) {
	m, err := NewModule(dict, meta.LibraryElement, name)
	if err != nil {
		return nil, err
	}
	m.namespace = namespace
	return m, nil
}

// Root returns the module's root element.
func (m *Module) Root() *Element {
	return m.root
}

// Dictionary returns the dictionary the module was built against.
func (m *Module) Dictionary() *meta.Dictionary {
	return m.dict
}

// IsReadOnly reports whether structural edits are refused.
func (m *Module) IsReadOnly() bool {
	return m.readOnly
}

// SetReadOnly marks the module read-only or writable.
func (m *Module) SetReadOnly(readOnly bool) {
	m.readOnly = readOnly
}

// IsLibrary reports whether the module is a library.
func (m *Module) IsLibrary() bool {
	return m.root.kind == KindLibrary
}

// Host returns the module that included this library, or nil.
func (m *Module) Host() *Module {
	return m.host
}

// Namespace returns the library namespace ("" for report designs).
func (m *Module) Namespace() string {
	return m.namespace
}

// SetNamespace sets the library namespace.
func (m *Module) SetNamespace(ns string) {
	m.namespace = ns
}

// FileName returns the file the module was loaded from.
func (m *Module) FileName() string {
	return m.fileName
}

// SetFileName records the file the module was loaded from.
func (m *Module) SetFileName(name string) {
	m.fileName = name
}

// Libraries returns the directly included libraries.
func (m *Module) Libraries() []*Module {
	return append([]*Module(nil), m.libraries...)
}

// IncludeLibrary makes lib part of this module. The library becomes
// read-only and its elements report IsRootIncludedByModule.
func (m *Module) IncludeLibrary(lib *Module) error {
	if lib == nil || !lib.IsLibrary() {
		return fmt.Errorf("only libraries can be included")
	}
	if lib.host != nil {
		return fmt.Errorf("library %q is already included", lib.namespace)
	}
	if lib.namespace == "" {
		return fmt.Errorf("library %q has no namespace", lib.root.Name)
	}
	for _, existing := range m.libraries {
		if existing.namespace == lib.namespace {
			return fmt.Errorf("namespace %q is already in use", lib.namespace)
		}
	}
	for cur := m; cur != nil; cur = cur.host {
		if cur == lib {
			return fmt.Errorf("library %q cannot include itself", lib.namespace)
		}
	}

	lib.host = m
	lib.readOnly = true
	m.libraries = append(m.libraries, lib)
	return nil
}

// Library returns the included library with the given namespace, or nil.
func (m *Module) Library(namespace string) *Module {
	for _, lib := range m.libraries {
		if lib.namespace == namespace {
			return lib
		}
	}
	return nil
}

// FindElement returns the element with the given ID in this module, or nil.
func (m *Module) FindElement(id string) *Element {
	if m.root.ID == id {
		return m.root
	}
	for it := NewContentIterator(m, m.root); it.HasNext(); {
		if e := it.Next(); e.ID == id {
			return e
		}
	}
	return nil
}

// FindByName returns the first element with the given name, or nil.
func (m *Module) FindByName(name string) *Element {
	if name == "" {
		return nil
	}
	for it := NewContentIterator(m, m.root); it.HasNext(); {
		if e := it.Next(); e.Name == name {
			return e
		}
	}
	return nil
}

// ResolveExtends resolves an extends reference. "ns.name" looks in the
// included library with that namespace; an unqualified name looks in this
// module.
func (m *Module) ResolveExtends(ref string) *Element {
	if ns, name, ok := strings.Cut(ref, "."); ok {
		if lib := m.Library(ns); lib != nil {
			return lib.FindByName(name)
		}
		return nil
	}
	return m.FindByName(ref)
}
